// Package thumb draws images as terminal text, two pixels per cell.
package thumb

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/disintegration/imaging"

	"vignette/style"
)

const (
	upperHalf = "▀"
	photo     = "▢ photo"
)

// Render fits img within width cells by height lines and draws it with half blocks.
func Render(img image.Image, width, height int) string {

	if img == nil || width < 1 || height < 1 {
		return Placeholder(width, height)
	}

	fitted := Fit(img, width, height*2)
	bounds := fitted.Bounds()

	lines := make([]string, 0, (bounds.Dy()+1)/2)
	for y := 0; y < bounds.Dy(); y += 2 {
		var line strings.Builder
		for x := 0; x < bounds.Dx(); x++ {
			cell := lipgloss.NewStyle().Foreground(fitted.NRGBAAt(x, y))
			if y+1 < bounds.Dy() {
				cell = cell.Background(fitted.NRGBAAt(x, y+1))
			}
			line.WriteString(cell.Render(upperHalf))
		}
		lines = append(lines, line.String())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

// Fit scales img, up or down, to the largest size within width by height keeping aspect.
func Fit(img image.Image, width, height int) *image.NRGBA {

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW < 1 || srcH < 1 {
		return imaging.New(1, 1, style.PlaceholderColor)
	}

	dstW, dstH := width, srcH*width/srcW
	if dstH > height {
		dstW, dstH = srcW*height/srcH, height
	}

	return imaging.Resize(img, max(dstW, 1), max(dstH, 1), imaging.Lanczos)
}

// Placeholder is shown while a row has no image.
func Placeholder(width, height int) string {
	return box(width, height, style.MutedStyle.Render(photo))
}

// Progress is shown while a row is loading.
// The bar is decorative, fetches do not report progress.
func Progress(width, height int) string {

	barWidth := max(width-4, 2)
	filled := barWidth / 2
	bar := style.ProgressStyle.Render(strings.Repeat("━", filled)) +
		style.MutedStyle.Render(strings.Repeat("─", barWidth-filled))

	return box(width, height, lipgloss.JoinVertical(lipgloss.Center, style.MutedStyle.Render(photo), bar))
}

func box(width, height int, content string) string {

	if width < 1 || height < 1 {
		return ""
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
