package detail

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "vignette/entity"
	"vignette/row"
	"vignette/style"
	"vignette/thumb"
)

// DetailPanel shows the selected row with a larger thumbnail
type DetailPanel struct {
	thumbWidth  int
	thumbHeight int

	snap         *row.Snapshot
	picture      string   // Rendered thumbnail (cached)
	contentLines []string // Rendered facts split into lines (cached)

	// Display state
	Width        int
	height       int
	ScrollOffset int // Line offset for scrolling content
}

func NewDetailPanel(thumbWidth, thumbHeight int) DetailPanel {
	return DetailPanel{
		thumbWidth:  thumbWidth,
		thumbHeight: thumbHeight,
	}
}

func (pnl DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {

	switch msg := msg.(type) {

	case RowMsg:
		if pnl.changed(msg.Row) {
			pnl.picture = picture(msg.Row, pnl.thumbWidth, pnl.thumbHeight)
		}
		if pnl.snap == nil || pnl.snap.Index != msg.Row.Index {
			pnl.ScrollOffset = 0
		}

		pnl.snap = &msg.Row
		pnl.computeContentLines()
		pnl.ScrollOffset = min(pnl.ScrollOffset, pnl.maxScroll())

	case SizeMsg:
		pnl.Width = msg.Width
		pnl.height = msg.Height
		pnl.ScrollOffset = min(pnl.ScrollOffset, pnl.maxScroll())

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if pnl.ScrollOffset > 0 {
				pnl.ScrollOffset--
			}

		case "down", "j":
			if pnl.ScrollOffset < pnl.maxScroll() {
				pnl.ScrollOffset++
			}
		}
	}

	return pnl, nil
}

// View renders the detail view
func (pnl DetailPanel) View() tea.View {

	if pnl.snap == nil {
		return tea.NewView(style.MutedStyle.Render("No row selected"))
	}

	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visibleLines) > pnl.height {
		visibleLines = visibleLines[:pnl.height]
	}

	facts := lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(visibleLines, "\n"))
	return tea.NewView(lipgloss.JoinHorizontal(lipgloss.Top, pnl.picture, facts))
}

// unexported

func (pnl DetailPanel) changed(snap row.Snapshot) bool {

	if pnl.snap == nil {
		return true
	}
	return pnl.snap.Index != snap.Index || pnl.snap.State != snap.State || pnl.snap.Image != snap.Image
}

func (pnl DetailPanel) maxScroll() int {

	if pnl.height <= 0 {
		return 0
	}
	return max(len(pnl.contentLines)-pnl.height, 0)
}

// computeContentLines renders the facts about the row and splits into lines
func (pnl *DetailPanel) computeContentLines() {

	snap := pnl.snap
	lines := []string{
		fmt.Sprintf("row     %d", snap.Index+1),
		fmt.Sprintf("url     %s", snap.URL),
		fmt.Sprintf("state   %s", snap.State),
	}

	switch snap.State {
	case nt.Displayed:
		img := snap.Image
		lines = append(lines,
			fmt.Sprintf("format  %s", img.Format),
			fmt.Sprintf("size    %dx%d", img.Width, img.Height),
			fmt.Sprintf("bytes   %d", len(img.Data)),
		)
	case nt.Failed:
		lines = append(lines,
			fmt.Sprintf("kind    %s", snap.Kind),
			style.FailedStyle.Render(snap.Message),
		)
	}

	pnl.contentLines = lines
}

func picture(snap row.Snapshot, width, height int) string {

	switch snap.State {
	case nt.Loading:
		return thumb.Progress(width, height)
	case nt.Displayed:
		return thumb.Render(snap.Image.Decoded, width, height)
	}
	return thumb.Placeholder(width, height)
}
