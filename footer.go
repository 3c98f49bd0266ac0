package vignette

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	nt "vignette/entity"
	"vignette/row"
	"vignette/style"
)

// RenderFooter renders a footer with position, load counts and source name.
func RenderFooter(current, total int, snaps []row.Snapshot, name string, width int) string {

	loaded, failed := tally(snaps)

	left := fmt.Sprintf("%d/%d", current, total)
	middle := fmt.Sprintf("  %s %s",
		style.DisplayedStyle.Render(fmt.Sprintf("%d loaded", loaded)),
		style.FailedStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
	right := name

	padding := width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.MutedStyle.Render(left) + middle + strings.Repeat(" ", padding) + style.MutedStyle.Render(right)
}

func tally(snaps []row.Snapshot) (loaded, failed int) {

	for _, snap := range snaps {
		switch snap.State {
		case nt.Displayed:
			loaded++
		case nt.Failed:
			failed++
		}
	}
	return
}
