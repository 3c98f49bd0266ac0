package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	BackgroundColor  = lipgloss.Color("234")                                 // Dark warm grey
	PlaceholderColor = color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1c, A: 0xff}       // Matches 234
	TableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Subtle warm grey border
	HlRowStyle       = lipgloss.NewStyle().Background(lipgloss.Color("235")) // Very subtle warm grey row
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	ProgressStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	ButtonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("63")).Padding(0, 1)
	FailedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	DisplayedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	UnStyle          = lipgloss.NewStyle()
)

// RowStyler returns a StyleFunc that highlights the selected row
func RowStyler(selectedRow int) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		if row == selectedRow {
			return HlRowStyle
		}
		return UnStyle
	}
}

// StyleTable applies consistent table styling for borders and separators
func StyleTable(tbl *table.Table) {
	tbl.Border(lipgloss.Border{
		Top:         "─", // Horizontal parts of separator
		Middle:      "─", // Between columns in separator
		MiddleLeft:  "─", // Left edge of separator
		MiddleRight: "─", // Right edge of separator
	}).
		BorderTop(false).    // Disable top border
		BorderBottom(false). // Disable bottom border
		BorderLeft(false).   // Disable left border
		BorderRight(false).  // Disable right border
		BorderColumn(false). // Disable column separators
		BorderStyle(TableBorderStyle)
}
