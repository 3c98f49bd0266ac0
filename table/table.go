package table

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"

	nt "vignette/entity"
	"vignette/row"
	"vignette/style"
	"vignette/thumb"
)

const (
	headerHeight = 2
	loadLabel    = "Load"
)

// TablePanel lists the rows with their image, status and load button
type TablePanel struct {
	selected int // Absolute index of selected row
	offset   int // First row shown

	width  int
	height int

	thumbWidth  int
	thumbHeight int
	urlWidth    int

	rows   []row.Snapshot
	thumbs map[int]rendered // Thumbnails by row index, shared between copies
	table  *table.Table
}

// rendered caches a thumbnail for the display slot it was drawn from
type rendered struct {
	state nt.RowState
	image *nt.Image
	text  string
}

func NewTablePanel(thumbWidth, thumbHeight, urlWidth int) TablePanel {

	lgt := table.New()
	style.StyleTable(lgt)
	lgt.Headers("#", "image", "status", "url", "")

	return TablePanel{
		thumbWidth:  thumbWidth,
		thumbHeight: thumbHeight,
		urlWidth:    urlWidth,
		thumbs:      map[int]rendered{},
		table:       lgt,
	}
}

func (pnl TablePanel) Init() tea.Cmd {
	return nil
}

func (pnl TablePanel) Update(msg tea.Msg) (TablePanel, tea.Cmd) {
	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height
		pnl = pnl.follow()

	case RowsMsg:
		pnl.rows = msg.Rows
		pnl.drawThumbs()
		pnl.selected = min(pnl.selected, max(len(pnl.rows)-1, 0))
		pnl = pnl.follow()

	case ResetMsg:
		pnl.selected = 0
		pnl.offset = 0
		clear(pnl.thumbs)
		return pnl, pnl.selectedCmd()

	case tea.KeyPressMsg:
		pageSize := pnl.PageSize()
		last := len(pnl.rows) - 1
		before := pnl.selected

		switch msg.String() {
		case "up", "k":
			if pnl.selected > 0 {
				pnl.selected--
			}

		case "down", "j":
			if pnl.selected < last {
				pnl.selected++
			}

		case "pgup", "ctrl+u":
			pnl.selected = max(pnl.selected-pageSize, 0)

		case "pgdown", "ctrl+d":
			pnl.selected = max(min(pnl.selected+pageSize, last), 0)

		case "g":
			pnl.selected = 0

		case "G":
			pnl.selected = max(last, 0)

		case "enter", "space":
			return pnl, pnl.loadCmd()
		}

		pnl = pnl.follow()
		if pnl.selected != before {
			return pnl, pnl.selectedCmd()
		}
	}

	return pnl, nil
}

func (pnl TablePanel) View() tea.View {

	if len(pnl.rows) == 0 {
		return tea.NewView(style.MutedStyle.Render("No rows"))
	}

	pnl.table.StyleFunc(style.RowStyler(pnl.selected - pnl.offset))

	pnl.table.ClearRows()
	end := min(pnl.offset+pnl.PageSize(), len(pnl.rows))
	for _, snap := range pnl.rows[pnl.offset:end] {
		pnl.table.Row(pnl.row(snap)...)
	}

	return tea.NewView(pnl.table.String())
}

// Selected returns the absolute index of the selected row
func (pnl TablePanel) Selected() int {
	return pnl.selected
}

// Offset returns the index of the first row shown
func (pnl TablePanel) Offset() int {
	return pnl.offset
}

// PageSize returns the number of rows that fit on panel
func (pnl TablePanel) PageSize() int {

	rowHeight := max(pnl.thumbHeight, 1)
	return max((pnl.height-headerHeight)/rowHeight, 1)
}

// unexported

// follow adjusts offset to keep the selected row visible
func (pnl TablePanel) follow() TablePanel {

	pageSize := pnl.PageSize()
	if pnl.selected < pnl.offset {
		pnl.offset = pnl.selected
	} else if pnl.selected >= pnl.offset+pageSize {
		pnl.offset = pnl.selected - pageSize + 1
	}

	pnl.offset = max(min(pnl.offset, len(pnl.rows)-pageSize), 0)
	return pnl
}

func (pnl TablePanel) row(snap row.Snapshot) []string {

	return []string{
		fmt.Sprintf("%d", snap.Index+1),
		pnl.thumbs[snap.Index].text,
		status(snap),
		truncate(snap.URL, pnl.urlWidth),
		style.ButtonStyle.Render(loadLabel),
	}
}

// drawThumbs redraws thumbnails whose display slot changed
func (pnl TablePanel) drawThumbs() {

	for _, snap := range pnl.rows {
		cached, ok := pnl.thumbs[snap.Index]
		if ok && cached.state == snap.State && cached.image == snap.Image {
			continue
		}

		var text string
		switch snap.State {
		case nt.Loading:
			text = thumb.Progress(pnl.thumbWidth, pnl.thumbHeight)
		case nt.Displayed:
			text = thumb.Render(snap.Image.Decoded, pnl.thumbWidth, pnl.thumbHeight)
		default:
			text = thumb.Placeholder(pnl.thumbWidth, pnl.thumbHeight)
		}

		pnl.thumbs[snap.Index] = rendered{state: snap.State, image: snap.Image, text: text}
	}
}

// help

func status(snap row.Snapshot) string {

	switch snap.State {
	case nt.Displayed:
		return style.DisplayedStyle.Render(fmt.Sprintf("%s %dx%d", snap.Image.Format, snap.Image.Width, snap.Image.Height))
	case nt.Failed:
		return style.FailedStyle.Render(snap.Kind.String())
	}
	return style.MutedStyle.Render(snap.State.String())
}

func truncate(in string, width int) string {

	if width < 2 || ansi.StringWidth(in) <= width {
		return in
	}

	truncated := ansi.Truncate(in, width-1, "")
	ellipsis := style.MutedStyle.Render("…")
	return truncated + ellipsis
}
