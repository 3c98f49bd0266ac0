package detail

import "vignette/row"

type DetailMsg interface {
	isDetailMsg()
}

func (SizeMsg) isDetailMsg() {}
func (RowMsg) isDetailMsg()  {}

type SizeMsg struct {
	Width  int
	Height int
}

// RowMsg carries the display slot of the selected row
type RowMsg struct {
	Row row.Snapshot
}
