package table

import "vignette/row"

type TableMsg interface {
	isTableMsg()
}

func (SizeMsg) isTableMsg()  {}
func (RowsMsg) isTableMsg()  {}
func (ResetMsg) isTableMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// RowsMsg carries the current display slot of every row
type RowsMsg struct {
	Rows []row.Snapshot
}

type ResetMsg struct{}
