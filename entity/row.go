package entity

// RowState is where a row is in its fetch cycle.
type RowState int

const (
	Idle RowState = iota
	Loading
	Displayed
	Failed
)

func (state RowState) String() string {
	switch state {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Displayed:
		return "displayed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Source supplies the ordered urls backing the rows.
type Source interface {
	// RowCount returns the number of rows
	RowCount() (count int, err error)
	// RowData returns the url for a row
	RowData(idx int) (url string, err error)
}
