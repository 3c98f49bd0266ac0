package row

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	nt "vignette/entity"
)

// Rows is the ordered collection of rows built from a source.
type Rows struct {
	rows   []*Row
	logger nt.Logger
}

// Build creates a configured row for each entry in the source, a nil logger discards.
func Build(src nt.Source, ftr Fetcher, lgr nt.Logger) (rows *Rows, err error) {

	count, err := src.RowCount()
	if err != nil {
		err = errors.Wrapf(err, "failed to count rows")
		return
	}

	rows = &Rows{
		rows:   make([]*Row, count),
		logger: orNop(lgr),
	}

	for i := range count {
		var url string
		url, err = src.RowData(i)
		if err != nil {
			err = errors.Wrapf(err, "failed to get data for row %d", i)
			return
		}

		rows.rows[i] = New(i, ftr, lgr)
		rows.rows[i].Configure(url)
	}

	return
}

// Len returns the number of rows.
func (rows *Rows) Len() int {
	return len(rows.rows)
}

// Row returns the row at idx.
func (rows *Rows) Row(idx int) (row *Row, err error) {

	if idx < 0 || idx >= len(rows.rows) {
		err = errors.Errorf("row %d is out of bounds of %d rows", idx, len(rows.rows))
		return
	}

	row = rows.rows[idx]
	return
}

// Trigger fetches for a single row.
func (rows *Rows) Trigger(ctx context.Context, idx int) (pending <-chan nt.Result, err error) {

	row, err := rows.Row(idx)
	if err != nil {
		return
	}

	pending = row.Trigger(ctx)
	return
}

// LoadAll triggers every row at once.
func (rows *Rows) LoadAll(ctx context.Context) []<-chan nt.Result {

	rows.logger.Info(ctx, "loading all rows", "count", len(rows.rows))

	pending := make([]<-chan nt.Result, len(rows.rows))
	for i, row := range rows.rows {
		pending[i] = row.Trigger(ctx)
	}
	return pending
}

// Snapshots returns a copy of every row's display slot.
func (rows *Rows) Snapshots() []Snapshot {

	snaps := make([]Snapshot, len(rows.rows))
	for i, row := range rows.rows {
		snaps[i] = row.Snapshot()
	}
	return snaps
}

// OnChange sets the display update callback on every row.
func (rows *Rows) OnChange(fn func(Snapshot)) {
	for _, row := range rows.rows {
		row.OnChange(fn)
	}
}

// Close detaches every row.
func (rows *Rows) Close() {
	for _, row := range rows.rows {
		row.Close()
	}
}

// Collect waits for each pending result, giving up when ctx is done.
func Collect(ctx context.Context, pending []<-chan nt.Result) (results []nt.Result, err error) {

	results = make([]nt.Result, len(pending))

	grp, ctx := errgroup.WithContext(ctx)
	for i, ch := range pending {
		grp.Go(func() error {
			select {
			case result := <-ch:
				results[i] = result
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	err = grp.Wait()
	err = errors.Wrapf(err, "stopped waiting for results")
	return
}
