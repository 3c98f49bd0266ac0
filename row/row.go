// Package row holds the per-row fetch controller and the collection of rows.
package row

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	nt "vignette/entity"
)

// Fetcher gets an image for a url.
type Fetcher interface {
	Fetch(ctx context.Context, rawUrl string) (img *nt.Image, err error)
}

// Snapshot is a copy of a row's display slot.
type Snapshot struct {
	Index   int
	URL     string
	State   nt.RowState
	Image   *nt.Image
	Kind    nt.ErrorKind
	Message string
}

// Row owns one url and one display slot.
type Row struct {
	index   int
	fetcher Fetcher
	logger  nt.Logger

	mu       sync.Mutex
	url      string
	state    nt.RowState
	image    *nt.Image
	kind     nt.ErrorKind
	message  string
	closed   bool
	onChange func(Snapshot)
}

// New creates an idle row, a nil logger discards.
func New(idx int, ftr Fetcher, lgr nt.Logger) *Row {

	return &Row{
		index:   idx,
		fetcher: ftr,
		logger:  orNop(lgr),
		state:   nt.Idle,
	}
}

// Configure sets the url to fetch, replacing any previous one.
func (row *Row) Configure(url string) {

	row.mu.Lock()
	defer row.mu.Unlock()

	row.url = url
}

// OnChange sets a callback invoked after each display update.
func (row *Row) OnChange(fn func(Snapshot)) {

	row.mu.Lock()
	defer row.mu.Unlock()

	row.onChange = fn
}

// Close detaches the row, any fetch completing afterwards is dropped.
func (row *Row) Close() {

	row.mu.Lock()
	defer row.mu.Unlock()

	row.closed = true
	row.onChange = nil
}

// Snapshot returns a copy of the display slot.
func (row *Row) Snapshot() Snapshot {

	row.mu.Lock()
	defer row.mu.Unlock()

	return row.snapshot()
}

// Trigger resets the slot to the placeholder and fetches in the background.
// The result is applied to the slot and then delivered on the returned channel.
// Failures are logged here and go no further.
func (row *Row) Trigger(ctx context.Context) <-chan nt.Result {

	done := make(chan nt.Result, 1)

	row.mu.Lock()
	url := row.url
	if !row.closed {
		row.state = nt.Loading
		row.image = nil
		row.kind = nt.UnknownError
		row.message = ""
	}
	snap, notify := row.changed()
	row.mu.Unlock()

	notify(snap)

	fetchId := uuid.NewString()
	row.logger.Info(ctx, "fetch started", "row", row.index, "fetch_id", fetchId, "url", url)

	go func() {
		result := row.fetch(ctx, url)
		row.apply(ctx, fetchId, result)

		done <- result
		close(done)
	}()

	return done
}

// unexported

func (row *Row) fetch(ctx context.Context, url string) (result nt.Result) {

	defer func() {
		if rcv := recover(); rcv != nil {
			result = nt.Result{Err: errors.Errorf("fetch panicked: %v", rcv)}
		}
	}()

	img, err := row.fetcher.Fetch(ctx, url)
	if err == nil && img == nil {
		err = errors.New("fetch returned no image")
	}

	result = nt.Result{Image: img, Err: err}
	return
}

func (row *Row) apply(ctx context.Context, fetchId string, result nt.Result) {

	row.mu.Lock()
	if row.closed {
		row.mu.Unlock()
		row.logger.Info(ctx, "dropping result for closed row", "row", row.index, "fetch_id", fetchId)
		return
	}

	if result.Ok() {
		row.state = nt.Displayed
		row.image = result.Image
	} else {
		row.state = nt.Failed
		row.image = nil
		row.kind = nt.KindOf(result.Err)
		row.message = nt.MessageOf(result.Err)
	}
	snap, notify := row.changed()
	row.mu.Unlock()

	if !result.Ok() {
		row.logger.Error(ctx, snap.Message, result.Err,
			"row", row.index, "fetch_id", fetchId, "kind", snap.Kind.String())
	}

	notify(snap)
}

// changed returns the snapshot and callback to fire once the lock is released.
func (row *Row) changed() (Snapshot, func(Snapshot)) {

	fn := row.onChange
	if fn == nil {
		fn = func(Snapshot) {}
	}
	return row.snapshot(), fn
}

func (row *Row) snapshot() Snapshot {

	return Snapshot{
		Index:   row.index,
		URL:     row.url,
		State:   row.state,
		Image:   row.image,
		Kind:    row.kind,
		Message: row.message,
	}
}

func (snap Snapshot) String() string {
	return fmt.Sprintf("row %d %s %s", snap.Index, snap.State, snap.URL)
}

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, kv ...any)              {}
func (nopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}

func orNop(lgr nt.Logger) nt.Logger {

	if lgr == nil {
		return nopLogger{}
	}
	return lgr
}
