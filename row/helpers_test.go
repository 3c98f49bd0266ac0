package row

import (
	"context"
	"sync"

	nt "vignette/entity"
)

// fetchFunc adapts a func to Fetcher.
type fetchFunc func(ctx context.Context, rawUrl string) (*nt.Image, error)

func (fn fetchFunc) Fetch(ctx context.Context, rawUrl string) (*nt.Image, error) {
	return fn(ctx, rawUrl)
}

// byUrl succeeds for urls ending in ".png" and fails otherwise.
var byUrl = fetchFunc(func(ctx context.Context, rawUrl string) (*nt.Image, error) {
	if len(rawUrl) > 4 && rawUrl[len(rawUrl)-4:] == ".png" {
		return &nt.Image{URL: rawUrl, Format: "png", Width: 1, Height: 1}, nil
	}
	return nil, &nt.FetchError{Kind: nt.InvalidResponse, URL: rawUrl, Status: 404}
})

type logged struct {
	msg string
	err error
	kv  []any
}

type testLogger struct {
	mu     sync.Mutex
	infos  []logged
	errors []logged
}

func (lgr *testLogger) Info(ctx context.Context, msg string, kv ...any) {
	lgr.mu.Lock()
	defer lgr.mu.Unlock()
	lgr.infos = append(lgr.infos, logged{msg: msg, kv: kv})
}

func (lgr *testLogger) Error(ctx context.Context, msg string, err error, kv ...any) {
	lgr.mu.Lock()
	defer lgr.mu.Unlock()
	lgr.errors = append(lgr.errors, logged{msg: msg, err: err, kv: kv})
}

func (lgr *testLogger) errorMsgs() []string {
	lgr.mu.Lock()
	defer lgr.mu.Unlock()

	msgs := []string{}
	for _, lg := range lgr.errors {
		msgs = append(msgs, lg.msg)
	}
	return msgs
}

type sliceSource struct {
	urls []string
	err  error
}

func (src sliceSource) RowCount() (int, error) {
	return len(src.urls), src.err
}

func (src sliceSource) RowData(idx int) (string, error) {
	return src.urls[idx], nil
}
