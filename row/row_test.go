package row

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "vignette/entity"
)

func wait(t *testing.T, pending <-chan nt.Result) nt.Result {
	t.Helper()

	select {
	case result := <-pending:
		return result
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for fetch")
	}
	return nt.Result{}
}

func TestRowDisplaysImage(t *testing.T) {
	lgr := &testLogger{}
	row := New(0, byUrl, lgr)
	assert.Equal(t, nt.Idle, row.Snapshot().State)

	row.Configure("https://example.com/200.png")
	result := wait(t, row.Trigger(context.Background()))
	require.True(t, result.Ok())

	snap := row.Snapshot()
	assert.Equal(t, nt.Displayed, snap.State)
	assert.Equal(t, "https://example.com/200.png", snap.Image.URL)
	assert.Equal(t, "", snap.Message)
	assert.Empty(t, lgr.errorMsgs())
}

func TestRowFailureIsLogged(t *testing.T) {
	lgr := &testLogger{}
	row := New(2, byUrl, lgr)
	row.Configure("https://example.com/404")

	result := wait(t, row.Trigger(context.Background()))
	assert.False(t, result.Ok())

	snap := row.Snapshot()
	assert.Equal(t, nt.Failed, snap.State)
	assert.Equal(t, nt.InvalidResponse, snap.Kind)
	assert.Nil(t, snap.Image)
	assert.Equal(t, "invalid response: status 404", snap.Message)
	assert.Equal(t, []string{"invalid response: status 404"}, lgr.errorMsgs())
}

func TestRowUnconfiguredUsesEmptyUrl(t *testing.T) {
	var got string
	ftr := fetchFunc(func(ctx context.Context, rawUrl string) (*nt.Image, error) {
		got = rawUrl
		return nil, &nt.FetchError{Kind: nt.InvalidURL, URL: rawUrl}
	})

	row := New(0, ftr, &testLogger{})
	wait(t, row.Trigger(context.Background()))

	assert.Equal(t, "", got)
	assert.Equal(t, nt.InvalidURL, row.Snapshot().Kind)
}

func TestConfigureIdempotent(t *testing.T) {
	once := New(0, byUrl, &testLogger{})
	once.Configure("https://example.com/a.png")
	wait(t, once.Trigger(context.Background()))

	twice := New(0, byUrl, &testLogger{})
	twice.Configure("https://example.com/a.png")
	twice.Configure("https://example.com/a.png")
	wait(t, twice.Trigger(context.Background()))

	assert.Equal(t, once.Snapshot(), twice.Snapshot())
}

func TestConfigureOverwrites(t *testing.T) {
	row := New(0, byUrl, &testLogger{})
	row.Configure("https://example.com/404")
	row.Configure("https://example.com/b.png")

	wait(t, row.Trigger(context.Background()))
	assert.Equal(t, nt.Displayed, row.Snapshot().State)
}

func TestRowStates(t *testing.T) {
	release := make(chan struct{})
	ftr := fetchFunc(func(ctx context.Context, rawUrl string) (*nt.Image, error) {
		<-release
		return &nt.Image{URL: rawUrl}, nil
	})

	var mu sync.Mutex
	states := []nt.RowState{}

	row := New(0, ftr, &testLogger{})
	row.Configure("https://example.com/a.png")
	row.OnChange(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, snap.State)
	})

	pending := row.Trigger(context.Background())
	assert.Equal(t, nt.Loading, row.Snapshot().State)
	assert.Nil(t, row.Snapshot().Image)

	close(release)
	wait(t, pending)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []nt.RowState{nt.Loading, nt.Displayed}, states)
}

func TestRetriggerResetsToPlaceholder(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	ftr := fetchFunc(func(ctx context.Context, rawUrl string) (*nt.Image, error) {
		calls++
		if calls > 1 {
			<-release
		}
		return &nt.Image{URL: rawUrl}, nil
	})

	row := New(0, ftr, &testLogger{})
	row.Configure("https://example.com/a.png")
	wait(t, row.Trigger(context.Background()))
	require.Equal(t, nt.Displayed, row.Snapshot().State)

	pending := row.Trigger(context.Background())
	snap := row.Snapshot()
	assert.Equal(t, nt.Loading, snap.State)
	assert.Nil(t, snap.Image)

	close(release)
	wait(t, pending)
	assert.Equal(t, nt.Displayed, row.Snapshot().State)
}

func TestLastCompletionWins(t *testing.T) {
	first := make(chan struct{})
	second := make(chan struct{})
	ftr := fetchFunc(func(ctx context.Context, rawUrl string) (*nt.Image, error) {
		if rawUrl == "https://example.com/first.png" {
			<-first
			return &nt.Image{URL: rawUrl}, nil
		}
		<-second
		return nil, &nt.FetchError{Kind: nt.InvalidImageData, URL: rawUrl}
	})

	row := New(0, ftr, &testLogger{})
	row.Configure("https://example.com/first.png")
	pendingFirst := row.Trigger(context.Background())
	row.Configure("https://example.com/second")
	pendingSecond := row.Trigger(context.Background())

	close(second)
	wait(t, pendingSecond)
	assert.Equal(t, nt.Failed, row.Snapshot().State)

	close(first)
	wait(t, pendingFirst)
	assert.Equal(t, nt.Displayed, row.Snapshot().State)
}

func TestClosedRowDropsResult(t *testing.T) {
	release := make(chan struct{})
	ftr := fetchFunc(func(ctx context.Context, rawUrl string) (*nt.Image, error) {
		<-release
		return &nt.Image{URL: rawUrl}, nil
	})

	changes := 0
	row := New(0, ftr, &testLogger{})
	row.Configure("https://example.com/a.png")
	row.OnChange(func(Snapshot) { changes++ })

	pending := row.Trigger(context.Background())
	require.Equal(t, 1, changes)

	row.Close()
	close(release)

	result := wait(t, pending)
	assert.True(t, result.Ok())
	assert.Equal(t, nt.Loading, row.Snapshot().State)
	assert.Equal(t, 1, changes)
}

func TestPanicBecomesUnknownError(t *testing.T) {
	ftr := fetchFunc(func(ctx context.Context, rawUrl string) (*nt.Image, error) {
		panic("boom")
	})

	lgr := &testLogger{}
	row := New(0, ftr, lgr)
	row.Configure("https://example.com/a.png")

	result := wait(t, row.Trigger(context.Background()))
	assert.Error(t, result.Err)

	snap := row.Snapshot()
	assert.Equal(t, nt.Failed, snap.State)
	assert.Equal(t, nt.UnknownError, snap.Kind)
	assert.Contains(t, snap.Message, "boom")
	assert.Len(t, lgr.errorMsgs(), 1)
}

func TestNilImageIsFailure(t *testing.T) {
	ftr := fetchFunc(func(ctx context.Context, rawUrl string) (*nt.Image, error) {
		return nil, nil
	})

	row := New(0, ftr, &testLogger{})
	wait(t, row.Trigger(context.Background()))

	assert.Equal(t, nt.Failed, row.Snapshot().State)
	assert.Equal(t, nt.UnknownError, row.Snapshot().Kind)
}

func TestRowWithoutLogger(t *testing.T) {
	row := New(0, byUrl, nil)

	row.Configure("https://example.com/404")
	result := wait(t, row.Trigger(context.Background()))
	assert.False(t, result.Ok())
	assert.Equal(t, nt.Failed, row.Snapshot().State)

	row.Close()
	result = wait(t, row.Trigger(context.Background()))
	assert.False(t, result.Ok())
}
