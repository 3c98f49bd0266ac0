package fetch

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "vignette/entity"
)

// handlerDoer serves requests from a handler without touching the network.
type handlerDoer struct {
	handler http.Handler
	calls   atomic.Int32
}

func (hd *handlerDoer) Do(req *http.Request) (*http.Response, error) {
	hd.calls.Add(1)
	rec := httptest.NewRecorder()
	hd.handler.ServeHTTP(rec, req)
	return rec.Result(), nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func exampleDoer(t *testing.T) *handlerDoer {
	t.Helper()

	data := pngBytes(t, 4, 3)
	mux := http.NewServeMux()
	mux.HandleFunc("/200.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	})
	mux.HandleFunc("/agent", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "vignette-test" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write(data)
	})

	return &handlerDoer{handler: mux}
}

func TestFetchSuccess(t *testing.T) {
	doer := exampleDoer(t)
	ftr := &Fetcher{Client: doer}

	img, err := ftr.Fetch(context.Background(), "https://example.com/200.png")
	require.NoError(t, err)

	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.Equal(t, "https://example.com/200.png", img.URL)
	assert.NotNil(t, img.Decoded)

	_, _, err = image.Decode(bytes.NewReader(img.Data))
	assert.NoError(t, err)
	assert.Equal(t, int32(1), doer.calls.Load())
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		kind   nt.ErrorKind
		status int
		calls  int32
	}{
		{"not a url", "not a url", nt.InvalidURL, 0, 0},
		{"empty", "", nt.InvalidURL, 0, 0},
		{"bad escape", "https://example.com/%zz", nt.InvalidURL, 0, 0},
		{"no scheme", "example.com/200.png", nt.InvalidURL, 0, 0},
		{"unsupported scheme", "ftp://example.com/200.png", nt.UnsupportedURL, 0, 0},
		{"not found", "https://example.com/404", nt.InvalidResponse, http.StatusNotFound, 1},
		{"empty body", "https://example.com/empty", nt.InvalidImageData, 0, 1},
		{"not an image", "https://example.com/text", nt.InvalidImageData, 0, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doer := exampleDoer(t)
			ftr := &Fetcher{Client: doer}

			img, err := ftr.Fetch(context.Background(), test.url)
			require.Error(t, err)
			assert.Nil(t, img)

			var fe *nt.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, test.kind, fe.Kind)
			assert.Equal(t, test.status, fe.Status)
			assert.Equal(t, test.url, fe.URL)
			assert.Equal(t, test.calls, doer.calls.Load())
		})
	}
}

func TestFetchTwiceIsTwoRequests(t *testing.T) {
	doer := exampleDoer(t)
	ftr := &Fetcher{Client: doer}

	_, err := ftr.Fetch(context.Background(), "https://example.com/200.png")
	require.NoError(t, err)
	_, err = ftr.Fetch(context.Background(), "https://example.com/200.png")
	require.NoError(t, err)

	assert.Equal(t, int32(2), doer.calls.Load())
}

func TestFetchTooLarge(t *testing.T) {
	ftr := &Fetcher{Client: exampleDoer(t), MaxBytes: 16}

	_, err := ftr.Fetch(context.Background(), "https://example.com/200.png")
	assert.Equal(t, nt.InvalidImageData, nt.KindOf(err))
}

func TestFetchUserAgent(t *testing.T) {
	ftr := &Fetcher{Client: exampleDoer(t), UserAgent: "vignette-test"}

	_, err := ftr.Fetch(context.Background(), "https://example.com/agent")
	assert.NoError(t, err)
}

func TestConfigNewAgainstServer(t *testing.T) {
	data := pngBytes(t, 2, 2)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	lgr := &recordingLogger{}
	ftr := (&Config{}).New(lgr)
	assert.Equal(t, int64(defaultMaxBytes), ftr.MaxBytes)

	img, err := ftr.Fetch(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Len(t, lgr.infos, 1)

	_, err = ftr.Fetch(context.Background(), srv.URL+"/missing")
	assert.Equal(t, nt.InvalidResponse, nt.KindOf(err))
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Config{}).New(nil).Fetch(ctx, srv.URL+"/slow.png")
	assert.Equal(t, nt.Cancelled, nt.KindOf(err))
}

type recordingLogger struct {
	infos []string
}

func (lgr *recordingLogger) Info(ctx context.Context, msg string, kv ...any) {
	lgr.infos = append(lgr.infos, msg)
}

func (lgr *recordingLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}
