// Package fetch gets a remote image with a single GET and classifies failures.
package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	nt "vignette/entity"
)

const (
	defaultMaxBytes = 32 << 20
)

// Doer issues http requests; *http.Client is one.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is the fetcher configuration.
type Config struct {
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	MaxBytes  int64         `yaml:"max_bytes,omitempty"`
	UserAgent string        `yaml:"user_agent,omitempty"`
}

// Fetcher gets images.
type Fetcher struct {
	Client    Doer
	MaxBytes  int64
	UserAgent string
	logger    nt.Logger
}

// New creates a Fetcher from config.
// A zero timeout leaves whatever the transport applies.
func (cfg *Config) New(lgr nt.Logger) *Fetcher {

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	return &Fetcher{
		Client:    &http.Client{Timeout: cfg.Timeout},
		MaxBytes:  maxBytes,
		UserAgent: cfg.UserAgent,
		logger:    lgr,
	}
}

// Fetch gets and decodes the image at rawUrl.
// Failures are returned as *entity.FetchError.
func (ftr *Fetcher) Fetch(ctx context.Context, rawUrl string) (img *nt.Image, err error) {

	target, err := parseUrl(rawUrl)
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		err = &nt.FetchError{Kind: nt.InvalidURL, URL: rawUrl, Err: err}
		return
	}
	if ftr.UserAgent != "" {
		req.Header.Set("User-Agent", ftr.UserAgent)
	}

	resp, err := ftr.Client.Do(req)
	if err != nil {
		err = classify(rawUrl, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = &nt.FetchError{Kind: nt.InvalidResponse, URL: rawUrl, Status: resp.StatusCode}
		return
	}

	data, err := ftr.readBody(rawUrl, resp.Body)
	if err != nil {
		return
	}

	decoded, format, err := decode(data)
	if err != nil {
		err = &nt.FetchError{Kind: nt.InvalidImageData, URL: rawUrl, Err: err}
		return
	}

	bounds := decoded.Bounds()
	img = &nt.Image{
		URL:     rawUrl,
		Data:    data,
		Format:  format,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Decoded: decoded,
	}

	if ftr.logger != nil {
		ftr.logger.Info(ctx, "fetched image", "url", rawUrl, "format", format, "bytes", len(data))
	}
	return
}

// unexported

func parseUrl(rawUrl string) (target *url.URL, err error) {

	target, err = url.Parse(rawUrl)
	if err != nil {
		err = &nt.FetchError{Kind: nt.InvalidURL, URL: rawUrl, Err: err}
		return
	}

	if target.Scheme == "" || target.Host == "" {
		err = &nt.FetchError{Kind: nt.InvalidURL, URL: rawUrl}
		return
	}

	switch target.Scheme {
	case "http", "https":
	default:
		err = &nt.FetchError{Kind: nt.UnsupportedURL, URL: rawUrl}
	}
	return
}

func (ftr *Fetcher) readBody(rawUrl string, body io.Reader) (data []byte, err error) {

	maxBytes := ftr.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(body, maxBytes+1))
	if err != nil {
		err = classify(rawUrl, err)
		return
	}

	if n > maxBytes {
		err = &nt.FetchError{
			Kind: nt.InvalidImageData,
			URL:  rawUrl,
			Err:  errors.Errorf("body exceeds %d bytes", maxBytes),
		}
		return
	}

	data = buf.Bytes()
	return
}
