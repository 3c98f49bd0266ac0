package vignette

import (
	"context"

	nt "vignette/entity"
	"vignette/fetch"
	"vignette/store/duck"
	"vignette/store/static"
)

// Store specifies a source of row urls.
type Store interface {
	// Name returns the name of the data source
	Name() string
	// GetPage of urls, for listing without rows
	GetPage(offset, size int) (urls []string, err error)
	nt.Source
}

// Config is the top-level config for the viewer
type Config struct {
	// Urls are shown when no url list file is given
	Urls    []string      `yaml:"urls"`
	File    string        `yaml:"file,omitempty"`
	LogPath string        `yaml:"log_path"`
	Fetch   *fetch.Config `yaml:"fetch"`
	Layout  *Layout       `yaml:"layout"`
}

// DefaultUrls are a handful of sample images
var DefaultUrls = []string{
	"https://picsum.photos/id/237/440/300",
	"https://picsum.photos/id/230/400/320",
	"https://picsum.photos/id/220/470/300",
	"https://picsum.photos/id/200/340/310",
	"https://picsum.photos/id/257/400/300",
}

// NewStore returns a duck store loaded from File when set, otherwise a static store of Urls.
// Call closer when done with the store.
func (cfg *Config) NewStore(ctx context.Context, lgr nt.Logger) (store Store, closer func(), err error) {

	closer = func() {}

	if cfg.File == "" {
		urls := cfg.Urls
		if len(urls) == 0 {
			urls = DefaultUrls
		}
		store = static.New("config", urls)
		return
	}

	dk, err := duck.New(lgr)
	if err != nil {
		return
	}

	err = dk.Load(ctx, cfg.File)
	if err != nil {
		dk.Close()
		return
	}

	store, closer = dk, dk.Close
	return
}

// NewFetcher returns a fetcher per the fetch config, defaulted when missing
func (cfg *Config) NewFetcher(lgr nt.Logger) *fetch.Fetcher {

	if cfg.Fetch == nil {
		cfg.Fetch = &fetch.Config{}
	}
	return cfg.Fetch.New(lgr)
}
