package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"

	"vignette"
	"vignette/util"
)

//go:embed sample.yaml
var sample []byte

func main() {

	cfgPath := flag.String("c", "vignette.yaml", "config file, a sample is written if missing")
	file := flag.String("file", "", "url list file, one url per line")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := util.SampleConfig(sample, *cfgPath, 0644)
	check(err)

	cfg := &vignette.Config{}
	err = util.LoadConfig(cfg, *cfgPath)
	check(err)

	if *file != "" {
		cfg.File = *file
	}

	logFile := util.OpenLog(cfg.LogPath, 0644)
	defer util.CloseLog(logFile)
	lgr := &sabot.Sabot{Writer: logFile}

	store, closeStore, err := cfg.NewStore(ctx, lgr)
	check(err)
	defer closeStore()

	model, err := vignette.NewModel(ctx, store, cfg.NewFetcher(lgr), cfg.Layout, lgr)
	check(err)
	defer model.Close()

	lgr.Info(ctx, "starting", "source", store.Name())

	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		lgr.Error(ctx, "program stopped", err)
	}
	check(err)
}

func check(err error) {

	if err != nil {
		fmt.Fprintf(os.Stderr, "vignette: %+v\n", err)
		os.Exit(1)
	}
}
