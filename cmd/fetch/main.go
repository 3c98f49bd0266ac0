// Command fetch loads every row without a terminal UI and prints a summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"charm.land/lipgloss/v2/table"
	"github.com/clarktrimble/sabot"

	"vignette"
	nt "vignette/entity"
	"vignette/row"
	"vignette/style"
	"vignette/util"
)

const pageSize = 20

func main() {

	cfgPath := flag.String("c", "", "optional config file")
	file := flag.String("file", "", "url list file, one url per line")
	wait := flag.Duration("wait", 0, "give up waiting after this long, 0 waits for all")
	list := flag.Bool("list", false, "list urls without fetching")
	flag.Parse()

	ctx := context.Background()

	cfg := &vignette.Config{}
	if *cfgPath != "" {
		check(util.LoadConfig(cfg, *cfgPath))
	}
	if *file != "" {
		cfg.File = *file
	}

	logFile := util.OpenLog(cfg.LogPath, 0644)
	defer util.CloseLog(logFile)
	lgr := &sabot.Sabot{Writer: logFile}

	store, closeStore, err := cfg.NewStore(ctx, lgr)
	check(err)
	defer closeStore()

	if *list {
		check(listUrls(store))
		return
	}

	rows, err := row.Build(store, cfg.NewFetcher(lgr), lgr)
	check(err)
	defer rows.Close()

	rows.OnChange(func(snap row.Snapshot) {
		fmt.Println(snap)
	})

	if *wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *wait)
		defer cancel()
	}

	start := time.Now()
	_, err = row.Collect(ctx, rows.LoadAll(ctx))
	if err != nil {
		lgr.Error(ctx, "gave up on some rows", err)
		fmt.Fprintf(os.Stderr, "warning: %s\n", err)
	}
	lgr.Info(ctx, "load all finished", "elapsed", time.Since(start).String())

	fmt.Println(summary(rows.Snapshots()))
}

// unexported

func listUrls(store vignette.Store) (err error) {

	for offset := 0; ; offset += pageSize {
		var urls []string
		urls, err = store.GetPage(offset, pageSize)
		if err != nil || len(urls) == 0 {
			return
		}

		for i, url := range urls {
			fmt.Printf("%4d  %s\n", offset+i+1, url)
		}
	}
}

func summary(snaps []row.Snapshot) string {

	tbl := table.New()
	style.StyleTable(tbl)
	tbl.Headers("#", "state", "detail", "url")

	for _, snap := range snaps {
		detail := ""
		switch snap.State {
		case nt.Displayed:
			detail = fmt.Sprintf("%s %dx%d %d bytes", snap.Image.Format, snap.Image.Width, snap.Image.Height, len(snap.Image.Data))
		case nt.Failed:
			detail = fmt.Sprintf("%s: %s", snap.Kind, snap.Message)
		}
		tbl.Row(fmt.Sprintf("%d", snap.Index+1), snap.State.String(), detail, snap.URL)
	}

	return tbl.String()
}

func check(err error) {

	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch: %+v\n", err)
		os.Exit(1)
	}
}
