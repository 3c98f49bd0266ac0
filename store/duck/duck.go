// Package duck backs rows with an in-memory duckdb table loaded from a url list file.
package duck

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	nt "vignette/entity"
)

type Duck struct {
	db       *sql.DB
	logger   nt.Logger
	filename string
}

func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
	}

	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Name returns the name of the loaded file
func (dk *Duck) Name() string {
	return dk.filename
}

// Load a url list file, replacing any previously loaded
func (dk *Duck) Load(ctx context.Context, path string) (err error) {

	urls, err := readUrls(path)
	if err != nil {
		return
	}

	err = loadUrls(ctx, dk.db, urls)
	if err != nil {
		return
	}

	dk.filename = filepath.Base(path)
	dk.logger.Info(ctx, "loaded url list", "path", path, "count", len(urls))
	return
}

// RowCount returns the number of urls loaded
func (dk *Duck) RowCount() (count int, err error) {

	err = dk.db.QueryRow("SELECT COUNT(*) FROM urls").Scan(&count)
	err = errors.Wrapf(err, "failed to count urls")
	return
}

// RowData returns the url at idx
func (dk *Duck) RowData(idx int) (url string, err error) {

	err = dk.db.QueryRow("SELECT url FROM urls WHERE idx = ?", idx).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		err = errors.Errorf("no url at index %d", idx)
		return
	}
	err = errors.Wrapf(err, "failed to get url %d", idx)
	return
}

// GetPage returns up to size urls starting at offset
func (dk *Duck) GetPage(offset, size int) (urls []string, err error) {

	query := fmt.Sprintf("SELECT url FROM urls ORDER BY idx LIMIT %d OFFSET %d", size, offset)

	rows, err := dk.db.Query(query)
	if err != nil {
		err = errors.Wrapf(err, "failed to query urls")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err = rows.Scan(&url); err != nil {
			err = errors.Wrapf(err, "failed to scan url")
			return
		}
		urls = append(urls, url)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating urls")
	return
}

// unexported

// readUrls reads one url per line, skipping blanks and comments
func readUrls(path string) (urls []string, err error) {

	file, err := os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open %s", path)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}

	err = scanner.Err()
	err = errors.Wrapf(err, "failed to read %s", path)
	return
}

func loadUrls(ctx context.Context, db *sql.DB, urls []string) (err error) {

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		err = errors.Wrapf(err, "failed to begin")
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		CREATE OR REPLACE TABLE urls (
			idx INTEGER PRIMARY KEY,
			url VARCHAR NOT NULL
		)
	`)
	if err != nil {
		err = errors.Wrapf(err, "failed to create table")
		return
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO urls (idx, url) VALUES (?, ?)")
	if err != nil {
		err = errors.Wrapf(err, "failed to prepare insert")
		return
	}
	defer stmt.Close()

	for i, url := range urls {
		_, err = stmt.ExecContext(ctx, i, url)
		if err != nil {
			err = errors.Wrapf(err, "failed to insert url %d", i)
			return
		}
	}

	err = tx.Commit()
	err = errors.Wrapf(err, "failed to commit")
	return
}
