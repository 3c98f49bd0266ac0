// Package util holds the file helpers shared by the commands.
package util

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OpenLog opens path for appending, falling back to discard with a warning.
// The terminal belongs to the TUI, so logs go to a file.
func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	if path == "" {
		return io.Discard
	}

	var err error
	file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", err.Error())
		file = io.Discard
	}

	return
}

func CloseLog(file io.Writer) {

	closer, ok := file.(io.Closer)
	if ok {
		closer.Close()
	}
}

// LoadConfig unmarshals the yaml at path into cfg.
func LoadConfig(cfg any, path string) (err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = yaml.Unmarshal(data, cfg)
	err = errors.Wrapf(err, "failed to unmarshal %s", path)
	return
}

// SampleConfig writes data to path unless a config is already there.
func SampleConfig(data []byte, path string, mode os.FileMode) (wrote bool, err error) {

	_, err = os.Stat(path)
	if err == nil {
		return // already have a cfg
	}
	if !os.IsNotExist(err) {
		err = errors.Wrapf(err, "failed to stat %s", path)
		return
	}

	err = os.WriteFile(path, data, mode)
	if err != nil {
		err = errors.Wrapf(err, "failed to write to %s", path)
		return
	}

	wrote = true
	return
}
