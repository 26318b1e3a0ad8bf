// Package util is the file plumbing main needs before the program starts.
package util

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OpenLog opens path for appending, falling back to discarding when it cannot.
// The terminal belongs to the program so logs never go to stdout.
func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	if path == "" {
		return io.Discard
	}

	var err error
	file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
		file = io.Discard
	}

	return
}

func CloseLog(file io.Writer) {

	actually, ok := file.(*os.File)
	if ok {
		actually.Close()
	}
}

// LoadConfig unmarshals yaml from path into cfg.
// When path does not exist, sample is written there and loaded instead.
func LoadConfig(cfg any, path string, sample []byte, mode os.FileMode) (created bool, err error) {

	created, err = SampleConfig(sample, path, mode)
	if err != nil {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = yaml.Unmarshal(data, cfg)
	err = errors.Wrapf(err, "failed to unmarshal %s", path)
	return
}

func WriteConfig(cfg any, path string, mode os.FileMode) (err error) {

	data, err := yaml.Marshal(cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal")
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// SampleConfig writes data to path unless something is already there.
func SampleConfig(data []byte, path string, mode os.FileMode) (written bool, err error) {

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
	return true, nil
}
