// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package artifact creates output files without ever replacing an
// existing one, and derives output names from input names.
package artifact

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ErrExists is returned when an output file already exists.
var ErrExists = errors.New("output already exists")

// Create creates the named file for writing. It fails with an error
// wrapping ErrExists if the file already exists, in which case the
// existing file is left untouched.
func Create(fs afero.Fs, name string) (afero.File, error) {
	f, err := fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, errors.Wrap(ErrExists, name)
		}
		return nil, errors.Wrapf(err, "creating %s", name)
	}
	return f, nil
}

// CheckNew returns an error wrapping ErrExists if the named file
// already exists. Use it before a run that creates the file only at
// its end.
func CheckNew(fs afero.Fs, name string) error {
	ok, err := afero.Exists(fs, name)
	if err != nil {
		return errors.Wrapf(err, "checking %s", name)
	}
	if ok {
		return errors.Wrap(ErrExists, name)
	}
	return nil
}

// Write creates the named file with Create and fills it by calling
// write. If write or closing the file fails, the partial file is
// removed.
func Write(fs afero.Fs, name string, write func(w io.Writer) error) error {
	f, err := Create(fs, name)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fs.Remove(name)
		return errors.Wrapf(err, "writing %s", name)
	}
	return nil
}

// WriteTo creates the named file and writes the output of wt to it.
func WriteTo(fs afero.Fs, name string, wt io.WriterTo) error {
	return Write(fs, name, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	})
}

var csvSuffix = regexp.MustCompile(`(-medians)?\.csv$`)

// Derive replaces a trailing ".csv" or "-medians.csv" of in with
// suffix. It returns in unchanged if in has neither.
//
//	Derive("run.csv", "-speedup.pdf")         == "run-speedup.pdf"
//	Derive("run-medians.csv", "-speedup.pdf") == "run-speedup.pdf"
func Derive(in, suffix string) string {
	return csvSuffix.ReplaceAllLiteralString(in, suffix)
}

// Medians returns the name of the medians file for in by inserting
// "-medians" before its extension. It returns in unchanged if in has
// no extension. Dots in directory names are not extensions.
//
//	Medians("run.csv") == "run-medians.csv"
func Medians(in string) string {
	ext := filepath.Ext(in)
	if ext == "" {
		return in
	}
	return strings.TrimSuffix(in, ext) + "-medians" + ext
}

// IsMedians reports whether in names a medians file.
func IsMedians(in string) bool {
	return strings.Contains(in, "-medians")
}
