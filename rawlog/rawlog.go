// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rawlog extracts timing observations from a directory of
// raw benchmark logs.
//
// Each log is named
//
//	<tag>-w<primary>[-s<secondary>]-i<trial>.txt
//
// and must report exactly one line of the form
//
//	Total execution time: <ms> ms
package rawlog

import (
	"fmt"
	"path"
	"regexp"
	"strconv"

	"github.com/actorperf/actorperf/obsfmt"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// InfoFile is the name of the run description file that may sit next
// to the logs. It is not a log.
const InfoFile = "info.txt"

var (
	nameRE = regexp.MustCompile(`(.+)-w(\d+)(?:-s(\d+))?-i(\d+).txt`)
	timeRE = regexp.MustCompile(`Total execution time: ([\d.]+) ms`)
)

// A FileError reports a log file that was skipped.
type FileError struct {
	Name string
	Msg  string
}

func (e *FileError) Error() string {
	return e.Msg
}

// Extract reads every log in dir of fsys, in lexical order of file
// name, and returns one observation per valid log.
//
// Logs that cannot be used are skipped and reported in errs; they do
// not stop the extraction. err is only set if dir cannot be listed.
func Extract(fsys afero.Fs, dir string) (obs []*obsfmt.Observation, errs []error, err error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, nil, errors.Wrap(err, "listing results")
	}
	for _, info := range infos {
		name := info.Name()
		if name == InfoFile || info.IsDir() {
			continue
		}
		o, ferr := extractFile(fsys, dir, name)
		if ferr != nil {
			errs = append(errs, ferr)
			continue
		}
		obs = append(obs, o)
	}
	return obs, errs, nil
}

func extractFile(fsys afero.Fs, dir, name string) (*obsfmt.Observation, error) {
	m := nameRE.FindStringSubmatch(name)
	if m == nil {
		return nil, &FileError{name, fmt.Sprintf("Ignoring %s: wrong file name.", name)}
	}
	o := &obsfmt.Observation{Tag: m[1]}
	var err error
	if o.Primary, err = strconv.Atoi(m[2]); err != nil {
		return nil, &FileError{name, fmt.Sprintf("Ignoring %s: %v.", name, err)}
	}
	if m[3] != "" {
		if o.Secondary, err = strconv.Atoi(m[3]); err != nil {
			return nil, &FileError{name, fmt.Sprintf("Ignoring %s: %v.", name, err)}
		}
		o.HasSecondary = true
	}
	if o.Trial, err = strconv.Atoi(m[4]); err != nil {
		return nil, &FileError{name, fmt.Sprintf("Ignoring %s: %v.", name, err)}
	}

	data, err := afero.ReadFile(fsys, path.Join(dir, name))
	if err != nil {
		return nil, &FileError{name, fmt.Sprintf("Ignoring %s: %v.", name, err)}
	}
	times := timeRE.FindAllSubmatch(data, -1)
	if len(times) != 1 {
		return nil, &FileError{name, fmt.Sprintf("File %s has %d time measurements, expected 1.", name, len(times))}
	}
	if o.Elapsed, err = strconv.ParseFloat(string(times[0][1]), 64); err != nil {
		return nil, &FileError{name, fmt.Sprintf("File %s has an unreadable time measurement %q.", name, times[0][1])}
	}
	return o, nil
}
