// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsfmt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Format selects the record layout a Reader expects.
type Format int

const (
	// FormatObservations is tag,primary,secondary,trial,elapsed.
	FormatObservations Format = iota
	// FormatMedians is tag,primary,secondary,median.
	FormatMedians
)

func (f Format) fields() int {
	if f == FormatMedians {
		return 4
	}
	return 5
}

// A HeaderMode says how a Reader treats the first non-blank line of
// its input.
type HeaderMode int

const (
	// HeaderAuto discards the first line only if it looks like a
	// header: it has the expected number of columns, its primary
	// column is not an integer and its time column is not a number.
	// Any other first line is data.
	HeaderAuto HeaderMode = iota
	// HeaderSkip always discards the first line.
	HeaderSkip
	// HeaderNone treats the first line as data.
	HeaderNone
)

// ParseHeaderMode parses "auto", "skip" or "none".
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch s {
	case "auto":
		return HeaderAuto, nil
	case "skip":
		return HeaderSkip, nil
	case "none":
		return HeaderNone, nil
	}
	return 0, errors.Errorf("unknown header mode %q", s)
}

func (m HeaderMode) String() string {
	switch m {
	case HeaderAuto:
		return "auto"
	case HeaderSkip:
		return "skip"
	case HeaderNone:
		return "none"
	}
	return fmt.Sprintf("HeaderMode(%d)", int(m))
}

// An Option configures a Reader.
type Option func(r *Reader)

// WithHeader sets the header mode. The default is HeaderAuto.
func WithHeader(m HeaderMode) Option {
	return func(r *Reader) { r.header = m }
}

// WithFormat sets the record layout. The default is
// FormatObservations.
func WithFormat(f Format) Option {
	return func(r *Reader) { r.format = f }
}

// A Reader reads observation or medians files.
//
// Its API is modeled on bufio.Scanner. Each call to Scan produces one
// Record. Malformed lines produce *RowError records rather than
// stopping the scan, so a caller should keep calling Scan until it
// returns false and then check Err for I/O errors.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error

	header HeaderMode
	format Format

	// started is set once the first non-blank line has been read.
	started bool

	rec Record
}

var noResult = &RowError{Msg: "Reader.Scan has not been called"}

// NewReader returns a Reader for r. fileName is used in diagnostics
// only.
func NewReader(r io.Reader, fileName string, opts ...Option) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	reader := &Reader{s: bufio.NewScanner(r), fileName: fileName}
	for _, o := range opts {
		o(reader)
	}
	return reader
}

// Scan advances to the next record and reports whether there is one.
// Blank lines are skipped.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		text := r.s.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec := r.parseLine(text)
		if !r.started {
			r.started = true
			if r.header == HeaderSkip {
				continue
			}
			if r.header == HeaderAuto && r.looksLikeHeader(text) {
				continue
			}
		}
		r.rec = rec
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = errors.Wrapf(err, "%s:%d", r.fileName, r.line)
	}
	r.rec = nil
	return false
}

// Result returns the record read by the last call to Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noResult
	}
	return r.rec
}

// Err returns the first I/O error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) looksLikeHeader(text string) bool {
	fields := strings.Split(text, ",")
	if len(fields) != r.format.fields() {
		return false
	}
	if _, err := atoi(fields[1]); err == nil {
		return false
	}
	_, err := parseElapsed(fields[len(fields)-1])
	return err != nil
}

func (r *Reader) malformed(text, format string, args ...interface{}) *RowError {
	return &RowError{
		Kind:     MalformedRow,
		FileName: r.fileName,
		Line:     r.line,
		Msg:      fmt.Sprintf(format, args...),
		Text:     text,
	}
}

func (r *Reader) parseLine(text string) Record {
	fields := strings.Split(text, ",")
	if want := r.format.fields(); len(fields) != want {
		return r.malformed(text, "could not read line: want %d fields, have %d", want, len(fields))
	}

	tag := strings.TrimSpace(fields[0])
	if tag == "" {
		return r.malformed(text, "empty tag")
	}
	primary, err := atoi(fields[1])
	if err != nil {
		return r.malformed(text, "parsing primary: %v", err)
	}
	secondary, hasSecondary, err := parseSecondary(fields[2])
	if err != nil {
		return r.malformed(text, "parsing secondary: %v", err)
	}
	elapsed, err := parseElapsed(fields[len(fields)-1])
	if err != nil {
		return r.malformed(text, "parsing time: %v", err)
	}

	if r.format == FormatMedians {
		return &Median{
			Tag:          tag,
			Primary:      primary,
			Secondary:    secondary,
			HasSecondary: hasSecondary,
			Elapsed:      elapsed,
			fileName:     r.fileName,
			line:         r.line,
			text:         text,
		}
	}

	trial, err := atoi(fields[3])
	if err != nil {
		return r.malformed(text, "parsing trial: %v", err)
	}
	return &Observation{
		Tag:          tag,
		Primary:      primary,
		Secondary:    secondary,
		HasSecondary: hasSecondary,
		Trial:        trial,
		Elapsed:      elapsed,
		fileName:     r.fileName,
		line:         r.line,
		text:         text,
	}
}

func atoi(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err.(*strconv.NumError).Err
	}
	return v, nil
}

func parseSecondary(s string) (int, bool, error) {
	s = strings.TrimSpace(s)
	if s == NoneToken {
		return 0, false, nil
	}
	v, err := atoi(s)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// parseElapsed parses the time column. The column is the last on the
// line, so it usually still carries the line terminator.
func parseElapsed(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err.(*strconv.NumError).Err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("%v is not a finite time", v)
	}
	if v < 0 {
		return 0, errors.Errorf("negative time %v", v)
	}
	return v, nil
}
