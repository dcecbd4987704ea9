// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obsfmt reads and writes benchmark observation files.
//
// An observation file is a comma-separated text file with one timing
// observation per line:
//
//	tag,primary,secondary,trial,elapsed
//
// where tag names the system variant that produced the measurement,
// primary and secondary are worker counts, trial is the repetition
// index and elapsed is the measured time in milliseconds. A variant
// without a secondary dimension writes the literal token "None" in
// the secondary column.
//
// A medians file is the reduced form written by the medians command:
//
//	tag,primary,secondary,median
package obsfmt

import (
	"fmt"
	"strconv"
)

// NoneToken is the literal written in the secondary column of
// variants that have no secondary dimension.
const NoneToken = "None"

// Header is the header line written at the top of observation files.
const Header = "version,w,s,i,time (ms)"

// An Observation is a single timing measurement.
type Observation struct {
	// Tag identifies the system variant, for example "original"
	// or "txact".
	Tag string

	// Primary is the number of primary workers.
	Primary int

	// Secondary is the number of secondary workers. It is only
	// meaningful if HasSecondary is set.
	Secondary    int
	HasSecondary bool

	// Trial is the repetition index of this measurement.
	Trial int

	// Elapsed is the measured time in milliseconds.
	Elapsed float64

	fileName string
	line     int
	text     string
}

// Pos returns the file name and 1-based line number this observation
// was read from, or "", 0 if it was not read from a file.
func (o *Observation) Pos() (fileName string, line int) {
	return o.fileName, o.line
}

// Text returns the input line this observation was parsed from.
func (o *Observation) Text() string {
	return o.text
}

// SecondaryString returns the secondary column as it appears in
// files: the decimal value, or NoneToken.
func (o *Observation) SecondaryString() string {
	return secondaryString(o.Secondary, o.HasSecondary)
}

// A Median is one row of a medians file.
type Median struct {
	Tag          string
	Primary      int
	Secondary    int
	HasSecondary bool

	// Elapsed is the median time in milliseconds.
	Elapsed float64

	fileName string
	line     int
	text     string
}

func (m *Median) Pos() (fileName string, line int) {
	return m.fileName, m.line
}

func (m *Median) Text() string {
	return m.text
}

func (m *Median) SecondaryString() string {
	return secondaryString(m.Secondary, m.HasSecondary)
}

func secondaryString(v int, ok bool) string {
	if !ok {
		return NoneToken
	}
	return strconv.Itoa(v)
}

// An ErrorKind classifies a RowError.
type ErrorKind int

const (
	// MalformedRow means the line has the wrong number of fields
	// or a field that does not parse.
	MalformedRow ErrorKind = iota
	// UnexpectedFieldValue means the line parsed but a field holds
	// a value its variant does not allow.
	UnexpectedFieldValue
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedRow:
		return "malformed row"
	case UnexpectedFieldValue:
		return "unexpected field value"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// A RowError reports a line that was skipped. RowErrors are not
// fatal: readers report them and continue with the next line.
type RowError struct {
	Kind     ErrorKind
	FileName string
	Line     int
	Msg      string

	// Text is the content of the offending line.
	Text string
}

func (e *RowError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewRowError returns a RowError of kind k positioned at rec and
// echoing its input line.
func NewRowError(k ErrorKind, rec Record, msg string) *RowError {
	fileName, line := rec.Pos()
	var text string
	if t, ok := rec.(interface{ Text() string }); ok {
		text = t.Text()
	}
	return &RowError{Kind: k, FileName: fileName, Line: line, Msg: msg, Text: text}
}

// A Record is a single record read from an observation or medians
// file. It is an *Observation, a *Median or a *RowError.
type Record interface {
	// Pos returns the position of this record as a file name and
	// a 1-based line number within that file.
	Pos() (fileName string, line int)
}

var _ Record = (*Observation)(nil)
var _ Record = (*Median)(nil)
var _ Record = (*RowError)(nil)
