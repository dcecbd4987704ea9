// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsfmt

import (
	"bufio"
	"io"
	"strconv"
)

// A Writer writes observation files.
type Writer struct {
	w          *bufio.Writer
	wroteFirst bool

	// Header, if set, is written before the first record.
	Header bool
}

// NewWriter returns a Writer that writes to w. The caller must call
// Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), Header: true}
}

// Write writes one observation.
func (w *Writer) Write(o *Observation) error {
	if err := w.start(); err != nil {
		return err
	}
	w.field(o.Tag)
	w.field(strconv.Itoa(o.Primary))
	w.field(o.SecondaryString())
	w.field(strconv.Itoa(o.Trial))
	w.w.WriteString(FormatTime(o.Elapsed))
	_, err := w.w.WriteString("\n")
	return err
}

// WriteMedian writes one row of a medians file. Medians files have
// no header, so a Writer used for medians should have Header unset.
func (w *Writer) WriteMedian(m *Median) error {
	if err := w.start(); err != nil {
		return err
	}
	w.field(m.Tag)
	w.field(strconv.Itoa(m.Primary))
	w.field(m.SecondaryString())
	w.w.WriteString(FormatTime(m.Elapsed))
	_, err := w.w.WriteString("\n")
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.start(); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) start() error {
	if w.wroteFirst {
		return nil
	}
	w.wroteFirst = true
	if !w.Header {
		return nil
	}
	_, err := w.w.WriteString(Header + "\n")
	return err
}

func (w *Writer) field(s string) {
	w.w.WriteString(s)
	w.w.WriteByte(',')
}

// FormatTime formats a time in milliseconds using the shortest
// representation that parses back to the same value.
func FormatTime(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64)
}
