// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out column-aligned text tables for the
// console.
package texttab

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Table lays out cells in aligned columns.
//
// Row and Cell return the Table so a row can be built in one chain:
//
//	tab.Row().Cell("key").Cell("1.5", texttab.Right)
type Table struct {
	rows [][]cell
	// rules holds the indexes of rows preceded by a rule line.
	rules map[int]bool
	cols  int

	// Gap separates adjacent columns. It defaults to two spaces.
	Gap string
}

type cell struct {
	value string
	right bool
}

// A CellOption changes how a cell is printed.
type CellOption func(c *cell)

var (
	// Left aligns a cell to the left of its column. This is the
	// default.
	Left CellOption = func(c *cell) { c.right = false }
	// Right aligns a cell to the right of its column.
	Right CellOption = func(c *cell) { c.right = true }
)

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Rule starts a new row preceded by a line of dashes across the
// table.
func (t *Table) Rule() *Table {
	t.Row()
	if t.rules == nil {
		t.rules = make(map[int]bool)
	}
	t.rules[len(t.rows)-1] = true
	return t
}

// Cell appends a cell to the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r := &t.rows[len(t.rows)-1]
	*r = append(*r, c)
	if len(*r) > t.cols {
		t.cols = len(*r)
	}
	return t
}

// Format writes the table to w. Trailing spaces are trimmed from
// every line.
func (t *Table) Format(w io.Writer) error {
	gap := t.Gap
	if gap == "" {
		gap = "  "
	}
	widths := make([]int, t.cols)
	for _, r := range t.rows {
		for i, c := range r {
			if n := utf8.RuneCountInString(c.value); n > widths[i] {
				widths[i] = n
			}
		}
	}
	total := 0
	for i, wd := range widths {
		if i > 0 {
			total += utf8.RuneCountInString(gap)
		}
		total += wd
	}

	var b strings.Builder
	for ri, r := range t.rows {
		if t.rules[ri] {
			b.WriteString(strings.Repeat("-", total))
			b.WriteByte('\n')
		}
		var line strings.Builder
		for i, c := range r {
			if i > 0 {
				line.WriteString(gap)
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c.value))
			if c.right {
				line.WriteString(pad + c.value)
			} else {
				line.WriteString(c.value + pad)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
