// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsproc

import (
	"github.com/actorperf/actorperf/obsmath"
)

// A Table is the quartile summary of a set of observations.
type Table struct {
	// Keys lists every key in ascending order.
	Keys []Key

	// Groups maps each key to its elapsed times in input order.
	Groups map[Key][]float64

	// Quartiles maps each key to the quartiles of its group.
	Quartiles map[Key]obsmath.Quartiles
}

// Lookup returns the quartiles of key k.
func (t *Table) Lookup(k Key) (obsmath.Quartiles, bool) {
	q, ok := t.Quartiles[k]
	return q, ok
}

// Tags returns the distinct tags in t, in key order.
func (t *Table) Tags() []string {
	var tags []string
	for _, k := range t.Keys {
		if len(tags) == 0 || tags[len(tags)-1] != k.Tag {
			tags = append(tags, k.Tag)
		}
	}
	return tags
}

// Select returns the sub-table of keys with the given tag. The
// returned Table shares group slices with t.
func (t *Table) Select(tag string) *Table {
	sub := &Table{
		Groups:    make(map[Key][]float64),
		Quartiles: make(map[Key]obsmath.Quartiles),
	}
	for _, k := range t.Keys {
		if k.Tag != tag {
			continue
		}
		sub.Keys = append(sub.Keys, k)
		sub.Groups[k] = t.Groups[k]
		sub.Quartiles[k] = t.Quartiles[k]
	}
	return sub
}

// Summary returns a description of the group of key k.
func (t *Table) Summary(k Key) (obsmath.Summary, bool) {
	vals, ok := t.Groups[k]
	if !ok {
		return obsmath.Summary{}, false
	}
	s, err := obsmath.Describe(vals)
	return s, err == nil
}
