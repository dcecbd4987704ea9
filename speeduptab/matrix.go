// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speeduptab lays out the speedups of one variant as a heat
// map with primary worker counts as columns and secondary worker
// counts as rows.
package speeduptab

import (
	"math"

	"github.com/actorperf/actorperf/obsproc"
	"github.com/actorperf/actorperf/speedup"
)

// A Cell is one entry of a Matrix.
type Cell struct {
	Primary, Secondary int

	// Speedup is the median speedup. It is only meaningful if OK
	// is set.
	Speedup float64
	OK      bool
}

// A Matrix is a grid of speedups.
type Matrix struct {
	Tag string

	// Primaries are the column headings, ascending.
	Primaries []int
	// Secondaries are the row headings, ascending.
	Secondaries []int

	// Rows holds one row per secondary count, each with one Cell
	// per primary count.
	Rows [][]Cell

	// Max is the largest finite speedup in the matrix.
	Max float64
}

// Build lays out the speedups of tag in s. Configurations without
// observations, or with a non-finite speedup, leave their cell empty.
func Build(s *speedup.Series, tag string) *Matrix {
	m := &Matrix{
		Tag:         tag,
		Primaries:   s.Primaries(tag),
		Secondaries: s.Secondaries(tag),
	}
	for _, sec := range m.Secondaries {
		row := make([]Cell, len(m.Primaries))
		for j, p := range m.Primaries {
			row[j] = Cell{Primary: p, Secondary: sec}
			pt, ok := s.Lookup(obsproc.Key{Tag: tag, Primary: p, Secondary: sec, HasSecondary: true})
			v := pt.Speedup.Median
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			row[j].Speedup, row[j].OK = v, true
			if v > m.Max {
				m.Max = v
			}
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

// Ratio returns the speedup of c relative to the largest speedup in
// m, in [0, 1].
func (m *Matrix) Ratio(c Cell) float64 {
	if !c.OK || m.Max <= 0 {
		return 0
	}
	return c.Speedup / m.Max
}

// CMYK returns the fill color of a cell whose speedup is ratio times
// the maximum. Colors run from a pale yellow for low speedups to a
// saturated green for the maximum.
func CMYK(ratio float64) [4]float64 {
	r2 := ratio * ratio
	return [4]float64{0.7 * r2, 0, 0.85*r2 + 0.15, 0}
}
