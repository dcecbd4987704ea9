// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speedup derives speedups from quartile summaries of
// elapsed times.
//
// The speedup of a configuration is B/t, where B is the median time
// of a baseline configuration and t a time of the configuration.
// Because a longer time is a lower speedup, the first quartile of a
// speedup is derived from the third quartile of the time, and vice
// versa.
package speedup

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/actorperf/actorperf/obsmath"
	"github.com/actorperf/actorperf/obsproc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	// ErrMissingBaseline is returned by Derive when the baseline
	// key has no observations.
	ErrMissingBaseline = errors.New("missing baseline")

	// ErrInvalidBaseline is returned by Derive when the baseline
	// median is not a positive finite time.
	ErrInvalidBaseline = errors.New("invalid baseline")
)

// A Baseline selects the reference median time of a derivation.
type Baseline interface {
	median(t *obsproc.Table) (float64, error)
	String() string
}

type keyBaseline obsproc.Key

// AtKey returns a Baseline that uses the median time of key k.
func AtKey(k obsproc.Key) Baseline {
	return keyBaseline(k)
}

func (b keyBaseline) median(t *obsproc.Table) (float64, error) {
	q, ok := t.Lookup(obsproc.Key(b))
	if !ok {
		return 0, errors.Wrapf(ErrMissingBaseline, "no observations for %v", obsproc.Key(b))
	}
	return q.Median, nil
}

func (b keyBaseline) String() string {
	return obsproc.Key(b).String()
}

type valueBaseline float64

// Value returns a Baseline with an explicit median time in
// milliseconds. It is used to normalize one variant's times by
// another variant's baseline.
func Value(ms float64) Baseline {
	return valueBaseline(ms)
}

func (b valueBaseline) median(*obsproc.Table) (float64, error) {
	return float64(b), nil
}

func (b valueBaseline) String() string {
	return fmt.Sprintf("%v ms", float64(b))
}

// A Point is the speedup of one configuration.
type Point struct {
	Key obsproc.Key

	// Time holds the quartiles of the elapsed times.
	Time obsmath.Quartiles

	// Speedup holds the speedup quartiles.
	Speedup obsmath.Quartiles

	// Error is the error bar around the median speedup.
	Error obsmath.ErrorBar
}

// A Series is the speedup of every configuration in a Table.
type Series struct {
	// Baseline is the median time every speedup is relative to.
	Baseline float64

	// Points has one entry per key, in ascending key order.
	Points []Point

	index map[obsproc.Key]int
}

// Derive computes the speedup of every key in t relative to base.
//
// If the baseline key is not in t, Derive returns an error wrapping
// ErrMissingBaseline. A baseline is never substituted.
func Derive(t *obsproc.Table, base Baseline) (*Series, error) {
	b, err := base.median(t)
	if err != nil {
		return nil, err
	}
	if !(b > 0) || math.IsInf(b, 0) {
		return nil, errors.Wrapf(ErrInvalidBaseline, "baseline %v has median %v", base, b)
	}
	s := &Series{
		Baseline: b,
		Points:   make([]Point, 0, len(t.Keys)),
		index:    make(map[obsproc.Key]int, len(t.Keys)),
	}
	for _, k := range t.Keys {
		q := t.Quartiles[k]
		sp := q.Speedup(b)
		s.index[k] = len(s.Points)
		s.Points = append(s.Points, Point{Key: k, Time: q, Speedup: sp, Error: sp.ErrorBar()})
	}
	return s, nil
}

// Lookup returns the point of key k.
func (s *Series) Lookup(k obsproc.Key) (Point, bool) {
	i, ok := s.index[k]
	if !ok {
		return Point{}, false
	}
	return s.Points[i], true
}

// Select returns the points of s with the given tag as a Series with
// the same baseline.
func (s *Series) Select(tag string) *Series {
	sub := &Series{Baseline: s.Baseline, index: make(map[obsproc.Key]int)}
	for _, p := range s.Points {
		if p.Key.Tag == tag {
			sub.index[p.Key] = len(sub.Points)
			sub.Points = append(sub.Points, p)
		}
	}
	return sub
}

// Max returns the point with the highest median speedup. Only
// speedups above 1 count; if no point exceeds 1, Max returns false.
// Ties go to the first point in key order.
func (s *Series) Max() (Point, bool) {
	best, found := 1.0, -1
	for i, p := range s.Points {
		if p.Speedup.Median > best {
			best, found = p.Speedup.Median, i
		}
	}
	if found < 0 {
		return Point{}, false
	}
	return s.Points[found], true
}

// Report logs the maximum speedup of s for the named variant.
func (s *Series) Report(log zerolog.Logger, version string) {
	p, ok := s.Max()
	if !ok {
		log.Info().Str("version", version).Msgf("Maximal speed-up of 1 reached for None in version %s", version)
		return
	}
	log.Info().
		Str("version", version).
		Float64("time", p.Time.Median).
		Msgf("Maximal speed-up of %v reached for %v in version %s", p.Speedup.Median, p.Key, version)
}

// CheckErrorBars returns an error naming the first point whose error
// bar is negative on either side.
func (s *Series) CheckErrorBars() error {
	for _, p := range s.Points {
		if !p.Error.Valid() {
			return errors.Errorf("negative error bar %+v at %v", p.Error, p.Key)
		}
	}
	return nil
}

// Line returns the points of one curve: the keys with the given tag
// and, if secondary is non-nil, that secondary count. The points are
// ordered by primary count.
func (s *Series) Line(tag string, secondary *int) []Point {
	var out []Point
	for _, p := range s.Points {
		if p.Key.Tag != tag {
			continue
		}
		if secondary != nil && (!p.Key.HasSecondary || p.Key.Secondary != *secondary) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Primaries returns the distinct primary counts of tag, ascending.
func (s *Series) Primaries(tag string) []int {
	var ps []int
	for _, p := range s.Points {
		if p.Key.Tag == tag {
			ps = append(ps, p.Key.Primary)
		}
	}
	return nubSorted(ps)
}

// Secondaries returns the distinct secondary counts of tag,
// ascending. Keys without a secondary count are omitted.
func (s *Series) Secondaries(tag string) []int {
	var ss []int
	for _, p := range s.Points {
		if p.Key.Tag == tag && p.Key.HasSecondary {
			ss = append(ss, p.Key.Secondary)
		}
	}
	return nubSorted(ss)
}

func nubSorted(xs []int) []int {
	if len(xs) == 0 {
		return nil
	}
	out := slice.Nub(xs).([]int)
	slice.Sort(out)
	return out
}
