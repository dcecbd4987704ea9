// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obsmath computes order statistics over repeated timing
// observations and the speedups derived from them.
package obsmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
)

// ErrEmpty is returned when summarizing an empty set of values.
var ErrEmpty = errors.New("no values")

// Quartiles holds the 25th percentile, median and 75th percentile of
// a set of values.
//
// For times, First <= Median <= Third. Speedups derived with Speedup
// keep the same ordering.
type Quartiles struct {
	First, Median, Third float64
}

// NewQuartiles computes the quartiles of values using linear
// interpolation between order statistics. It does not modify values.
func NewQuartiles(values []float64) (Quartiles, error) {
	if len(values) == 0 {
		return Quartiles{}, ErrEmpty
	}
	xs := sortedCopy(values)
	return Quartiles{
		First:  Percentile(xs, 0.25),
		Median: Percentile(xs, 0.5),
		Third:  Percentile(xs, 0.75),
	}, nil
}

func sortedCopy(values []float64) []float64 {
	s := &stats.Sample{Xs: append([]float64(nil), values...)}
	return s.Sort().Xs
}

// Percentile returns the q-quantile of sorted, for q in [0, 1].
//
// The result interpolates linearly between the two order statistics
// closest to rank (len(sorted)-1)*q, which is the definition used by
// numpy.percentile and R's type 7. sorted must be in ascending order
// and non-empty.
func Percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		panic("Percentile of empty sample")
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * q
	lo := int(math.Floor(h))
	if lo+1 >= n {
		return sorted[n-1]
	}
	a, b := sorted[lo], sorted[lo+1]
	v := a + (h-float64(lo))*(b-a)
	// Rounding must not carry the result out of [a, b], or
	// neighboring quantiles could come out of order.
	return math.Min(math.Max(v, a), b)
}

// Monotonic reports whether First <= Median <= Third.
func (q Quartiles) Monotonic() bool {
	return q.First <= q.Median && q.Median <= q.Third
}

// Speedup converts time quartiles to speedup quartiles relative to a
// baseline time.
//
// A longer time is a lower speedup, so the first quartile of the
// speedup comes from the third quartile of the time and vice versa.
func (q Quartiles) Speedup(base float64) Quartiles {
	return Quartiles{
		First:  base / q.Third,
		Median: base / q.Median,
		Third:  base / q.First,
	}
}

// An ErrorBar is the asymmetric distance from a median to its first
// and third quartiles.
type ErrorBar struct {
	Low, High float64
}

// ErrorBar returns the distances from the median to the first and
// third quartiles. Both are non-negative for monotonic quartiles.
func (q Quartiles) ErrorBar() ErrorBar {
	return ErrorBar{Low: q.Median - q.First, High: q.Third - q.Median}
}

// Valid reports whether both sides of the bar are non-negative.
func (e ErrorBar) Valid() bool {
	return e.Low >= 0 && e.High >= 0
}

func (q Quartiles) String() string {
	return fmt.Sprintf("[%.4g %.4g %.4g]", q.First, q.Median, q.Third)
}

// A Summary describes a set of repeated observations.
type Summary struct {
	N         int
	Min, Max  float64
	Mean      float64
	Quartiles Quartiles
}

// Describe summarizes values. It does not modify values.
func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmpty
	}
	s := stats.Sample{Xs: sortedCopy(values), Sorted: true}
	lo, hi := s.Bounds()
	return Summary{
		N:    len(values),
		Min:  lo,
		Max:  hi,
		Mean: s.Mean(),
		Quartiles: Quartiles{
			First:  Percentile(s.Xs, 0.25),
			Median: Percentile(s.Xs, 0.5),
			Third:  Percentile(s.Xs, 0.75),
		},
	}, nil
}
