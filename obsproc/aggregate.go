// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsproc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/actorperf/actorperf/obsfmt"
	"github.com/actorperf/actorperf/obsmath"
	"github.com/rs/zerolog"
)

// An Aggregator groups observations by Key.
//
// The zero value accepts every tag and discards diagnostics.
type Aggregator struct {
	// Policies maps tags to their validation policy. If Policies is
	// empty, every tag is accepted with SecondaryAny.
	Policies map[string]TagPolicy

	// Strict makes rows whose tag has no policy an error. If Strict
	// is false, such rows are dropped silently.
	Strict bool

	// Log receives one warning per skipped row. The zero Logger
	// discards everything.
	Log zerolog.Logger

	// Diagnostics accumulates the errors for every skipped row, in
	// input order.
	Diagnostics []error

	groups map[Key][]float64
	order  []Key
}

// NewAggregator returns an Aggregator that validates tags with
// policies and logs diagnostics to log.
func NewAggregator(policies map[string]TagPolicy, strict bool, log zerolog.Logger) *Aggregator {
	return &Aggregator{Policies: policies, Strict: strict, Log: log}
}

// Add adds one record to the aggregator. Observations are grouped by
// their key. A medians row counts as a single observation of its
// median. RowErrors are recorded as diagnostics.
func (a *Aggregator) Add(rec obsfmt.Record) {
	switch rec := rec.(type) {
	case *obsfmt.Observation:
		a.add(rec, KeyOf(rec), rec.Elapsed)
	case *obsfmt.Median:
		a.add(rec, MedianKey(rec), rec.Elapsed)
	case *obsfmt.RowError:
		a.diag(rec)
	}
}

func (a *Aggregator) add(rec obsfmt.Record, k Key, elapsed float64) {
	if len(a.Policies) > 0 {
		p, ok := a.Policies[k.Tag]
		if !ok {
			if a.Strict {
				a.diag(obsfmt.NewRowError(obsfmt.UnexpectedFieldValue, rec,
					fmt.Sprintf("version should be %s but is %s", a.tagList(), k.Tag)))
			}
			return
		}
		var msg string
		if k, msg = p.apply(k); msg != "" {
			a.diag(obsfmt.NewRowError(obsfmt.UnexpectedFieldValue, rec, msg))
			return
		}
		a.group(k, elapsed)
		return
	}
	a.group(k, elapsed)
}

func (a *Aggregator) group(k Key, elapsed float64) {
	if a.groups == nil {
		a.groups = make(map[Key][]float64)
	}
	if _, ok := a.groups[k]; !ok {
		a.order = append(a.order, k)
	}
	a.groups[k] = append(a.groups[k], elapsed)
}

func (a *Aggregator) tagList() string {
	var tags []string
	for tag := range a.Policies {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return strings.Join(tags, " or ")
}

func (a *Aggregator) diag(e *obsfmt.RowError) {
	a.Diagnostics = append(a.Diagnostics, e)
	a.Log.Warn().
		Str("file", e.FileName).
		Int("line", e.Line).
		Str("kind", e.Kind.String()).
		Str("text", e.Text).
		Msg(e.Msg)
}

// ReadAll adds every record from r. It returns only I/O errors; row
// errors are recorded in Diagnostics.
func (a *Aggregator) ReadAll(r *obsfmt.Reader) error {
	for r.Scan() {
		a.Add(r.Result())
	}
	return r.Err()
}

// Len returns the number of distinct keys seen so far.
func (a *Aggregator) Len() int {
	return len(a.order)
}

// Table reduces each group to its quartiles.
//
// Table does not modify the aggregator, so calling it again, even
// after more records were added, reflects all records added so far.
func (a *Aggregator) Table() *Table {
	t := &Table{
		Keys:      make([]Key, len(a.order)),
		Groups:    make(map[Key][]float64, len(a.order)),
		Quartiles: make(map[Key]obsmath.Quartiles, len(a.order)),
	}
	copy(t.Keys, a.order)
	SortKeys(t.Keys)
	for _, k := range t.Keys {
		vals := append([]float64(nil), a.groups[k]...)
		q, err := obsmath.NewQuartiles(vals)
		if err != nil {
			// Groups are only created by adding a value.
			panic(err)
		}
		t.Groups[k] = vals
		t.Quartiles[k] = q
	}
	return t
}
