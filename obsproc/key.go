// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obsproc groups timing observations by experiment
// configuration and reduces each group to quartiles.
package obsproc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/actorperf/actorperf/obsfmt"
)

// A Key identifies one experiment configuration: a system variant
// and its worker counts.
//
// Keys are comparable and can be used as map keys.
type Key struct {
	Tag          string
	Primary      int
	Secondary    int
	HasSecondary bool
}

// KeyOf returns the Key of an observation.
func KeyOf(o *obsfmt.Observation) Key {
	return Key{Tag: o.Tag, Primary: o.Primary, Secondary: o.Secondary, HasSecondary: o.HasSecondary}
}

// MedianKey returns the Key of a medians file row.
func MedianKey(m *obsfmt.Median) Key {
	return Key{Tag: m.Tag, Primary: m.Primary, Secondary: m.Secondary, HasSecondary: m.HasSecondary}
}

// Compare returns -1, 0 or 1 depending on whether k sorts before, the
// same as, or after o.
//
// Keys are ordered by tag, then by primary count, then by secondary
// count. A key without a secondary count sorts before every key with
// one.
func (k Key) Compare(o Key) int {
	if c := strings.Compare(k.Tag, o.Tag); c != 0 {
		return c
	}
	if c := compareInt(k.Primary, o.Primary); c != 0 {
		return c
	}
	if k.HasSecondary != o.HasSecondary {
		if !k.HasSecondary {
			return -1
		}
		return 1
	}
	if !k.HasSecondary {
		return 0
	}
	return compareInt(k.Secondary, o.Secondary)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less reports whether k sorts before o.
func (k Key) Less(o Key) bool {
	return k.Compare(o) < 0
}

// SecondaryString returns the secondary count, or "None".
func (k Key) SecondaryString() string {
	if !k.HasSecondary {
		return obsfmt.NoneToken
	}
	return fmt.Sprint(k.Secondary)
}

// String returns the key as "tag(p, s)", for example "txact(38, 8)"
// or "original(1, None)".
func (k Key) String() string {
	return fmt.Sprintf("%s(%d, %s)", k.Tag, k.Primary, k.SecondaryString())
}

// SortKeys sorts keys in ascending order.
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
}
