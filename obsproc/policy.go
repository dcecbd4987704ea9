// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsproc

import (
	"fmt"

	"github.com/pkg/errors"
)

// A SecondaryRule says which values a tag allows in the secondary
// column.
type SecondaryRule int

const (
	// SecondaryAny allows both "None" and numbers.
	SecondaryAny SecondaryRule = iota
	// SecondaryNone requires "None".
	SecondaryNone
	// SecondaryRequired requires a number.
	SecondaryRequired
)

// ParseSecondaryRule parses "any", "none" or "required".
func ParseSecondaryRule(s string) (SecondaryRule, error) {
	switch s {
	case "", "any":
		return SecondaryAny, nil
	case "none":
		return SecondaryNone, nil
	case "required":
		return SecondaryRequired, nil
	}
	return 0, errors.Errorf("unknown secondary rule %q", s)
}

func (r SecondaryRule) String() string {
	switch r {
	case SecondaryAny:
		return "any"
	case SecondaryNone:
		return "none"
	case SecondaryRequired:
		return "required"
	}
	return fmt.Sprintf("SecondaryRule(%d)", int(r))
}

// A TagPolicy validates the observations of one tag.
type TagPolicy struct {
	Secondary SecondaryRule

	// Default, if non-nil, replaces "None" in the secondary column
	// of accepted rows. It is only used with SecondaryNone.
	Default *int
}

// apply validates k and returns the key to group it under. If k is
// rejected, apply returns a message describing why.
func (p TagPolicy) apply(k Key) (Key, string) {
	switch p.Secondary {
	case SecondaryNone:
		if k.HasSecondary {
			return k, fmt.Sprintf("expected secondary to be None for version %s, but is %d", k.Tag, k.Secondary)
		}
		if p.Default != nil {
			k.Secondary, k.HasSecondary = *p.Default, true
		}
	case SecondaryRequired:
		if !k.HasSecondary {
			return k, fmt.Sprintf("secondary is None, but expected a number for version %s", k.Tag)
		}
	}
	return k, ""
}
