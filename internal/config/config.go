// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the static display settings of the analysis
// commands: per-tag validation rules, chart layouts and table
// layouts.
package config

import (
	"bytes"
	_ "embed"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/actorperf/actorperf/obsproc"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaults []byte

// Config is the complete set of display settings.
type Config struct {
	Tags    map[string]TagConfig `yaml:"tags"`
	Figures []Figure             `yaml:"figures"`
	Tables  []Table              `yaml:"tables"`
}

// TagConfig is the validation rule of one tag.
type TagConfig struct {
	// Secondary is "any", "none" or "required".
	Secondary string `yaml:"secondary"`
	// Default replaces "None" in the secondary column.
	Default *int `yaml:"default"`
}

// A KeyConfig names one experiment configuration.
type KeyConfig struct {
	Tag       string `yaml:"tag"`
	Primary   int    `yaml:"primary"`
	Secondary *int   `yaml:"secondary"`
}

// Key returns the key k names.
func (k KeyConfig) Key() obsproc.Key {
	key := obsproc.Key{Tag: k.Tag, Primary: k.Primary}
	if k.Secondary != nil {
		key.Secondary, key.HasSecondary = *k.Secondary, true
	}
	return key
}

// A Figure describes one speedup chart.
type Figure struct {
	Name string `yaml:"name"`

	// Command is the command that draws this figure.
	Command string `yaml:"command"`

	// Suffix replaces the ".csv" of the input to form the output
	// name.
	Suffix string `yaml:"suffix"`

	// Width and Height are in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	XLabel string  `yaml:"xlabel"`
	YLabel string  `yaml:"ylabel"`
	XMin   float64 `yaml:"xmin"`
	XMax   float64 `yaml:"xmax"`
	YMax   float64 `yaml:"ymax"`

	Baseline KeyConfig `yaml:"baseline"`

	// AnnotateBaseline labels the baseline point with its time.
	AnnotateBaseline bool `yaml:"annotateBaseline"`

	// Palette is the ColorBrewer palette for series without an
	// explicit color.
	Palette string `yaml:"palette"`

	Series []Series `yaml:"series"`
}

// A Series is one curve of a Figure.
type Series struct {
	Tag       string `yaml:"tag"`
	Secondary *int   `yaml:"secondary"`
	Label     string `yaml:"label"`

	// Color is "#rrggbb". If empty, the figure palette is used.
	Color string `yaml:"color"`

	// AnnotateMax labels the point of highest speedup.
	AnnotateMax bool `yaml:"annotateMax"`
}

// RGBA parses Color.
func (s Series) RGBA() (color.RGBA, bool) {
	return parseColor(s.Color)
}

// A Table describes one speedup heat map.
type Table struct {
	Name     string    `yaml:"name"`
	Suffix   string    `yaml:"suffix"`
	Tag      string    `yaml:"tag"`
	Baseline KeyConfig `yaml:"baseline"`
	XCaption string    `yaml:"xcaption"`
	YCaption string    `yaml:"ycaption"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c, err := Load(bytes.NewReader(defaults))
	if err != nil {
		panic("bad built-in configuration: " + err.Error())
	}
	return c
}

// Load reads a configuration from r. Unknown fields are errors.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	for tag, tc := range c.Tags {
		rule, err := obsproc.ParseSecondaryRule(tc.Secondary)
		if err != nil {
			return errors.Wrapf(err, "tag %s", tag)
		}
		if tc.Default != nil && rule != obsproc.SecondaryNone {
			return errors.Errorf("tag %s: default requires secondary: none", tag)
		}
	}
	names := make(map[string]bool)
	for _, f := range c.Figures {
		if f.Name == "" || names[f.Name] {
			return errors.Errorf("figure name %q is empty or repeated", f.Name)
		}
		names[f.Name] = true
		if f.Suffix == "" {
			return errors.Errorf("figure %s: missing suffix", f.Name)
		}
		if !(f.Width > 0 && f.Height > 0) {
			return errors.Errorf("figure %s: size must be positive", f.Name)
		}
		if f.XMin >= f.XMax || f.YMax <= 0 {
			return errors.Errorf("figure %s: empty axis range", f.Name)
		}
		if len(f.Series) == 0 {
			return errors.Errorf("figure %s: no series", f.Name)
		}
		for _, s := range f.Series {
			if s.Color != "" {
				if _, ok := s.RGBA(); !ok {
					return errors.Errorf("figure %s: bad color %q", f.Name, s.Color)
				}
			}
		}
	}
	for _, t := range c.Tables {
		if t.Suffix == "" || t.Tag == "" {
			return errors.Errorf("table %s: missing suffix or tag", t.Name)
		}
	}
	return nil
}

// Policies returns the validation policy of every configured tag.
func (c *Config) Policies() map[string]obsproc.TagPolicy {
	ps := make(map[string]obsproc.TagPolicy, len(c.Tags))
	for tag, tc := range c.Tags {
		// validate has checked the rule.
		rule, _ := obsproc.ParseSecondaryRule(tc.Secondary)
		ps[tag] = obsproc.TagPolicy{Secondary: rule, Default: tc.Default}
	}
	return ps
}

// FiguresFor returns the figures drawn by the named command.
func (c *Config) FiguresFor(command string) []Figure {
	var fs []Figure
	for _, f := range c.Figures {
		if f.Command == command {
			fs = append(fs, f)
		}
	}
	return fs
}

func parseColor(s string) (color.RGBA, bool) {
	if !strings.HasPrefix(s, "#") || len(s) != 7 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
