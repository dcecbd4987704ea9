// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdutil holds the plumbing shared by the analysis commands:
// argument defaults, reading observation files and printing
// summaries.
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/actorperf/actorperf/internal/texttab"
	"github.com/actorperf/actorperf/obsfmt"
	"github.com/actorperf/actorperf/obsproc"
	"github.com/actorperf/actorperf/speedup"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// A RunFunc is the body of a command. It writes diagnostics to
// stdout, reads and writes files through fs, and returns an error for
// anything that should stop the run.
type RunFunc func(stdout, stderr io.Writer, fs afero.Fs, args []string) error

// Command returns a command that accepts up to two positional
// arguments and runs run on the operating system's filesystem.
func Command(use, short string, run RunFunc) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), afero.NewOsFs(), args)
		},
	}
}

// Main executes cmd and exits with status 1 if it fails.
func Main(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", cmd.Name(), err)
		os.Exit(1)
	}
}

// Arg returns args[i], or def if there are not that many arguments.
func Arg(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

// ReadFile adds every record of the named file to agg and returns the
// resulting table.
func ReadFile(fs afero.Fs, name string, agg *obsproc.Aggregator, opts ...obsfmt.Option) (*obsproc.Table, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "reading observations")
	}
	defer f.Close()
	if err := agg.ReadAll(obsfmt.NewReader(f, name, opts...)); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return agg.Table(), nil
}

// PrintQuartiles writes one line per key of t with its sample size
// and quartiles.
func PrintQuartiles(w io.Writer, t *obsproc.Table) error {
	var tab texttab.Table
	tab.Row().Cell("key").Cell("n", texttab.Right).
		Cell("min", texttab.Right).Cell("q1", texttab.Right).Cell("median", texttab.Right).
		Cell("q3", texttab.Right).Cell("max", texttab.Right)
	for i, k := range t.Keys {
		s, _ := t.Summary(k)
		if i == 0 {
			tab.Rule()
		} else {
			tab.Row()
		}
		tab.Cell(k.String()).Cell(strconv.Itoa(s.N), texttab.Right).
			Cell(ms(s.Min), texttab.Right).Cell(ms(s.Quartiles.First), texttab.Right).
			Cell(ms(s.Quartiles.Median), texttab.Right).Cell(ms(s.Quartiles.Third), texttab.Right).
			Cell(ms(s.Max), texttab.Right)
	}
	return tab.Format(w)
}

// PrintSpeedups writes one line per point of s with its median time
// and speedup quartiles.
func PrintSpeedups(w io.Writer, s *speedup.Series) error {
	var tab texttab.Table
	tab.Row().Cell("key").Cell("time (ms)", texttab.Right).
		Cell("speed-up", texttab.Right).Cell("q1", texttab.Right).Cell("q3", texttab.Right)
	for i, pt := range s.Points {
		if i == 0 {
			tab.Rule()
		} else {
			tab.Row()
		}
		tab.Cell(pt.Key.String()).Cell(ms(pt.Time.Median), texttab.Right).
			Cell(ratio(pt.Speedup.Median), texttab.Right).
			Cell(ratio(pt.Speedup.First), texttab.Right).
			Cell(ratio(pt.Speedup.Third), texttab.Right)
	}
	return tab.Format(w)
}

func ms(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func ratio(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
