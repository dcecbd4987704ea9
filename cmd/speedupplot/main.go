// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// speedupplot draws the speedups of all variants in one chart.
//
// Usage:
//
//	speedupplot [in] [out]
//
// in defaults to 20170899-final.csv and out to in with its ".csv"
// (or "-medians.csv") replaced by "-speedup.pdf". Every curve is
// relative to the median time of the original variant with a single
// worker, so the chart compares the variants with each other. The
// speedup table is printed after the chart is saved.
package main

import (
	"io"

	"github.com/actorperf/actorperf/artifact"
	"github.com/actorperf/actorperf/internal/cmdutil"
	"github.com/actorperf/actorperf/internal/config"
	"github.com/actorperf/actorperf/internal/logging"
	"github.com/spf13/afero"
)

const defaultInput = "20170899-final.csv"

func main() {
	cmdutil.Main(cmdutil.Command("speedupplot [in] [out]", "Draw the speedups of all variants in one chart", run))
}

func run(stdout, stderr io.Writer, fs afero.Fs, args []string) error {
	in := cmdutil.Arg(args, 0, defaultInput)
	log := logging.New(stdout, "")
	cfg := config.Default()

	t, err := cmdutil.ReadObservations(log, fs, in, cfg)
	if err != nil {
		return err
	}
	for _, fig := range cfg.FiguresFor("speedupplot") {
		out := cmdutil.Arg(args, 1, artifact.Derive(in, fig.Suffix))
		s, err := cmdutil.DrawFigure(log, fs, t, fig, out)
		if err != nil {
			return err
		}
		if err := cmdutil.PrintSpeedups(stdout, s); err != nil {
			return err
		}
	}
	return nil
}
