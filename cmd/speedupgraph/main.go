// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// speedupgraph draws one speedup chart per variant from an
// observation file.
//
// Usage:
//
//	speedupgraph [in] [prefix]
//
// in defaults to 20170899-final.csv. Each chart is written to the
// input name with its ".csv" (or "-medians.csv") replaced by the
// chart's suffix, for example 20170899-final-txact-speedup-graph.pdf.
// If prefix is given, chart names are prefix followed by the suffix.
//
// Speedups of each variant are relative to that variant's median time
// with one primary worker (and one secondary worker, where the variant
// has them). Charts of variants absent from in are skipped. Error bars
// span the first to third quartile, so in should hold every
// observation, not only medians.
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
	cmdutil.Main(cmdutil.Command("speedupgraph [in] [prefix]", "Draw the speedup chart of every variant", run))
}

func run(stdout, stderr io.Writer, fs afero.Fs, args []string) error {
	in := cmdutil.Arg(args, 0, defaultInput)
	log := logging.New(stdout, "")
	cfg := config.Default()

	t, err := cmdutil.ReadObservations(log, fs, in, cfg)
	if err != nil {
		return err
	}
	present := make(map[string]bool)
	for _, tag := range t.Tags() {
		present[tag] = true
	}
	for _, fig := range cfg.FiguresFor("speedupgraph") {
		if !showsAny(fig, present) {
			log.Info().Str("figure", fig.Name).Msg("no observations of the figure's variants, skipped")
			continue
		}
		out := artifact.Derive(in, fig.Suffix)
		if len(args) > 1 {
			out = args[1] + fig.Suffix
		}
		if _, err := cmdutil.DrawFigure(log, fs, t, fig, out); err != nil {
			return err
		}
	}
	return nil
}

// showsAny reports whether a series of fig draws one of the tags in
// present.
func showsAny(fig config.Figure, present map[string]bool) bool {
	for _, sc := range fig.Series {
		if present[sc.Tag] {
			return true
		}
	}
	return false
}
