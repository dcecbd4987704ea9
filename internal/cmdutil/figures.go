// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdutil

import (
	"github.com/actorperf/actorperf/artifact"
	"github.com/actorperf/actorperf/chart"
	"github.com/actorperf/actorperf/internal/config"
	"github.com/actorperf/actorperf/obsfmt"
	"github.com/actorperf/actorperf/obsproc"
	"github.com/actorperf/actorperf/speedup"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ReadObservations reads the observation file in for charting. Rows
// of variants cfg does not know, or that break their variant's rule,
// are reported and skipped.
//
// Error bars need every observation, so a medians file draws a
// warning. It is still read, as one observation per configuration.
func ReadObservations(log zerolog.Logger, fs afero.Fs, in string, cfg *config.Config) (*obsproc.Table, error) {
	var opts []obsfmt.Option
	if artifact.IsMedians(in) {
		log.Warn().Msg("do not use -medians.csv, but original, so I can calculate error bars.")
		opts = append(opts, obsfmt.WithFormat(obsfmt.FormatMedians))
	}
	agg := obsproc.NewAggregator(cfg.Policies(), true, log)
	return ReadFile(fs, in, agg, opts...)
}

// DrawFigure draws fig from the observations in t and saves it to
// out. It logs the maximum speedup of every variant the figure shows.
//
// A figure whose baseline configuration has no observations is an
// error; no other baseline is substituted.
func DrawFigure(log zerolog.Logger, fs afero.Fs, t *obsproc.Table, fig config.Figure, out string) (*speedup.Series, error) {
	s, err := speedup.Derive(t, speedup.AtKey(fig.Baseline.Key()))
	if err != nil {
		return nil, errors.Wrapf(err, "figure %s", fig.Name)
	}
	seen := make(map[string]bool)
	for _, sc := range fig.Series {
		if seen[sc.Tag] {
			continue
		}
		seen[sc.Tag] = true
		s.Select(sc.Tag).Report(log, sc.Tag)
	}

	p, err := chart.Render(fig, s, log)
	if err != nil {
		return nil, errors.Wrapf(err, "figure %s", fig.Name)
	}
	if err := chart.Save(fs, p, fig, out); err != nil {
		return nil, err
	}
	log.Info().Str("figure", fig.Name).Str("output", out).Msg("saved figure")
	return s, nil
}
