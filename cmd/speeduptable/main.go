// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// speeduptable lays out the speedups of a variant as a heat map with
// one column per primary worker count and one row per secondary
// worker count.
//
// Usage:
//
//	speeduptable [in] [out]
//
// in defaults to 20170899-final-medians.csv and out to in with its
// "-medians.csv" (or ".csv") replaced by "-txact-speedup-table.pdf".
// The TikZ source and an HTML rendering are written next to out, with
// a trailing ".pdf" replaced by ".tikz" and ".html". out itself is
// produced by pdflatex if it is installed. None of the outputs may
// exist yet.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/actorperf/actorperf/artifact"
	"github.com/actorperf/actorperf/internal/cmdutil"
	"github.com/actorperf/actorperf/internal/config"
	"github.com/actorperf/actorperf/internal/logging"
	"github.com/actorperf/actorperf/internal/texttab"
	"github.com/actorperf/actorperf/obsfmt"
	"github.com/actorperf/actorperf/obsproc"
	"github.com/actorperf/actorperf/speedup"
	"github.com/actorperf/actorperf/speeduptab"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const defaultInput = "20170899-final-medians.csv"

// compile turns a TikZ document into a PDF. Tests replace it.
var compile = speeduptab.Compile

func main() {
	cmdutil.Main(cmdutil.Command("speeduptable [in] [out]", "Lay out speedups as a heat map", run))
}

func run(stdout, stderr io.Writer, fs afero.Fs, args []string) error {
	in := cmdutil.Arg(args, 0, defaultInput)
	log := logging.New(stdout, "")
	cfg := config.Default()

	format := obsfmt.FormatObservations
	if artifact.IsMedians(in) {
		format = obsfmt.FormatMedians
	}
	// Rows of other variants are expected in a shared file and
	// dropped quietly.
	agg := obsproc.NewAggregator(cfg.Policies(), false, log)
	t, err := cmdutil.ReadFile(fs, in, agg, obsfmt.WithFormat(format))
	if err != nil {
		return err
	}

	for _, tc := range cfg.Tables {
		out := cmdutil.Arg(args, 1, artifact.Derive(in, tc.Suffix))
		if err := writeTable(log, stdout, fs, t, tc, out); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(log zerolog.Logger, stdout io.Writer, fs afero.Fs, t *obsproc.Table, tc config.Table, out string) error {
	s, err := speedup.Derive(t, speedup.AtKey(tc.Baseline.Key()))
	if err != nil {
		return errors.Wrapf(err, "table %s", tc.Name)
	}
	m := speeduptab.Build(s, tc.Tag)
	if len(m.Rows) == 0 {
		log.Warn().Str("table", tc.Name).Msg("no configurations with a secondary worker count")
	}

	// pdflatex only runs at the end; make sure its output can be
	// written before producing anything else.
	if err := artifact.CheckNew(fs, out); err != nil {
		return err
	}
	var tikzSrc bytes.Buffer
	if err := m.TikZ(&tikzSrc, tc); err != nil {
		return err
	}

	base := strings.TrimSuffix(out, ".pdf")
	tikz, html := base+".tikz", base+".html"
	err = artifact.Write(fs, tikz, func(w io.Writer) error {
		_, err := w.Write(tikzSrc.Bytes())
		return err
	})
	if err != nil {
		return err
	}
	err = artifact.Write(fs, html, func(w io.Writer) error { return m.HTML(w, tc) })
	if err != nil {
		return err
	}
	log.Info().Str("table", tc.Name).Str("tikz", tikz).Str("html", html).Msg("wrote table")

	if err := printMatrix(stdout, m); err != nil {
		return err
	}

	err = artifact.Write(fs, out, func(w io.Writer) error {
		return compile(context.Background(), tikzSrc.Bytes(), w)
	})
	switch {
	case errors.Is(err, speeduptab.ErrNoLaTeX):
		log.Warn().Str("table", tc.Name).Msgf("pdflatex not found, %s was not produced", out)
	case err != nil:
		return err
	default:
		log.Info().Str("table", tc.Name).Str("output", out).Msg("compiled table")
	}
	return nil
}

// printMatrix writes m as a text table with secondary counts down the
// left and primary counts across the top.
func printMatrix(w io.Writer, m *speeduptab.Matrix) error {
	var tab texttab.Table
	tab.Row().Cell(fmt.Sprintf("%s s\\p", m.Tag))
	for _, p := range m.Primaries {
		tab.Cell(strconv.Itoa(p), texttab.Right)
	}
	for i, sec := range m.Secondaries {
		if i == 0 {
			tab.Rule()
		} else {
			tab.Row()
		}
		tab.Cell(strconv.Itoa(sec), texttab.Right)
		for _, c := range m.Rows[i] {
			v := ""
			if c.OK {
				v = strconv.FormatFloat(c.Speedup, 'f', 1, 64)
			}
			tab.Cell(v, texttab.Right)
		}
	}
	return tab.Format(w)
}
