// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// medians reduces an observation file to one median time per
// experiment configuration.
//
// Usage:
//
//	medians [in] [out]
//
// in defaults to 20170899-final.csv. out defaults to in with
// "-medians" inserted before the extension. The medians file has no
// header and lists configurations in ascending order. Malformed rows
// are reported and skipped. out must not exist.
package main

import (
	"io"

	"github.com/actorperf/actorperf/artifact"
	"github.com/actorperf/actorperf/internal/cmdutil"
	"github.com/actorperf/actorperf/internal/logging"
	"github.com/actorperf/actorperf/obsfmt"
	"github.com/actorperf/actorperf/obsproc"
	"github.com/spf13/afero"
)

const defaultInput = "20170899-final.csv"

func main() {
	cmdutil.Main(cmdutil.Command("medians [in] [out]", "Compute the median time of every configuration", run))
}

func run(stdout, stderr io.Writer, fs afero.Fs, args []string) error {
	in := cmdutil.Arg(args, 0, defaultInput)
	out := cmdutil.Arg(args, 1, artifact.Medians(in))
	log := logging.New(stdout, "")

	// Every variant is summarized, whatever its secondary column.
	agg := obsproc.NewAggregator(nil, false, log)
	t, err := cmdutil.ReadFile(fs, in, agg)
	if err != nil {
		return err
	}

	err = artifact.Write(fs, out, func(w io.Writer) error {
		mw := obsfmt.NewWriter(w)
		mw.Header = false
		for _, k := range t.Keys {
			m := &obsfmt.Median{
				Tag:          k.Tag,
				Primary:      k.Primary,
				Secondary:    k.Secondary,
				HasSecondary: k.HasSecondary,
				Elapsed:      t.Quartiles[k].Median,
			}
			if err := mw.WriteMedian(m); err != nil {
				return err
			}
		}
		return mw.Flush()
	})
	if err != nil {
		return err
	}
	log.Info().Int("configurations", len(t.Keys)).Str("output", out).Msg("wrote medians")
	return cmdutil.PrintQuartiles(stdout, t)
}
