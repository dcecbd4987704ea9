// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// results2csv collects the run logs in a results directory into one
// observation file.
//
// Usage:
//
//	results2csv [dir] [out]
//
// dir defaults to 20170899-final and out to dir with ".csv" appended.
// Every log is named VARIANT-wP[-sS]-iI.txt and must report exactly
// one "Total execution time: T ms" line. Logs that do not are listed
// after the ERRORS: line and left out. out must not exist.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/actorperf/actorperf/artifact"
	"github.com/actorperf/actorperf/internal/cmdutil"
	"github.com/actorperf/actorperf/internal/logging"
	"github.com/actorperf/actorperf/obsfmt"
	"github.com/actorperf/actorperf/rawlog"
	"github.com/spf13/afero"
)

const defaultDir = "20170899-final"

func main() {
	cmdutil.Main(cmdutil.Command("results2csv [dir] [out]", "Collect run logs into an observation file", run))
}

func run(stdout, stderr io.Writer, fs afero.Fs, args []string) error {
	dir := cmdutil.Arg(args, 0, defaultDir)
	out := cmdutil.Arg(args, 1, strings.TrimRight(dir, "/")+".csv")
	log := logging.New(stdout, "")

	obs, errs, err := rawlog.Extract(fs, dir)
	if err != nil {
		return err
	}
	err = artifact.Write(fs, out, func(w io.Writer) error {
		ow := obsfmt.NewWriter(w)
		for _, o := range obs {
			if err := ow.Write(o); err != nil {
				return err
			}
		}
		return ow.Flush()
	})
	if err != nil {
		return err
	}
	log.Info().Int("observations", len(obs)).Str("output", out).Msg("wrote observations")

	if len(errs) != 0 {
		fmt.Fprintln(stdout, "ERRORS:")
		for _, e := range errs {
			fmt.Fprintln(stdout, e)
		}
	}
	return nil
}
