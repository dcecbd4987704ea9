// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// obsload imports an observation file into a SQL database.
//
// Usage:
//
//	obsload [in] [db]
//
// in defaults to 20170899-final.csv. db is either a sqlite3 file name,
// by default in with ".db" appended, or "mysql:" followed by a MySQL
// data source name. Every run is a new import; malformed rows are
// reported and left out. Nothing is imported if the file cannot be
// read completely.
package main

import (
	"context"
	"io"
	"strings"

	"github.com/actorperf/actorperf/internal/cmdutil"
	"github.com/actorperf/actorperf/internal/logging"
	"github.com/actorperf/actorperf/obsdb"
	_ "github.com/actorperf/actorperf/obsdb/sqlite3"
	"github.com/actorperf/actorperf/obsfmt"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	_ "github.com/go-sql-driver/mysql"
)

const defaultInput = "20170899-final.csv"

func main() {
	cmdutil.Main(cmdutil.Command("obsload [in] [db]", "Import an observation file into a database", run))
}

// dataSource returns the driver and data source name for db.
func dataSource(db string) (driver, dsn string) {
	if strings.HasPrefix(db, "mysql:") {
		return "mysql", strings.TrimPrefix(db, "mysql:")
	}
	return "sqlite3", db
}

func run(stdout, stderr io.Writer, fs afero.Fs, args []string) error {
	in := cmdutil.Arg(args, 0, defaultInput)
	driver, dsn := dataSource(cmdutil.Arg(args, 1, in+".db"))
	log := logging.New(stdout, "")

	f, err := fs.Open(in)
	if err != nil {
		return errors.Wrap(err, "reading observations")
	}
	defer f.Close()

	db, err := obsdb.OpenSQL(driver, dsn)
	if err != nil {
		return errors.Wrapf(err, "opening %s database", driver)
	}
	defer db.Close()

	ctx := context.Background()
	im, err := db.NewImport(ctx, in)
	if err != nil {
		return err
	}
	r := obsfmt.NewReader(f, in)
	skipped := 0
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *obsfmt.Observation:
			if err := im.Insert(rec); err != nil {
				im.Abort()
				return err
			}
		case *obsfmt.RowError:
			skipped++
			log.Warn().Str("file", rec.FileName).Int("line", rec.Line).Str("text", rec.Text).Msg(rec.Msg)
		}
	}
	if err := r.Err(); err != nil {
		im.Abort()
		return err
	}
	if err := im.Commit(); err != nil {
		return err
	}
	log.Info().Int64("import", im.ID).Int("skipped", skipped).Str("driver", driver).
		Msgf("imported %d observations", im.Len())
	return nil
}
