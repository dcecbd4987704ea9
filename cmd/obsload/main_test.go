// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/actorperf/actorperf/obsdb"
	"github.com/actorperf/actorperf/obsfmt"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"
)

func TestDataSource(t *testing.T) {
	for _, test := range []struct {
		db, driver, dsn string
	}{
		{"run.csv.db", "sqlite3", "run.csv.db"},
		{"mysql:root:secret@tcp(localhost:3306)/perf", "mysql", "root:secret@tcp(localhost:3306)/perf"},
		{"file:x?mode=memory", "sqlite3", "file:x?mode=memory"},
	} {
		driver, dsn := dataSource(test.db)
		if driver != test.driver || dsn != test.dsn {
			t.Errorf("dataSource(%q) = %q, %q; want %q, %q", test.db, driver, dsn, test.driver, test.dsn)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "run.csv")
	data := obsfmt.Header + "\noriginal,1,None,0,5656\noriginal,1\ntxact,4,2,1,150.5\n"
	fs := afero.NewOsFs()
	if err := afero.WriteFile(fs, in, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		var stdout, stderr bytes.Buffer
		if err := run(&stdout, &stderr, fs, []string{in}); err != nil {
			t.Fatal(err)
		}
		out := stdout.String()
		if !strings.Contains(out, "imported 2 observations") || !strings.Contains(out, "skipped=1") {
			t.Errorf("run %d: stdout does not report the import:\n%s", i, out)
		}
	}

	db, err := obsdb.OpenSQL("sqlite3", in+".db")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if n, err := db.CountImports(); err != nil || n != 2 {
		t.Errorf("CountImports() = %d, %v; want 2", n, err)
	}
	got, err := db.Observations(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []*obsfmt.Observation{
		{Tag: "original", Primary: 1, Elapsed: 5656},
		{Tag: "txact", Primary: 4, Secondary: 2, HasSecondary: true, Trial: 1, Elapsed: 150.5},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(obsfmt.Observation{})); diff != "" {
		t.Errorf("observations (-want +got):\n%s", diff)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, afero.NewOsFs(), []string{filepath.Join(dir, "missing.csv")})
	if err == nil {
		t.Fatal("run succeeded on a missing input")
	}
	if ok, _ := afero.Exists(afero.NewOsFs(), filepath.Join(dir, "missing.csv.db")); ok {
		t.Errorf("database created for a missing input")
	}
}
