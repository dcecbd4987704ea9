// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsdb_test

import (
	"context"
	"testing"

	"github.com/actorperf/actorperf/obsdb/dbtest"
	"github.com/actorperf/actorperf/obsfmt"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var observations = []*obsfmt.Observation{
	{Tag: "original", Primary: 1, Trial: 0, Elapsed: 5656},
	{Tag: "txact", Primary: 38, Secondary: 8, HasSecondary: true, Trial: 4, Elapsed: 516.25},
	{Tag: "original", Primary: 1, Trial: 1, Elapsed: 5480.5},
}

func TestImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	im, err := db.NewImport(ctx, "20170899-final.csv")
	if err != nil {
		t.Fatalf("NewImport: %v", err)
	}
	for _, o := range observations {
		if err := im.Insert(o); err != nil {
			t.Fatal(err)
		}
	}
	if im.Len() != len(observations) {
		t.Errorf("Len() = %d, want %d", im.Len(), len(observations))
	}
	if err := im.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got, err := db.Observations(ctx, im.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(observations, got, cmpopts.IgnoreUnexported(obsfmt.Observation{})); diff != "" {
		t.Errorf("observations (-want +got):\n%s", diff)
	}
	if n, err := db.CountImports(); err != nil || n != 1 {
		t.Errorf("CountImports() = %d, %v; want 1", n, err)
	}
}

func TestImportIDs(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	var ids []int64
	for i := 0; i < 3; i++ {
		im, err := db.NewImport(ctx, "run.csv")
		if err != nil {
			t.Fatalf("NewImport: %v", err)
		}
		if err := im.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		ids = append(ids, im.ID)
	}
	if ids[0] >= ids[1] || ids[1] >= ids[2] {
		t.Errorf("import IDs %v are not increasing", ids)
	}
}

func TestImportAbort(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	im, err := db.NewImport(ctx, "run.csv")
	if err != nil {
		t.Fatal(err)
	}
	if err := im.Insert(observations[0]); err != nil {
		t.Fatal(err)
	}
	if err := im.Abort(); err != nil {
		t.Fatal(err)
	}
	if n, err := db.CountImports(); err != nil || n != 0 {
		t.Errorf("CountImports() = %d, %v; want 0", n, err)
	}
	got, err := db.Observations(ctx, im.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("aborted import has %d observations", len(got))
	}
}
