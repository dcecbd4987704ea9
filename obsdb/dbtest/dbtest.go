// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens empty observation databases for tests.
package dbtest

import (
	"strings"
	"testing"

	"github.com/actorperf/actorperf/obsdb"
	_ "github.com/actorperf/actorperf/obsdb/sqlite3"
)

// NewDB makes a connection to an empty in-memory sqlite3 database.
// cleanup must be called when done with the database, instead of
// calling db.Close().
func NewDB(t *testing.T) (*obsdb.DB, func()) {
	t.Helper()
	// A shared-cache URI keeps every pooled connection on the same
	// in-memory database.
	d, err := obsdb.OpenSQL("sqlite3", "file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	cleanup := func() {
		d.Close()
	}
	// Make sure the database really is empty.
	imports, err := d.CountImports()
	if err != nil {
		cleanup()
		t.Fatal(err)
	}
	if imports != 0 {
		cleanup()
		t.Fatalf("found %d row(s) in Imports, want 0", imports)
	}
	return d, cleanup
}
