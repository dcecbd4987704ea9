// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for obsdb. It must be
// imported instead of go-sqlite3 so foreign keys are honored.
package sqlite3

import (
	"database/sql"

	"github.com/actorperf/actorperf/obsdb"
	sqlite3 "github.com/mattn/go-sqlite3"
)

func init() {
	obsdb.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		db.Driver().(*sqlite3.SQLiteDriver).ConnectHook = func(c *sqlite3.SQLiteConn) error {
			_, err := c.Exec("PRAGMA foreign_keys = ON;", nil)
			return err
		}
		return nil
	})
}
