// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obsdb stores timing observations in a SQL database so runs
// can be compared across machines and over time.
package obsdb

import (
	"bytes"
	"database/sql"
	"strings"
	"text/template"

	"github.com/actorperf/actorperf/obsfmt"
	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// DB is a database of imported observations. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB

	insertImport      *sql.Stmt
	insertObservation *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. The sqlite3 package uses it to turn on
// foreign keys. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Imports (
	ImportID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Source VARCHAR(1024)
);
CREATE TABLE IF NOT EXISTS Observations (
	ImportID BIGINT UNSIGNED,
	Seq BIGINT UNSIGNED,
	Tag VARCHAR(255),
	PrimaryWorkers INT,
	SecondaryWorkers INT NULL,
	Trial INT,
	Elapsed DOUBLE,
	PRIMARY KEY (ImportID, Seq),
{{if not .sqlite3}}
	Index (Tag, PrimaryWorkers, SecondaryWorkers),
{{end}}
	FOREIGN KEY (ImportID) REFERENCES Imports(ImportID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS ObservationsKey ON Observations(Tag, PrimaryWorkers, SecondaryWorkers);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return errors.Wrap(err, "create table")
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.insertImport, err = db.sql.Prepare("INSERT INTO Imports(Source) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertObservation, err = db.sql.Prepare("INSERT INTO Observations(ImportID, Seq, Tag, PrimaryWorkers, SecondaryWorkers, Trial, Elapsed) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// An Import is a set of observations loaded together. Observations
// inserted into an Import become visible when it is committed.
type Import struct {
	// ID is the numeric key shared by every observation in this
	// import.
	ID int64

	// seq is the index of the next observation to insert.
	seq int64
	tx  *sql.Tx
	db  *DB
}

// NewImport starts an import of observations read from source.
func (db *DB) NewImport(ctx context.Context, source string) (*Import, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.Stmt(db.insertImport).Exec(source)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Import{ID: id, tx: tx, db: db}, nil
}

// Insert adds one observation to the import.
func (im *Import) Insert(o *obsfmt.Observation) error {
	var secondary sql.NullInt64
	if o.HasSecondary {
		secondary = sql.NullInt64{Int64: int64(o.Secondary), Valid: true}
	}
	if _, err := im.tx.Stmt(im.db.insertObservation).Exec(im.ID, im.seq, o.Tag, o.Primary, secondary, o.Trial, o.Elapsed); err != nil {
		return errors.Wrapf(err, "inserting observation %d", im.seq)
	}
	im.seq++
	return nil
}

// Len returns the number of observations inserted so far.
func (im *Import) Len() int {
	return int(im.seq)
}

// Commit makes the import visible.
func (im *Import) Commit() error {
	return im.tx.Commit()
}

// Abort discards the import.
func (im *Import) Abort() error {
	return im.tx.Rollback()
}

// Observations returns the observations of an import in the order
// they were inserted.
func (db *DB) Observations(ctx context.Context, importID int64) ([]*obsfmt.Observation, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Tag, PrimaryWorkers, SecondaryWorkers, Trial, Elapsed FROM Observations WHERE ImportID = ? ORDER BY Seq", importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*obsfmt.Observation
	for rows.Next() {
		var o obsfmt.Observation
		var secondary sql.NullInt64
		if err := rows.Scan(&o.Tag, &o.Primary, &secondary, &o.Trial, &o.Elapsed); err != nil {
			return nil, err
		}
		if secondary.Valid {
			o.Secondary, o.HasSecondary = int(secondary.Int64), true
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// CountImports returns the number of imports in the database.
func (db *DB) CountImports() (int, error) {
	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Imports").Scan(&count)
	return count, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertImport.Close(); err != nil {
		return err
	}
	if err := db.insertObservation.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
