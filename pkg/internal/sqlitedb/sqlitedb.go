// Package sqlitedb opens SQLite databases as a write/read connection pair.
package sqlitedb

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var pragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA synchronous=NORMAL;",
	"PRAGMA busy_timeout=5000;",
	"PRAGMA temp_store=MEMORY;",
	"PRAGMA mmap_size=30000000000;",
}

// DB is a write/read connection pair over the same SQLite file. Writes are
// serialised through a single connection.
type DB struct {
	W *sql.DB
	R *sql.DB
}

// Open opens conn twice and applies the WAL pragmas to both handles, then runs
// schema on the write handle.
func Open(conn string, schema ...string) (*DB, error) {
	wdb, err := open(conn)
	if err != nil {
		return nil, err
	}
	wdb.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := wdb.Exec(stmt); err != nil {
			_ = wdb.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	rdb, err := open(conn)
	if err != nil {
		_ = wdb.Close()
		return nil, err
	}
	return &DB{W: wdb, R: rdb}, nil
}

func open(conn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	return db, nil
}

// Close closes both handles.
func (db *DB) Close() error {
	werr := db.W.Close()
	if rerr := db.R.Close(); rerr != nil {
		return rerr
	}
	return werr
}
