// Package store persists the town registry in SQLite and rebuilds
// towny.Snapshot values from it.
//
// The database is the hand-off point between whatever exports the registry
// (a YAML seed in this repo) and the catalog, which only ever reads whole
// snapshots.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrEmptyPath is returned by Open when no database path is given.
var ErrEmptyPath = errors.New("empty database path")

// Store is a SQLite-backed registry.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS worlds (
			name TEXT PRIMARY KEY,
			loaded INTEGER NOT NULL,
			surface_y INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS heights (
			world TEXT NOT NULL REFERENCES worlds(name) ON DELETE CASCADE,
			x INTEGER NOT NULL,
			z INTEGER NOT NULL,
			y INTEGER NOT NULL,
			PRIMARY KEY (world, x, z)
		);`,
		`CREATE TABLE IF NOT EXISTS residents (
			uuid TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			town TEXT NOT NULL DEFAULT '',
			balance REAL NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS towns (
			uuid TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL UNIQUE COLLATE NOCASE,
			open INTEGER NOT NULL,
			public INTEGER NOT NULL,
			mayor_uuid TEXT NOT NULL DEFAULT '',
			mayor_name TEXT NOT NULL DEFAULT '',
			nation TEXT NOT NULL DEFAULT '',
			taxes REAL NOT NULL DEFAULT 0,
			tax_percentage INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS plots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			town_uuid TEXT NOT NULL REFERENCES towns(uuid) ON DELETE CASCADE,
			world TEXT NOT NULL,
			x INTEGER NOT NULL,
			z INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			price REAL NOT NULL DEFAULT 0,
			for_sale INTEGER NOT NULL DEFAULT 0,
			UNIQUE (world, x, z)
		);`,
		`CREATE INDEX IF NOT EXISTS plots_town ON plots(town_uuid, id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) meta(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read meta %s: %w", key, err)
	}
	return value, true, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
