// Package sqlite implements the store interfaces on an embedded SQLite
// database (modernc.org/sqlite, pure Go). The full-text index uses FTS5
// when the build provides it and degrades to substring scans otherwise.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the SQLite connection and the process-wide search index
// availability flag.
type DB struct {
	conn  *sql.DB
	index *SearchIndex
	log   *slog.Logger
}

// Open opens (or creates) the database at path, applies pending schema
// migrations, and probes the full-text engine. The WAL journal and
// foreign-key enforcement pragmas are set on every pooled connection via
// the DSN, not a one-off Exec, since database/sql may open more than one
// connection.
func Open(path string, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Default()
	}

	dsn := fmt.Sprintf(
		"%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		path,
	)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := migrate(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	db := &DB{conn: conn, log: log.With(slog.String("component", "sqlite"))}

	// FTS setup runs outside goose so a build without the extension
	// degrades instead of failing migration.
	db.index = newSearchIndex(conn, db.log)

	return db, nil
}

// Conn exposes the underlying connection for transaction management.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Index returns the search index bound to this database. The index is
// always non-nil; Available reports whether FTS5 is actually usable.
func (db *DB) Index() *SearchIndex {
	return db.index
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func migrate(conn *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	return goose.Up(conn, "migrations")
}
