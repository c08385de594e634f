package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store keeps match snapshots and their event logs in SQLite.
type Store struct {
	db *sql.DB
}

// pragma is a connection setting together with the value SQLite reports
// once it is applied.
type pragma struct {
	name  string
	value string
	want  string
}

// pragmas configure every connection: WAL so that score reads do not block
// an update, NORMAL sync, a 5s busy timeout, and foreign keys so that an
// event cannot outlive its match.
var pragmas = []pragma{
	{name: "journal_mode", value: "WAL", want: "wal"},
	{name: "synchronous", value: "NORMAL", want: "1"},
	{name: "busy_timeout", value: "5000", want: "5000"},
	{name: "foreign_keys", value: "ON", want: "1"},
}

// migration upgrades a database created by an older schema.sql. Version is
// the user_version the database carries once stmt has run.
type migration struct {
	version int
	name    string
	stmt    string
}

var migrations = []migration{
	{
		version: 1,
		name:    "index matches by status",
		stmt:    `CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status)`,
	},
}

// schemaVersion is the user_version of a fully migrated database.
func schemaVersion() int {
	return migrations[len(migrations)-1].version
}

// Open opens the match database at path, creating it when missing. The
// path ":memory:" opens a private in-memory database. Opening an existing
// database again is safe: the schema is created only where missing and
// migrations already recorded in user_version are skipped.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open match store %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open match store %s: %w", path, err)
	}

	// One connection: SQLite has a single writer, and an in-memory
	// database is private to the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initialize(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open match store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func initialize(db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("pragma %s: %w", p.name, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return migrate(db)
}

// migrate runs, in order, every migration newer than the database's
// user_version. Each one commits together with its version bump.
func migrate(db *sql.DB) error {
	var current int
	if err := db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, mg := range migrations {
		if mg.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", mg.version, mg.name, err)
		}
		if _, err := tx.Exec(mg.stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", mg.version, mg.name, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", mg.version)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", mg.version, mg.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d (%s): %w", mg.version, mg.name, err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// pragmaValue reads the current value of a pragma.
func (s *Store) pragmaValue(name string) (string, error) {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return "", fmt.Errorf("read pragma %s: %w", name, err)
	}
	return value, nil
}
