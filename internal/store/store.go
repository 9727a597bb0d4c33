package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

var (
	// ErrNotFound is returned when a record with the given ID does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when a record fails validation.
	ErrInvalid = errors.New("invalid")
)

// Store holds every collection of one session. It lives in a private
// in-memory database and is gone once closed.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewMemory creates an empty session store.
func NewMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// SetClock replaces the clock used for creation timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) timestamp() string {
	return formatTime(s.now())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}

func invalid(field, reason string) error {
	return fmt.Errorf("%s %s: %w", field, reason, ErrInvalid)
}

// deleteByID removes exactly one record from table.
func (s *Store) deleteByID(table string, id int64) error {
	res, err := s.db.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", table, id, ErrNotFound)
	}
	return nil
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS stitch_rows (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL CHECK (name <> ''),
		target      INTEGER NOT NULL CHECK (target > 0),
		completed   INTEGER NOT NULL DEFAULT 0 CHECK (completed >= 0 AND completed <= target),
		pattern     TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS patterns (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL CHECK (name <> ''),
		body        TEXT NOT NULL CHECK (body <> ''),
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS goals (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL CHECK (name <> ''),
		target      INTEGER NOT NULL CHECK (target > 0),
		completed   INTEGER NOT NULL DEFAULT 0 CHECK (completed >= 0 AND completed <= target),
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS yarn (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		type        TEXT NOT NULL DEFAULT '',
		brand       TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '',
		quantity    INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		project     TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS photos (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		image       TEXT NOT NULL,
		caption     TEXT NOT NULL DEFAULT '',
		tag         TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS activity_days (
		day TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('row_sort',     'newest'),
		('yarn_sort',    'newest'),
		('photo_filter', '');
	`
	_, err := s.db.Exec(ddl)
	return err
}
