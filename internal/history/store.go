// Package history keeps a local SQLite log of successfully posted messages.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration
)

const (
	schemaVersion      = 1
	defaultBusyTimeout = 5000 // ms
)

// Post kinds recorded in the log.
const (
	KindText  = "text"
	KindPhoto = "photo"
)

// schemaStatements are executed in order to create the database schema.
// All use IF NOT EXISTS for idempotent re-application.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS posts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		channel    TEXT    NOT NULL,
		kind       TEXT    NOT NULL,
		preview    TEXT    NOT NULL DEFAULT '',
		message_id INTEGER NOT NULL,
		posted_at  TEXT    NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_posts_posted_at ON posts(posted_at)`,
}

// Entry is one recorded post.
type Entry struct {
	Channel   string
	Kind      string
	Preview   string
	MessageID int
	PostedAt  time.Time
}

// Store is a send log backed by a single-connection SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the send log at the given path.
// The database uses WAL mode, a 5 s busy timeout, and a single connection
// (SQLite serialises writes). The schema is migrated automatically.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("history: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	ctx := context.TODO()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: enable WAL: %w", err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout=%d", defaultBusyTimeout)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: set busy_timeout: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends an entry to the log. A zero PostedAt is filled with the
// current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	postedAt := e.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (channel, kind, preview, message_id, posted_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.Channel, e.Kind, e.Preview, e.MessageID, postedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("history: record post: %w", err)
	}
	return nil
}

// Recent returns the n most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT channel, kind, preview, message_id, posted_at
		FROM posts
		ORDER BY id DESC
		LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			postedAt string
		)
		if err := rows.Scan(&e.Channel, &e.Kind, &e.Preview, &e.MessageID, &postedAt); err != nil {
			return nil, fmt.Errorf("history: scan entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, postedAt); err == nil {
			e.PostedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: recent rows: %w", err)
	}

	return entries, nil
}

// migrate creates or updates the database schema to the latest version.
// All DDL uses IF NOT EXISTS, making migration idempotent.
func migrate(db *sql.DB) error {
	ctx := context.TODO()

	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)"); err != nil {
		return fmt.Errorf("history: create schema_version: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return fmt.Errorf("history: read schema version: %w", err)
	}

	if current >= schemaVersion {
		return nil
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("history: migrate: %w\nstatement: %s", err, stmt)
		}
	}

	if _, err := db.ExecContext(ctx, "INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("history: record schema version: %w", err)
	}

	return nil
}
