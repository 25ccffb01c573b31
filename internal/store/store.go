// Package store persists the small amount of client state that outlives
// a session: the preferred display language and a history of fact checks.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding govlens client state.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the state database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging state database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// OpenMemory creates an in-memory state database (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	s := &Store{db: db, path: ":memory:"}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// schema contains the full state schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS preferences (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS fact_checks (
    id TEXT PRIMARY KEY,
    checked_at DATETIME NOT NULL DEFAULT (datetime('now')),
    kind TEXT NOT NULL CHECK(kind IN ('claim','url')),
    input TEXT NOT NULL,
    verdict TEXT NOT NULL,
    confidence REAL NOT NULL,
    source TEXT NOT NULL CHECK(source IN ('backend','fallback'))
);

CREATE INDEX IF NOT EXISTS idx_fact_checks_checked_at ON fact_checks(checked_at DESC);
`

const languageKey = "language"

// Language returns the persisted preferred language, or fallback when
// none has been saved yet.
func (s *Store) Language(ctx context.Context, fallback string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, languageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("reading language preference: %w", err)
	}
	return value, nil
}

// SetLanguage persists the preferred language.
func (s *Store) SetLanguage(ctx context.Context, code string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		languageKey, code)
	if err != nil {
		return fmt.Errorf("saving language preference: %w", err)
	}
	return nil
}

// FactCheckKind distinguishes claim checks from URL checks in history.
type FactCheckKind string

const (
	KindClaim FactCheckKind = "claim"
	KindURL   FactCheckKind = "url"
)

// FactCheckSource records whether a verdict came from the backend or the
// local fallback rules.
type FactCheckSource string

const (
	SourceBackend  FactCheckSource = "backend"
	SourceFallback FactCheckSource = "fallback"
)

// FactCheckEntry is one row of the fact-check history.
type FactCheckEntry struct {
	ID         string
	CheckedAt  time.Time
	Kind       FactCheckKind
	Input      string
	Verdict    string
	Confidence float64
	Source     FactCheckSource
}

// LogFactCheck inserts a history entry. If entry.ID is empty a UUID is
// generated.
func (s *Store) LogFactCheck(ctx context.Context, entry FactCheckEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fact_checks (id, kind, input, verdict, confidence, source)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, string(entry.Kind), entry.Input, entry.Verdict, entry.Confidence, string(entry.Source))
	if err != nil {
		return fmt.Errorf("logging fact check: %w", err)
	}
	return nil
}

// RecentFactChecks returns up to limit history entries, newest first.
func (s *Store) RecentFactChecks(ctx context.Context, limit int) ([]FactCheckEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, checked_at, kind, input, verdict, confidence, source
		FROM fact_checks ORDER BY checked_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing fact checks: %w", err)
	}
	defer rows.Close()

	var entries []FactCheckEntry
	for rows.Next() {
		var e FactCheckEntry
		var kind, source string
		if err := rows.Scan(&e.ID, &e.CheckedAt, &kind, &e.Input, &e.Verdict, &e.Confidence, &source); err != nil {
			return nil, fmt.Errorf("scanning fact check row: %w", err)
		}
		e.Kind = FactCheckKind(kind)
		e.Source = FactCheckSource(source)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
