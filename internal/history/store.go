// Package history records completed operations in a local SQLite database.
// Recording is best effort: callers log failures and carry on, so a broken
// history database never blocks file operations.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded operation.
type Entry struct {
	ID          int64
	Source      string
	Destination string
	Strategy    string
	Backend     string
	OK          bool
	Error       string
	DurationMS  int64
	CreatedAt   time.Time
}

// Filter narrows List results.
type Filter struct {
	// Limit caps the number of entries returned, newest first. Zero means
	// a default of 20.
	Limit int
	// FailedOnly keeps only entries whose operation failed.
	FailedOnly bool
}

// Store provides access to the history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the XDG-compliant default database path.
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./movex-history.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "movex", "history.db")
}

// Open opens (creating if needed) the history database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(initialSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one entry. A zero CreatedAt is stamped with the current
// time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (source, destination, strategy, backend, ok, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Source, e.Destination, e.Strategy, e.Backend, e.OK, e.Error, e.DurationMS,
		created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, source, destination, strategy, backend, ok, error, duration_ms, created_at
		FROM history`
	if f.FailedOnly {
		query += ` WHERE ok = 0`
	}
	query += ` ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Source, &e.Destination, &e.Strategy, &e.Backend, &e.OK, &e.Error, &e.DurationMS, &created); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}

// RecentPaths returns distinct source paths, most recently used first. The
// wizard offers these as suggestions.
func (s *Store) RecentPaths(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT source FROM history
		GROUP BY source
		ORDER BY MAX(id) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning recent path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing recent paths: %w", err)
	}
	return paths, nil
}
