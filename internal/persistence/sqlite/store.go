// Package sqlite provides the embedded default store for audit records and
// journal entries.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"example.com/energymanager/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS request_log (
    id TEXT PRIMARY KEY,
    route TEXT NOT NULL,
    received TEXT NOT NULL,
    result TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS journal_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    source TEXT,
    processed TEXT,
    created_at TEXT NOT NULL
);`

// Store is a file-backed SQLite implementation of domain.Store.
type Store struct {
	db *sql.DB
}

// Open creates the database file and tables if needed and returns the Store.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// The driver is in-process; a single connection avoids table locking on
	// concurrent writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendAudit implements domain.Store.
func (s *Store) AppendAudit(ctx context.Context, entry domain.AuditEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO request_log (id, route, received, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Route, string(entry.Received), string(entry.Result), entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// RecentAudits returns audit records most-recent-first. A non-positive limit
// returns everything.
func (s *Store) RecentAudits(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	query := `SELECT id, route, received, result, created_at FROM request_log ORDER BY rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var received, result, createdAt string
		if err := rows.Scan(&entry.ID, &entry.Route, &received, &result, &createdAt); err != nil {
			return nil, err
		}
		entry.Received = []byte(received)
		entry.Result = []byte(result)
		entry.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SaveJournalEntry stores a free-text entry and returns the inserted row id.
func (s *Store) SaveJournalEntry(ctx context.Context, text, source, processed string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_entries (text, source, processed, created_at) VALUES (?, ?, ?, ?)`,
		text, source, processed, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListJournalEntries returns entries most-recent-first. A non-positive limit
// returns everything.
func (s *Store) ListJournalEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	query := `SELECT id, text, source, processed, created_at FROM journal_entries ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var entry domain.JournalEntry
		var source, processed sql.NullString
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.Text, &source, &processed, &createdAt); err != nil {
			return nil, err
		}
		entry.Source = source.String
		entry.Processed = processed.String
		entry.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
