// Package postgres provides a pgx-backed store for deployments with a shared
// database instead of the embedded sqlite file.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/energymanager/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS request_log (
    id TEXT PRIMARY KEY,
    route TEXT NOT NULL,
    received JSONB NOT NULL,
    result JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS journal_entries (
    id BIGSERIAL PRIMARY KEY,
    text TEXT NOT NULL,
    source TEXT,
    processed TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Store is a Postgres implementation of domain.Store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store and ensures the schema exists.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// AppendAudit implements domain.Store.
func (s *Store) AppendAudit(ctx context.Context, entry domain.AuditEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO request_log (id, route, received, result, created_at) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.Route, entry.Received, entry.Result, entry.CreatedAt,
	)
	return err
}

// RecentAudits returns audit records most-recent-first. A non-positive limit
// returns everything.
func (s *Store) RecentAudits(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	query := `SELECT id, route, received, result, created_at FROM request_log ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.Route, &entry.Received, &entry.Result, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SaveJournalEntry stores a free-text entry and returns the inserted row id.
func (s *Store) SaveJournalEntry(ctx context.Context, text, source, processed string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO journal_entries (text, source, processed) VALUES ($1, $2, $3) RETURNING id`,
		text, source, processed,
	).Scan(&id)
	return id, err
}

// ListJournalEntries returns entries most-recent-first. A non-positive limit
// returns everything.
func (s *Store) ListJournalEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	query := `SELECT id, text, COALESCE(source, ''), COALESCE(processed, ''), created_at FROM journal_entries ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(&entry.ID, &entry.Text, &entry.Source, &entry.Processed, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
