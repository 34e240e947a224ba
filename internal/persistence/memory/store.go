// Package memory provides an in-memory store for tests and local runs
// without a database file.
package memory

import (
	"context"
	"sync"
	"time"

	"example.com/energymanager/internal/domain"
)

// Store keeps audit records and journal entries in memory.
type Store struct {
	mu      sync.RWMutex
	audits  []domain.AuditEntry
	entries []domain.JournalEntry
	nextID  int64
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// AppendAudit implements domain.Store.
func (s *Store) AppendAudit(ctx context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits = append(s.audits, entry)
	return nil
}

// RecentAudits returns audit records most-recent-first.
func (s *Store) RecentAudits(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.AuditEntry, 0, len(s.audits))
	for i := len(s.audits) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, s.audits[i])
	}
	return out, nil
}

// SaveJournalEntry implements domain.Store.
func (s *Store) SaveJournalEntry(ctx context.Context, text, source, processed string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.entries = append(s.entries, domain.JournalEntry{
		ID:        id,
		Text:      text,
		Source:    source,
		Processed: processed,
		CreatedAt: time.Now().UTC(),
	})
	return id, nil
}

// ListJournalEntries returns entries most-recent-first.
func (s *Store) ListJournalEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.JournalEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, s.entries[i])
	}
	return out, nil
}
