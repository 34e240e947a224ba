package domain

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	mu      sync.Mutex
	audits  []AuditEntry
	entries []JournalEntry
	failAll bool
}

func (s *stubStore) AppendAudit(ctx context.Context, entry AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errors.New("store unavailable")
	}
	s.audits = append(s.audits, entry)
	return nil
}

func (s *stubStore) RecentAudits(ctx context.Context, limit int) ([]AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return nil, errors.New("store unavailable")
	}
	return s.audits, nil
}

func (s *stubStore) SaveJournalEntry(ctx context.Context, text, source, processed string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return 0, errors.New("store unavailable")
	}
	s.entries = append(s.entries, JournalEntry{ID: int64(len(s.entries) + 1), Text: text, Source: source, Processed: processed})
	return int64(len(s.entries)), nil
}

func (s *stubStore) ListJournalEntries(ctx context.Context, limit int) ([]JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries, nil
}

type stubPublisher struct {
	events []string
	err    error
}

func (p *stubPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	p.events = append(p.events, eventType)
	return p.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestServiceBaselineAuditsAndPublishes(t *testing.T) {
	store := &stubStore{}
	publisher := &stubPublisher{}
	service := NewService(store, publisher, quietLogger())

	score := service.Baseline(context.Background(), Profile{SleepHours: floatPtr(7)})
	require.Equal(t, Score{Mental: 70, Physical: 70}, score)

	require.Len(t, store.audits, 1)
	require.Equal(t, "/api/baseline", store.audits[0].Route)
	require.NotEmpty(t, store.audits[0].ID)
	require.False(t, store.audits[0].CreatedAt.IsZero())

	var received map[string]any
	require.NoError(t, json.Unmarshal(store.audits[0].Received, &received))

	require.Equal(t, []string{"energy.baseline_scored"}, publisher.events)
}

func TestServiceActivityResultUnaffectedByStoreFailure(t *testing.T) {
	store := &stubStore{failAll: true}
	service := NewService(store, nil, quietLogger())

	result := service.ApplyActivity(context.Background(), "coffee", Score{Mental: 90, Physical: 90})
	require.Equal(t, Delta{Mental: 10, Physical: 2}, result.Delta)
	require.Equal(t, Score{Mental: 100, Physical: 92}, result.NewVals)
}

func TestServiceActivityResultUnaffectedByPublishFailure(t *testing.T) {
	store := &stubStore{}
	publisher := &stubPublisher{err: errors.New("broker down")}
	service := NewService(store, publisher, quietLogger())

	result := service.ApplyActivity(context.Background(), "30min run", Score{Mental: 50, Physical: 50})
	require.Equal(t, Delta{Mental: 2, Physical: 5}, result.Delta)
	require.Len(t, store.audits, 1)
	require.Equal(t, "/api/activity", store.audits[0].Route)
}

func TestServiceAddJournalEntry(t *testing.T) {
	store := &stubStore{}
	service := NewService(store, nil, quietLogger())

	id, err := service.AddJournalEntry(context.Background(), "felt great after the walk", "", "")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
	require.Equal(t, "form", store.entries[0].Source)

	_, err = service.AddJournalEntry(context.Background(), "   ", "form", "")
	require.ErrorIs(t, err, ErrEmptyEntry)
}
