package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"example.com/energymanager/internal/observability"
)

// ErrEmptyEntry is returned when a journal submission carries no text.
var ErrEmptyEntry = errors.New("journal entry text is empty")

// AuditEntry is one append-only record of a scoring request and its result.
// The core writes these best-effort and never reads them back.
type AuditEntry struct {
	ID        string          `json:"id"`
	Route     string          `json:"route"`
	Received  json.RawMessage `json:"received"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// JournalEntry is a stored free-text journal submission.
type JournalEntry struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Processed string    `json:"processed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store captures the persistence operations the service depends on.
type Store interface {
	AppendAudit(ctx context.Context, entry AuditEntry) error
	RecentAudits(ctx context.Context, limit int) ([]AuditEntry, error)
	SaveJournalEntry(ctx context.Context, text, source, processed string) (int64, error)
	ListJournalEntries(ctx context.Context, limit int) ([]JournalEntry, error)
}

// EventPublisher emits scored events to downstream consumers. Implementations
// must tolerate being called on the request path; errors are diagnostic only.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Service orchestrates scoring, audit logging and event publishing. Scoring
// itself is pure; the store and publisher are best-effort collaborators whose
// failures never affect the computed result.
type Service struct {
	store     Store
	publisher EventPublisher
	logger    *logrus.Logger
}

// NewService constructs a Service. The publisher may be nil when event
// publishing is not configured.
func NewService(store Store, publisher EventPublisher, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{store: store, publisher: publisher, logger: logger}
}

// Baseline computes the initial energy pair for a profile.
func (s *Service) Baseline(ctx context.Context, profile Profile) Score {
	score := BaselineScore(profile)

	observability.RecordBaselineScored()
	s.audit(ctx, "/api/baseline", profile, score)
	s.publish(ctx, "energy.baseline_scored", score)
	return score
}

// ApplyActivity scores a free-text activity against the current energy pair.
func (s *Service) ApplyActivity(ctx context.Context, activity string, current Score) ActivityResult {
	result := ComputeDelta(activity, current.Clamp())

	observability.RecordActivityScored(string(result.Category))
	s.audit(ctx, "/api/activity", map[string]any{"activity": activity, "current": current}, result)
	s.publish(ctx, "energy.activity_scored", result)
	return result
}

// RecentAudits lists audit records most-recent-first, for inspection only.
func (s *Service) RecentAudits(ctx context.Context, limit int) ([]AuditEntry, error) {
	return s.store.RecentAudits(ctx, limit)
}

// AddJournalEntry stores a free-text journal submission.
func (s *Service) AddJournalEntry(ctx context.Context, text, source, processed string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyEntry
	}
	if source == "" {
		source = "form"
	}
	return s.store.SaveJournalEntry(ctx, text, source, processed)
}

// JournalEntries lists stored entries most-recent-first.
func (s *Service) JournalEntries(ctx context.Context, limit int) ([]JournalEntry, error) {
	return s.store.ListJournalEntries(ctx, limit)
}

func (s *Service) audit(ctx context.Context, route string, received, result any) {
	receivedJSON, err := json.Marshal(received)
	if err != nil {
		s.logger.WithError(err).Warn("audit: marshal received payload")
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		s.logger.WithError(err).Warn("audit: marshal result payload")
		return
	}

	entry := AuditEntry{
		ID:        uuid.NewString(),
		Route:     route,
		Received:  receivedJSON,
		Result:    resultJSON,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.AppendAudit(ctx, entry); err != nil {
		observability.RecordAuditFailure()
		s.logger.WithError(err).WithField("route", route).Warn("audit append failed")
	}
}

func (s *Service) publish(ctx context.Context, eventType string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.WithError(err).WithField("event_type", eventType).Warn("event publish failed")
	}
}
