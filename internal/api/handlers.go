// Package api exposes HTTP handlers for the energy manager service.
package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"example.com/energymanager/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.home)
	mux.HandleFunc("/api/baseline", h.baseline)
	mux.HandleFunc("/api/activity", h.activity)
	mux.HandleFunc("/api/logs", h.logs)
	mux.HandleFunc("/api/journal", h.journal)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "energy manager API is running"})
}

func (h *Handler) baseline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	// Malformed or absent bodies fall back to defaults; scoring never fails
	// on bad input.
	var req BaselineRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	score := h.service.Baseline(r.Context(), domain.Profile{
		SleepHours: req.SleepHours,
		WorkStyle:  req.WorkStyle,
	})

	writeJSON(w, http.StatusOK, BaselineResponse{
		Mental:   int(math.Round(score.Mental)),
		Physical: int(math.Round(score.Physical)),
	})
}

func (h *Handler) activity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req ActivityRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	current := domain.DefaultCurrent
	if req.Current != nil {
		current = *req.Current
	}

	result := h.service.ApplyActivity(r.Context(), req.Activity, current)

	writeJSON(w, http.StatusOK, ActivityResponse{
		Delta:   result.Delta,
		NewVals: result.NewVals,
	})
}

func (h *Handler) logs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	entries, err := h.service.RecentAudits(r.Context(), parseLimit(r, 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]AuditView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toAuditView(entry))
	}
	writeJSON(w, http.StatusOK, LogsResponse{Items: items})
}

func (h *Handler) journal(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createJournalEntry(w, r)
	case http.MethodGet:
		h.listJournalEntries(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) createJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req JournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	id, err := h.service.AddJournalEntry(r.Context(), req.Text, req.Source, req.Processed)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyEntry) {
			writeError(w, http.StatusBadRequest, "validation_failed", "text is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, JournalEntryResponse{ID: id})
}

func (h *Handler) listJournalEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.JournalEntries(r.Context(), parseLimit(r, 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]JournalEntryView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toJournalEntryView(entry))
	}
	writeJSON(w, http.StatusOK, JournalListResponse{Items: items})
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
		return parsed
	}
	return fallback
}

// BaselineRequest is the payload for POST /api/baseline. Both fields are
// optional; missing sleep hours default to 6, unknown work styles apply no
// adjustment.
type BaselineRequest struct {
	SleepHours *float64 `json:"sleepHours"`
	WorkStyle  string   `json:"workStyle"`
}

// BaselineResponse carries the initial energy pair.
type BaselineResponse struct {
	Mental   int `json:"mental"`
	Physical int `json:"physical"`
}

// ActivityRequest is the payload for POST /api/activity. A missing current
// pair defaults to {50,50}; a missing activity scores as empty text.
type ActivityRequest struct {
	Activity string        `json:"activity"`
	Current  *domain.Score `json:"current"`
}

// ActivityResponse carries the rounded delta and the clamped new scores.
type ActivityResponse struct {
	Delta   domain.Delta `json:"delta"`
	NewVals domain.Score `json:"newVals"`
}

// AuditView exposes one audit record.
type AuditView struct {
	ID        string          `json:"id"`
	Route     string          `json:"route"`
	Received  json.RawMessage `json:"received"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// LogsResponse packages audit listing results.
type LogsResponse struct {
	Items []AuditView `json:"items"`
}

// JournalEntryRequest is the payload for POST /api/journal.
type JournalEntryRequest struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	Processed string `json:"processed"`
}

// JournalEntryResponse acknowledges a stored entry.
type JournalEntryResponse struct {
	ID int64 `json:"id"`
}

// JournalEntryView exposes one stored journal entry.
type JournalEntryView struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Processed string    `json:"processed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// JournalListResponse packages journal listing results.
type JournalListResponse struct {
	Items []JournalEntryView `json:"items"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toAuditView(entry domain.AuditEntry) AuditView {
	return AuditView{
		ID:        entry.ID,
		Route:     entry.Route,
		Received:  entry.Received,
		Result:    entry.Result,
		CreatedAt: entry.CreatedAt,
	}
}

func toJournalEntryView(entry domain.JournalEntry) JournalEntryView {
	return JournalEntryView{
		ID:        entry.ID,
		Text:      entry.Text,
		Source:    entry.Source,
		Processed: entry.Processed,
		CreatedAt: entry.CreatedAt,
	}
}
