package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"example.com/energymanager/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAuditAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for i, route := range []string{"/api/baseline", "/api/activity", "/api/activity"} {
		entry := domain.AuditEntry{
			ID:        uuid.NewString(),
			Route:     route,
			Received:  json.RawMessage(`{"seq":` + string(rune('0'+i)) + `}`),
			Result:    json.RawMessage(`{}`),
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, store.AppendAudit(ctx, entry))
	}

	entries, err := store.RecentAudits(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "/api/activity", entries[0].Route)
	require.JSONEq(t, `{"seq":2}`, string(entries[0].Received))
	require.Equal(t, "/api/baseline", entries[2].Route)

	limited, err := store.RecentAudits(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestJournalSaveAndList(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first, err := store.SaveJournalEntry(ctx, "morning pages", "form", "")
	require.NoError(t, err)
	second, err := store.SaveJournalEntry(ctx, "imported notes", "file", "summarised")
	require.NoError(t, err)
	require.Greater(t, second, first)

	entries, err := store.ListJournalEntries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "imported notes", entries[0].Text)
	require.Equal(t, "summarised", entries[0].Processed)
	require.Equal(t, "morning pages", entries[1].Text)

	limited, err := store.ListJournalEntries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, second, limited[0].ID)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
