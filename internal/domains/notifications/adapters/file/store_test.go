package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notifications.json")
	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Load())
	return store, path
}

func TestStore_SurvivesReload(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, domain.Draft{Type: domain.TypeOrder, Title: "Order #1001 created", Message: "Order #1001 created for Acme"})
	require.NoError(t, err)
	_, err = store.Append(ctx, domain.Draft{Type: domain.TypeProduct, Title: "Low stock", Message: "2 products are below their reorder threshold"})
	require.NoError(t, err)
	require.NoError(t, store.MarkRead(ctx, first.ID))
	require.NoError(t, store.Close())

	reloaded, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())

	records, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Low stock", records[0].Title)
	assert.Equal(t, first.ID, records[1].ID)
	assert.True(t, records[1].Read)

	count, err := reloaded.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoad_DropsRecordsWithUnparsableTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.json")
	corrupted := `[
		{"id":"a","type":"order","title":"good","message":"m","timestamp":"2026-01-05T10:00:00Z","read":false},
		{"id":"b","type":"order","title":"bad","message":"m","timestamp":"not-a-time","read":false},
		{"id":"c","type":"system","title":"also good","message":"m","timestamp":"2026-01-05T09:00:00Z","read":true}
	]`
	require.NoError(t, os.WriteFile(path, []byte(corrupted), 0o644))

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Load())

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "good", records[0].Title)
	assert.Equal(t, "also good", records[1].Title)
}

func TestLoad_MissingFileIsEmptyLog(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "never-written.json"))
	require.NoError(t, err)
	require.NoError(t, store.Load())

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppend_TruncatesPersistedLogToCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.json")
	store, err := NewStore(path, WithCapacity(5))
	require.NoError(t, err)
	require.NoError(t, store.Load())
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	store.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	for i := 1; i <= 8; i++ {
		_, err := store.Append(ctx, domain.Draft{Type: domain.TypeSystem, Title: fmt.Sprintf("N%d", i), Message: "m"})
		require.NoError(t, err)
	}

	reloaded, err := NewStore(path, WithCapacity(5))
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())
	records, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "N8", records[0].Title)
	assert.Equal(t, "N4", records[4].Title)
}
