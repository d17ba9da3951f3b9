package runlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/briefing/internal/application/usecase"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_CreatesDatabase(t *testing.T) {
	store := openTestStore(t)

	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("expected sqlite db at %s: %v", store.Path(), err)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	runs := []usecase.RunRecord{
		{ID: "run-1", StartedAt: base, Duration: 1500 * time.Millisecond, Articles: 7, SourcesFailed: 1},
		{ID: "run-2", StartedAt: base.Add(time.Hour), Duration: time.Second, Error: "briefing interrupted: context canceled"},
		{ID: "run-3", StartedAt: base.Add(2 * time.Hour), Duration: 2 * time.Second, Articles: 15},
	}
	for _, run := range runs {
		require.NoError(t, store.Record(ctx, run))
	}

	got, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "run-3", got[0].ID)
	assert.Equal(t, 15, got[0].Articles)
	assert.Equal(t, "run-2", got[1].ID)
	assert.Equal(t, "briefing interrupted: context canceled", got[1].Error)
	assert.True(t, got[1].StartedAt.Equal(base.Add(time.Hour)))
	assert.Equal(t, time.Second, got[1].Duration)
}

func TestStore_RecordRejectsDuplicatesAndEmptyIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	run := usecase.RunRecord{ID: "dup", StartedAt: time.Now()}

	require.NoError(t, store.Record(ctx, run))
	assert.Error(t, store.Record(ctx, run))
	assert.Error(t, store.Record(ctx, usecase.RunRecord{}))
}

func TestStore_ReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), usecase.RunRecord{ID: "persisted", StartedAt: time.Now()}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].ID)
}

func TestStore_SatisfiesRecorder(t *testing.T) {
	var _ usecase.RunRecorder = (*Store)(nil)
}
