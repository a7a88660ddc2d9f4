package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorePutGetList(t *testing.T) {
	store := openTestStore(t)

	completedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []ProjectRecord{
		{Name: "alpha", RunID: "run-1", SourceIDs: []string{"git:alpha"}, CompletedAt: completedAt},
		{Name: "beta", RunID: "run-1", Attributes: map[string]any{"description": "b"}, CompletedAt: completedAt},
	}
	for _, record := range records {
		require.NoError(t, store.Put(record))
	}

	got, found, err := store.Get("alpha")
	require.NoError(t, err)
	require.True(t, found)
	if diff := cmp.Diff(records[0], got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	_, found, err = store.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	listed, err := store.List()
	require.NoError(t, err)
	if diff := cmp.Diff(records, listed); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreOverwritesSameName(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put(ProjectRecord{Name: "alpha", RunID: "run-1"}))
	require.NoError(t, store.Put(ProjectRecord{Name: "alpha", RunID: "run-2"}))

	got, found, err := store.Get("alpha")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "run-2", got.RunID)

	listed, err := store.List()
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestStoreClosed(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Put(ProjectRecord{Name: "alpha"}), ErrStoreClosed)
	_, _, err := store.Get("alpha")
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = store.List()
	assert.ErrorIs(t, err, ErrStoreClosed)

	// Close is idempotent.
	require.NoError(t, store.Close())
}

func TestObserverSpillsToStore(t *testing.T) {
	store := openTestStore(t)
	observer := NewObserver(ObserverConfig{Owner: Owner("acme"), Store: store})

	project, err := observer.Observe("alpha")
	require.NoError(t, err)
	require.NoError(t, project.AddSource(testSource("git:alpha")))
	require.NoError(t, project.Complete(context.Background()))

	got, found, err := store.Get("alpha")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, observer.RunID(), got.RunID)
	assert.Equal(t, []string{"git:alpha"}, got.SourceIDs)
}
