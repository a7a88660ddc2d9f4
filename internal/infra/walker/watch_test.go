package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRerunsOnChange(t *testing.T) {
	root := t.TempDir()

	visits := make(chan struct{}, 8)
	visit := func(context.Context) error {
		visits <- struct{}{}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	w := New(root)
	go func() {
		done <- w.Watch(ctx, 50*time.Millisecond, visit)
	}()

	// The initial visit happens before watching starts.
	select {
	case <-visits:
	case <-time.After(5 * time.Second):
		t.Fatal("initial visit never happened")
	}

	require.NoError(t, os.Mkdir(filepath.Join(root, "newproject"), 0o755))

	select {
	case <-visits:
	case <-time.After(5 * time.Second):
		t.Fatal("change did not trigger a visit")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancellation")
	}
}

func TestWatchStopsWhenInitialVisitFails(t *testing.T) {
	w := New(t.TempDir())
	wantErr := os.ErrPermission
	err := w.Watch(context.Background(), 0, func(context.Context) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
