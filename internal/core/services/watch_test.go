package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
)

// countingRunner counts watch-triggered runs.
type countingRunner struct {
	mu   sync.Mutex
	runs int
}

func (r *countingRunner) Setup(_ context.Context) error { return nil }

func (r *countingRunner) Run(_ context.Context, _ domain.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs++
	return nil
}

func (r *countingRunner) Status() driving.RunStatus { return driving.RunStatus{} }

func (r *countingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

func TestWatcherRunsAfterChange(t *testing.T) {
	dir := t.TempDir()
	runner := &countingRunner{}
	watcher := NewWatcher(runner, dir, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("hello"), 0o644))

	assert.Eventually(t, func() bool {
		return runner.count() >= 1
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcherIgnoresFingerprintSidecars(t *testing.T) {
	dir := t.TempDir()
	runner := &countingRunner{}
	watcher := NewWatcher(runner, dir, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt.md5"), []byte("abc"), 0o644))

	// Sidecar writes never start the debounce timer.
	time.Sleep(500 * time.Millisecond)
	assert.Zero(t, runner.count())

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcherDefaultDebounce(t *testing.T) {
	w := NewWatcher(&countingRunner{}, ".", 0)
	assert.Equal(t, DefaultDebounce, w.debounce)
}
