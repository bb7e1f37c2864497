package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// DefaultDebounce batches rapid filesystem events into one run.
const DefaultDebounce = 2 * time.Second

// Watcher re-runs ingestion whenever files under a directory change.
// Change detection still happens through fingerprints, so a triggered
// run only re-indexes the files that actually changed.
type Watcher struct {
	runner   driving.IngestRunner
	root     string
	debounce time.Duration
}

// NewWatcher creates a watcher over the given directory tree. A zero
// debounce selects the default.
func NewWatcher(runner driving.IngestRunner, root string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{runner: runner, root: root, debounce: debounce}
}

// Watch blocks until the context is cancelled, running the pipeline
// after each burst of changes. Fingerprint sidecars are ignored so the
// pipeline's own writes never retrigger a run.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, w.root); err != nil {
		return err
	}
	logger.Info("Watching %s for changes", w.root)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.HasSuffix(event.Name, ".md5") {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						logger.Warn("Failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
				event.Op.Has(fsnotify.Rename) {
				logger.Debug("Change detected: %s", event.Name)
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case <-timer.C:
			if err := w.runner.Run(ctx, domain.ActionAdd); err != nil {
				logger.Warn("Watch-triggered run failed: %v", err)
			}
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}
