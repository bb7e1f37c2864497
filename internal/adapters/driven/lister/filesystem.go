// Package lister enumerates local source files for ingestion.
package lister

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// Ensure FilesystemLister implements the interface.
var _ driven.FileLister = (*FilesystemLister)(nil)

// FilesystemLister matches local files against a glob pattern.
// Matched directories are recursed into; ".md5" fingerprint sidecars
// are never listed.
type FilesystemLister struct {
	pattern      string
	fingerprints driven.FingerprintStore
}

// New creates a lister for the given glob pattern. When fingerprints
// is non-nil, List skips files whose content is unchanged since the
// previous run.
func New(pattern string, fingerprints driven.FingerprintStore) *FilesystemLister {
	return &FilesystemLister{
		pattern:      pattern,
		fingerprints: fingerprints,
	}
}

// ListPaths yields all matching file paths.
func (l *FilesystemLister) ListPaths(ctx context.Context) (<-chan string, <-chan error) {
	paths := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(paths)
		defer close(errs)
		if err := walkPattern(ctx, l.pattern, paths); err != nil {
			errs <- err
		}
	}()

	return paths, errs
}

// List yields changed files, opened for reading. The caller owns each
// yielded file and must close it.
func (l *FilesystemLister) List(ctx context.Context) (<-chan *domain.File, <-chan error) {
	files := make(chan *domain.File)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)

		pathCh, pathErrs := l.ListPaths(ctx)
		for path := range pathCh {
			if l.fingerprints != nil {
				changed, err := l.fingerprints.Changed(path)
				if err != nil {
					errs <- err
					return
				}
				if !changed {
					logger.Debug("skipping %s, no changes detected", path)
					continue
				}
			}

			f, err := os.Open(path)
			if err != nil {
				errs <- fmt.Errorf("open %s: %w", path, err)
				return
			}

			select {
			case files <- &domain.File{Content: f, Name: path}:
			case <-ctx.Done():
				f.Close()
				errs <- ctx.Err()
				return
			}
		}
		if err := <-pathErrs; err != nil {
			errs <- err
		}
	}()

	return files, errs
}

func walkPattern(ctx context.Context, pattern string, out chan<- string) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("glob %q: %w", pattern, err)
	}

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return fmt.Errorf("stat %s: %w", match, err)
		}
		if info.IsDir() {
			if err := walkPattern(ctx, filepath.Join(match, "*"), out); err != nil {
				return err
			}
			continue
		}
		if strings.HasSuffix(match, ".md5") {
			continue
		}

		select {
		case out <- match:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
