// Package local stores source blobs in a directory on the local
// filesystem.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

// Store copies uploaded files into a flat directory keyed by filename.
type Store struct {
	dir string
}

// NewStore creates the directory if needed and returns the store.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("local blob store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Upload copies the file's content into the store. Seekable content is
// rewound before and after copying, so the content may already have
// been read by a parser and remains readable to the caller.
func (s *Store) Upload(_ context.Context, file *domain.File) (*driven.BlobRef, error) {
	if seeker, ok := file.Content.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind content: %w", err)
		}
	}

	dest := filepath.Join(s.dir, file.Filename())

	out, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("create blob: %w", err)
	}
	if _, err := io.Copy(out, file.Content); err != nil {
		out.Close()
		return nil, fmt.Errorf("write blob: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("close blob: %w", err)
	}

	if seeker, ok := file.Content.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind content: %w", err)
		}
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}
	return &driven.BlobRef{URL: "file://" + abs}, nil
}

// Remove deletes the stored blob for the given source path. A missing
// blob is not an error.
func (s *Store) Remove(_ context.Context, path string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// RemoveAll deletes every stored blob, keeping the directory.
func (s *Store) RemoveAll(_ context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("list blobs: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("remove blob %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}
