package driven

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// BlobRef describes where an uploaded file landed.
type BlobRef struct {
	// URL is the stored file's location.
	URL string

	// PageImageURLs are locations of per-page rendered images, in page
	// order. Empty when the store does not render page images.
	PageImageURLs []string
}

// BlobStore persists raw source files alongside the index, so search
// results can link back to the original document.
type BlobStore interface {
	// Upload stores the file's content and returns its location.
	// The reader is consumed but not closed.
	Upload(ctx context.Context, file *domain.File) (*BlobRef, error)

	// Remove deletes the stored blob for the given source path.
	Remove(ctx context.Context, path string) error

	// RemoveAll deletes every stored blob.
	RemoveAll(ctx context.Context) error

	// Close releases resources.
	Close() error
}
