package driven

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// FileLister enumerates candidate source files for the pipeline.
//
// List applies change detection: files whose content fingerprint is
// unchanged since the last run are filtered out. ListPaths enumerates
// paths only, without opening files or consulting fingerprints.
//
// Both methods return channel pairs in the parser idiom: values on the
// first channel, at most one error on the second, both closed on
// completion.
type FileLister interface {
	// List yields changed files, opened for reading. The caller owns
	// each yielded file and must close it.
	List(ctx context.Context) (<-chan *domain.File, <-chan error)

	// ListPaths yields all matching paths.
	ListPaths(ctx context.Context) (<-chan string, <-chan error)
}

// FingerprintStore persists one content hash per source file for
// change detection. A missing fingerprint is treated as "changed".
type FingerprintStore interface {
	// Changed reports whether the file's content differs from the
	// stored fingerprint, recording the new hash when it does (and on
	// first sight).
	Changed(path string) (bool, error)

	// Close releases resources.
	Close() error
}
