package driving

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// RunStatus reports pipeline progress for a run.
type RunStatus struct {
	// RunID identifies the run.
	RunID string

	// Running is true while the run is in flight.
	Running bool

	// FilesProcessed counts files fully handled so far.
	FilesProcessed int

	// FilesSkipped counts files skipped (no parser, empty content).
	FilesSkipped int

	// ErrorCount counts per-file failures.
	ErrorCount int
}

// IngestRunner executes one-shot pipeline runs.
type IngestRunner interface {
	// Setup ensures the search index exists with the required schema.
	Setup(ctx context.Context) error

	// Run executes the given action to completion.
	Run(ctx context.Context, action domain.Action) error

	// Status returns progress of the current or last run.
	Status() RunStatus
}

// Uploader handles the user-upload surface.
type Uploader interface {
	// AddFile parses, splits and indexes a single uploaded file.
	AddFile(ctx context.Context, file *domain.File) error

	// RemoveFile removes an uploaded file's index content, optionally
	// restricted to documents owned exclusively by ownerOID.
	RemoveFile(ctx context.Context, filename, ownerOID string) error

	// RerunIndexer (re)configures the external scheduled indexer and
	// triggers a run, optionally resetting its state first.
	RerunIndexer(ctx context.Context, reset bool) error
}
