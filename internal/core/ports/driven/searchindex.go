package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// SearchFilter restricts a paged query over the index.
// A zero-value filter matches all documents.
type SearchFilter struct {
	// SourcePage, when non-empty, matches documents whose sourcepage
	// field equals this value exactly.
	SourcePage string
}

// SearchIndex exposes the external search service's schema and content
// lifecycle. The wire protocol is an adapter concern; the index is
// eventually consistent, so deletes may not be visible to an
// immediately following Search.
type SearchIndex interface {
	// Exists reports whether the named index exists.
	Exists(ctx context.Context, name string) (bool, error)

	// Create creates the index with the given schema.
	Create(ctx context.Context, schema domain.IndexSchema) error

	// Schema fetches the current definition of the named index.
	Schema(ctx context.Context, name string) (*domain.IndexSchema, error)

	// Update applies a non-destructive schema update (appended fields).
	Update(ctx context.Context, schema domain.IndexSchema) error

	// Upsert inserts or overwrites documents by id.
	Upsert(ctx context.Context, docs []domain.IndexDocument) error

	// Delete removes documents by id.
	Delete(ctx context.Context, ids []string) error

	// Search returns up to top matching documents plus the total
	// match count for the filter.
	Search(ctx context.Context, filter SearchFilter, top int) ([]domain.IndexDocument, int, error)

	// Close releases resources.
	Close() error
}

// IndexerSpec configures the external scheduled indexer.
type IndexerSpec struct {
	// Name is the indexer name, conventionally "<index>-indexer".
	Name string

	// TargetIndex is the index the indexer writes into.
	TargetIndex string

	// Interval is the run schedule.
	Interval time.Duration
}

// IndexerAdmin manages the search service's scheduled indexer.
// Optional; only the upload surface uses it.
type IndexerAdmin interface {
	// CreateOrUpdate applies the indexer configuration.
	CreateOrUpdate(ctx context.Context, spec IndexerSpec) error

	// Reset clears the indexer's change tracking state.
	Reset(ctx context.Context, name string) error

	// Run triggers an immediate indexer run.
	Run(ctx context.Context, name string) error
}
