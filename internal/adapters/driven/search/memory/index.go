// Package memory provides an in-memory search index used in tests and
// local dry runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SearchIndex = (*Index)(nil)

// Index is an in-memory implementation of driven.SearchIndex holding a
// single index definition plus its documents.
type Index struct {
	mu     sync.RWMutex
	schema *domain.IndexSchema
	docs   map[string]domain.IndexDocument
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{
		docs: make(map[string]domain.IndexDocument),
	}
}

// Exists reports whether the named index has been created.
func (s *Index) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schema != nil && s.schema.Name == name, nil
}

// Create creates the index with the given schema.
func (s *Index) Create(_ context.Context, schema domain.IndexSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schema != nil {
		return domain.ErrInvalidInput
	}
	s.schema = &schema
	return nil
}

// Schema returns the current index definition.
func (s *Index) Schema(_ context.Context, name string) (*domain.IndexSchema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.schema == nil || s.schema.Name != name {
		return nil, domain.ErrNotFound
	}
	schema := *s.schema
	return &schema, nil
}

// Update replaces the index definition. Appended fields keep existing
// documents intact.
func (s *Index) Update(_ context.Context, schema domain.IndexSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schema == nil || s.schema.Name != schema.Name {
		return domain.ErrNotFound
	}
	s.schema = &schema
	return nil
}

// Upsert inserts or overwrites documents by id.
func (s *Index) Upsert(_ context.Context, docs []domain.IndexDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schema == nil {
		return domain.ErrIndexUnavailable
	}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return nil
}

// Delete removes documents by id. Unknown ids are ignored.
func (s *Index) Delete(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.docs, id)
	}
	return nil
}

// Search returns up to top matching documents, ordered by id, plus the
// total match count.
func (s *Index) Search(_ context.Context, filter driven.SearchFilter, top int) ([]domain.IndexDocument, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.IndexDocument
	for _, d := range s.docs {
		if filter.SourcePage != "" && d.SourcePage != filter.SourcePage {
			continue
		}
		matched = append(matched, d)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if top >= 0 && len(matched) > top {
		matched = matched[:top]
	}
	return matched, total, nil
}

// Close releases resources.
func (s *Index) Close() error {
	return nil
}

// Len reports the number of stored documents. Test helper.
func (s *Index) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
