package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

const (
	// upsertBatchSize bounds one upsert request; the id ordinal scheme
	// below assumes this value, so batches and ids stay aligned.
	upsertBatchSize = 1000

	// removePageSize is the query page size used while draining
	// matching documents out of the index.
	removePageSize = 1000

	// removeBackoff gives the eventually consistent index time to
	// settle between delete rounds.
	removeBackoff = 2 * time.Second

	// defaultVectorDimensions is used when no embedding service is
	// configured to report the real value.
	defaultVectorDimensions = 1536
)

// IndexManager owns the search index's schema and content lifecycle.
// Document ids are derived from the file identity plus the section
// ordinal, so re-indexing an unchanged file overwrites in place.
type IndexManager struct {
	index      driven.SearchIndex
	embeddings driven.EmbeddingService
	indexName  string
	withImages bool

	// sleep is replaced in tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewIndexManager creates an index manager for the named index. The
// embedding service is optional; withImages adds the image embedding
// field to new indexes.
func NewIndexManager(
	index driven.SearchIndex,
	embeddings driven.EmbeddingService,
	indexName string,
	withImages bool,
) *IndexManager {
	return &IndexManager{
		index:      index,
		embeddings: embeddings,
		indexName:  indexName,
		withImages: withImages,
		sleep:      sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// buildSchema returns the full index definition for a new index.
func (m *IndexManager) buildSchema() domain.IndexSchema {
	dims := defaultVectorDimensions
	if m.embeddings != nil {
		dims = m.embeddings.Dimensions()
	}

	fields := []domain.IndexField{
		{Name: domain.FieldID, Type: "string", Key: true},
		{Name: domain.FieldContent, Type: "string", Searchable: true, Analyzer: "en.microsoft"},
		{Name: domain.FieldEmbedding, Type: "vector", Searchable: true, Dimensions: dims, VectorProfile: "embedding-profile"},
		{Name: domain.FieldCategory, Type: "string", Filterable: true, Facetable: true},
		{Name: domain.FieldSourcePage, Type: "string", Filterable: true, Facetable: true},
		{Name: domain.FieldSourceFile, Type: "string", Filterable: true, Facetable: true},
		{Name: domain.FieldStorageURL, Type: "string", Filterable: true},
		{Name: domain.FieldOIDs, Type: "string_collection", Filterable: true},
		{Name: domain.FieldGroups, Type: "string_collection", Filterable: true},
		{Name: domain.FieldParentID, Type: "string", Filterable: true},
	}
	if m.withImages {
		fields = append(fields, domain.IndexField{
			Name: domain.FieldImageEmbedding, Type: "vector", Searchable: true,
			Dimensions: 1024, VectorProfile: "embedding-profile",
		})
	}

	return domain.IndexSchema{
		Name:                 m.indexName,
		Fields:               fields,
		SemanticContentField: domain.FieldContent,
		VectorAlgorithm:      "hnsw",
		VectorMetric:         "cosine",
	}
}

// EnsureIndex creates the index if missing. An existing index is only
// ever extended with newly required fields; nothing is dropped or
// renamed.
func (m *IndexManager) EnsureIndex(ctx context.Context) error {
	exists, err := m.index.Exists(ctx, m.indexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}

	if !exists {
		logger.Info("Creating search index %s", m.indexName)
		if err := m.index.Create(ctx, m.buildSchema()); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
		return nil
	}

	logger.Debug("Search index %s already exists", m.indexName)
	schema, err := m.index.Schema(ctx, m.indexName)
	if err != nil {
		return fmt.Errorf("get index schema: %w", err)
	}

	if !schema.HasField(domain.FieldStorageURL) {
		logger.Info("Adding %s field to index %s", domain.FieldStorageURL, m.indexName)
		schema.Fields = append(schema.Fields, domain.IndexField{
			Name: domain.FieldStorageURL, Type: "string", Filterable: true,
		})
		if err := m.index.Update(ctx, *schema); err != nil {
			return fmt.Errorf("update index schema: %w", err)
		}
	}
	return nil
}

// UpdateContent upserts the sections in batches. Each batch makes at
// most one embedding call; imageEmbeddings, when present, are indexed
// by the section's page number. All sections must come from one file.
func (m *IndexManager) UpdateContent(
	ctx context.Context,
	sections []domain.Section,
	imageEmbeddings [][]float32,
	storageURL string,
) error {
	for batchStart := 0; batchStart < len(sections); batchStart += upsertBatchSize {
		batchEnd := batchStart + upsertBatchSize
		if batchEnd > len(sections) {
			batchEnd = len(sections)
		}
		batch := sections[batchStart:batchEnd]

		docs := make([]domain.IndexDocument, 0, len(batch))
		for i, section := range batch {
			file := section.File
			docs = append(docs, domain.IndexDocument{
				ID:         fmt.Sprintf("%s-page-%d", file.ID(), batchStart+i),
				Content:    section.Chunk.Text,
				Category:   section.Category,
				SourcePage: domain.SourcePageFromFilePage(file.Filename(), section.Chunk.PageNum),
				SourceFile: file.Filename(),
				StorageURL: storageURL,
				OIDs:       file.ACLs["oids"],
				Groups:     file.ACLs["groups"],
			})
		}

		if m.embeddings != nil {
			texts := make([]string, len(batch))
			for i, section := range batch {
				texts[i] = section.Chunk.Text
			}
			embeddings, err := m.embeddings.EmbedBatch(ctx, texts)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
			}
			for i := range docs {
				docs[i].Embedding = embeddings[i]
			}
		}

		if imageEmbeddings != nil {
			for i, section := range batch {
				page := section.Chunk.PageNum
				if page >= 0 && page < len(imageEmbeddings) {
					docs[i].ImageEmbedding = imageEmbeddings[page]
				}
			}
		}

		if err := m.index.Upsert(ctx, docs); err != nil {
			return fmt.Errorf("upsert sections: %w", err)
		}
		logger.Debug("Upserted %d sections into index %s", len(docs), m.indexName)
	}
	return nil
}

// RemoveContent deletes indexed documents derived from the given
// source path, or all documents when path is empty. When onlyOID is
// set, only documents owned exclusively by that principal are removed.
func (m *IndexManager) RemoveContent(ctx context.Context, path string, onlyOID string) error {
	var filter driven.SearchFilter
	if path != "" {
		filter.SourcePage = filepath.Base(path)
	}

	for {
		docs, total, err := m.index.Search(ctx, filter, removePageSize)
		if err != nil {
			return fmt.Errorf("search for removal: %w", err)
		}
		if total == 0 {
			return nil
		}

		ids := make([]string, 0, len(docs))
		for _, doc := range docs {
			if onlyOID != "" && !(len(doc.OIDs) == 1 && doc.OIDs[0] == onlyOID) {
				continue
			}
			ids = append(ids, doc.ID)
		}

		if len(ids) == 0 {
			if total < removePageSize {
				return nil
			}
			// A full page of undeletable documents: keep paging, later
			// pages may hold deletable ones.
			continue
		}

		if err := m.index.Delete(ctx, ids); err != nil {
			return fmt.Errorf("delete sections: %w", err)
		}
		logger.Info("Removed %d sections from index %s", len(ids), m.indexName)

		// Deletes are eventually consistent; wait before re-querying.
		if err := m.sleep(ctx, removeBackoff); err != nil {
			return err
		}
	}
}
