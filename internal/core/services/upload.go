package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/logger"
	"github.com/custodia-labs/docdex-cli/internal/parsers"
)

// Ensure UploadService implements the interface.
var _ driving.Uploader = (*UploadService)(nil)

// indexerInterval is the schedule applied to the external indexer.
const indexerInterval = 4 * time.Hour

// UploadService handles single-file uploads scoped to their owner's
// access control set, plus administration of the external scheduled
// indexer.
type UploadService struct {
	registry     *parsers.Registry
	indexManager *IndexManager
	indexerAdmin driven.IndexerAdmin
	indexName    string
}

// NewUploadService creates an upload service. indexerAdmin is optional;
// without it RerunIndexer reports an error.
func NewUploadService(
	registry *parsers.Registry,
	indexManager *IndexManager,
	indexerAdmin driven.IndexerAdmin,
	indexName string,
) *UploadService {
	return &UploadService{
		registry:     registry,
		indexManager: indexManager,
		indexerAdmin: indexerAdmin,
		indexName:    indexName,
	}
}

// AddFile parses, splits and indexes a single uploaded file. The
// file's content stream is closed before returning. Uploads are not
// copied to blob storage; the file's own URL is recorded instead.
func (s *UploadService) AddFile(ctx context.Context, file *domain.File) error {
	defer file.Close()

	processor, ok := s.registry.Lookup(file.Extension())
	if !ok {
		return fmt.Errorf("%w: no parser for %q", domain.ErrUnsupportedType, file.Extension())
	}

	pages, err := driven.CollectPages(processor.Parser.Parse(ctx, file.Content))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	chunks, err := driven.CollectChunks(processor.Splitter.Split(pages))
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}
	if len(chunks) == 0 {
		logger.Debug("Upload %s produced no sections", file.Filename())
		return nil
	}

	sections := make([]domain.Section, 0, len(chunks))
	for _, chunk := range chunks {
		sections = append(sections, domain.Section{Chunk: chunk, File: file})
	}

	if err := s.indexManager.UpdateContent(ctx, sections, nil, file.URL); err != nil {
		return fmt.Errorf("index sections: %w", err)
	}
	logger.Info("Uploaded %s as %d sections", file.Filename(), len(sections))
	return nil
}

// RemoveFile removes an uploaded file's index content. When ownerOID
// is set, only documents owned exclusively by that principal are
// removed, so shared documents survive one owner's removal.
func (s *UploadService) RemoveFile(ctx context.Context, filename, ownerOID string) error {
	return s.indexManager.RemoveContent(ctx, filename, ownerOID)
}

// RerunIndexer (re)configures the external scheduled indexer and
// triggers an immediate run.
func (s *UploadService) RerunIndexer(ctx context.Context, reset bool) error {
	if s.indexerAdmin == nil {
		return fmt.Errorf("%w: no indexer admin configured", domain.ErrIndexUnavailable)
	}

	name := s.indexName + "-indexer"
	spec := driven.IndexerSpec{
		Name:        name,
		TargetIndex: s.indexName,
		Interval:    indexerInterval,
	}
	if err := s.indexerAdmin.CreateOrUpdate(ctx, spec); err != nil {
		return fmt.Errorf("configure indexer: %w", err)
	}

	if reset {
		if err := s.indexerAdmin.Reset(ctx, name); err != nil {
			return fmt.Errorf("reset indexer: %w", err)
		}
	}

	if err := s.indexerAdmin.Run(ctx, name); err != nil {
		return fmt.Errorf("run indexer: %w", err)
	}
	logger.Info("Indexer %s scheduled every %s and triggered", name, indexerInterval)
	return nil
}
