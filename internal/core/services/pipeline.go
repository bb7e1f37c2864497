package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/logger"
	"github.com/custodia-labs/docdex-cli/internal/parsers"
)

// Ensure IngestPipeline implements the interface.
var _ driving.IngestRunner = (*IngestPipeline)(nil)

// IngestPipeline runs ingestion actions: parse, split and index the
// files the lister yields, or remove their indexed content again.
// Files are processed strictly sequentially; one file's failure is
// contained and the run continues.
type IngestPipeline struct {
	lister        driven.FileLister
	registry      *parsers.Registry
	indexManager  *IndexManager
	blobStore     driven.BlobStore
	imageEmbedder driven.ImageEmbedder
	category      string

	mu     sync.RWMutex
	status driving.RunStatus
}

// PipelineOptions holds the optional pipeline collaborators.
type PipelineOptions struct {
	// BlobStore, when set, receives a copy of every ingested file.
	BlobStore driven.BlobStore

	// ImageEmbedder, when set, embeds rendered page images.
	ImageEmbedder driven.ImageEmbedder

	// Category is stamped on every section produced by this pipeline.
	Category string
}

// NewIngestPipeline creates a pipeline over the given collaborators.
func NewIngestPipeline(
	lister driven.FileLister,
	registry *parsers.Registry,
	indexManager *IndexManager,
	opts PipelineOptions,
) *IngestPipeline {
	return &IngestPipeline{
		lister:        lister,
		registry:      registry,
		indexManager:  indexManager,
		blobStore:     opts.BlobStore,
		imageEmbedder: opts.ImageEmbedder,
		category:      opts.Category,
	}
}

// Setup ensures the search index exists with the required schema.
func (p *IngestPipeline) Setup(ctx context.Context) error {
	return p.indexManager.EnsureIndex(ctx)
}

// Run executes the given action to completion.
func (p *IngestPipeline) Run(ctx context.Context, action domain.Action) error {
	p.mu.Lock()
	p.status = driving.RunStatus{RunID: uuid.NewString(), Running: true}
	p.mu.Unlock()
	defer p.setRunning(false)

	logger.Info("Starting %s run", action)

	switch action {
	case domain.ActionAdd:
		return p.runAdd(ctx)
	case domain.ActionRemove:
		return p.runRemove(ctx)
	case domain.ActionRemoveAll:
		return p.runRemoveAll(ctx)
	default:
		return fmt.Errorf("%w: unknown action %d", domain.ErrInvalidInput, action)
	}
}

// Status returns progress of the current or last run.
func (p *IngestPipeline) Status() driving.RunStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *IngestPipeline) runAdd(ctx context.Context) error {
	filesCh, errsCh := p.lister.List(ctx)

	var failures []error
	for file := range filesCh {
		if err := p.addFile(ctx, file); err != nil {
			p.countError()
			logger.Warn("Failed to ingest %s: %v", file.Filename(), err)
			failures = append(failures, fmt.Errorf("%s: %w", file.Filename(), err))
			continue
		}
	}
	if err := <-errsCh; err != nil {
		return fmt.Errorf("list files: %w", err)
	}

	status := p.Status()
	logger.Info("Ingest complete: %d files indexed, %d skipped, %d errors",
		status.FilesProcessed, status.FilesSkipped, status.ErrorCount)

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d files failed: %w",
			len(failures), status.FilesProcessed+len(failures), errors.Join(failures...))
	}
	return nil
}

// addFile ingests one file. The file's content stream is always closed
// before returning.
func (p *IngestPipeline) addFile(ctx context.Context, file *domain.File) error {
	defer file.Close()

	processor, ok := p.registry.Lookup(file.Extension())
	if !ok {
		logger.Debug("Skipping %s, no parser registered for %q", file.Filename(), file.Extension())
		p.countSkipped()
		return nil
	}

	sections, err := p.buildSections(ctx, file, processor)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		logger.Debug("Skipping %s, no content found", file.Filename())
		p.countSkipped()
		return nil
	}

	var storageURL string
	var imageEmbeddings [][]float32
	if p.blobStore != nil {
		ref, err := p.blobStore.Upload(ctx, file)
		if err != nil {
			return fmt.Errorf("upload blob: %w", err)
		}
		storageURL = ref.URL

		if p.imageEmbedder != nil && len(ref.PageImageURLs) > 0 {
			imageEmbeddings, err = p.imageEmbedder.EmbedImages(ctx, ref.PageImageURLs)
			if err != nil {
				return fmt.Errorf("embed page images: %w", err)
			}
		}
	}

	if err := p.indexManager.UpdateContent(ctx, sections, imageEmbeddings, storageURL); err != nil {
		return fmt.Errorf("index sections: %w", err)
	}

	p.countProcessed()
	logger.Debug("Indexed %s as %d sections", file.Filename(), len(sections))
	return nil
}

// buildSections parses and splits one file into index-ready sections.
func (p *IngestPipeline) buildSections(
	ctx context.Context,
	file *domain.File,
	processor parsers.FileProcessor,
) ([]domain.Section, error) {
	pages, err := driven.CollectPages(processor.Parser.Parse(ctx, file.Content))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(pages) == 0 {
		return nil, nil
	}

	chunksCh, errsCh := processor.Splitter.Split(pages)
	var sections []domain.Section
	for chunk := range chunksCh {
		sections = append(sections, domain.Section{
			Chunk:    chunk,
			File:     file,
			Category: p.category,
		})
	}
	if err := <-errsCh; err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	return sections, nil
}

func (p *IngestPipeline) runRemove(ctx context.Context) error {
	pathsCh, errsCh := p.lister.ListPaths(ctx)

	var failures []error
	for path := range pathsCh {
		if p.blobStore != nil {
			if err := p.blobStore.Remove(ctx, path); err != nil {
				p.countError()
				failures = append(failures, fmt.Errorf("%s: remove blob: %w", path, err))
				continue
			}
		}
		if err := p.indexManager.RemoveContent(ctx, path, ""); err != nil {
			p.countError()
			failures = append(failures, fmt.Errorf("%s: remove content: %w", path, err))
			continue
		}
		p.countProcessed()
	}
	if err := <-errsCh; err != nil {
		return fmt.Errorf("list paths: %w", err)
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	return nil
}

func (p *IngestPipeline) runRemoveAll(ctx context.Context) error {
	if p.blobStore != nil {
		if err := p.blobStore.RemoveAll(ctx); err != nil {
			return fmt.Errorf("remove blobs: %w", err)
		}
	}
	if err := p.indexManager.RemoveContent(ctx, "", ""); err != nil {
		return fmt.Errorf("remove content: %w", err)
	}
	return nil
}

func (p *IngestPipeline) setRunning(running bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Running = running
}

func (p *IngestPipeline) countProcessed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.FilesProcessed++
}

func (p *IngestPipeline) countSkipped() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.FilesSkipped++
}

func (p *IngestPipeline) countError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.ErrorCount++
}
