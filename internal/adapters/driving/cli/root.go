// Package cli implements the docdex command line interface.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/blob/local"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/blob/s3"
	configfile "github.com/custodia-labs/docdex-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/embedding/openai"
	fpsidecar "github.com/custodia-labs/docdex-cli/internal/adapters/driven/fingerprint/sidecar"
	fpsqlite "github.com/custodia-labs/docdex-cli/internal/adapters/driven/fingerprint/sqlite"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/layoutapi"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/lister"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/search/httpindex"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/search/memory"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/core/services"
	"github.com/custodia-labs/docdex-cli/internal/logger"
	"github.com/custodia-labs/docdex-cli/internal/parsers"
)

// defaultIndexName is used when search.index is not configured.
const defaultIndexName = "docdex"

var (
	// cfg is the loaded configuration store. Tests may replace it.
	cfg driven.ConfigStore

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docdex",
	Short: "Index local documents into a search service",
	Long: `docdex ingests local documents (PDF, HTML, text, CSV, JSON),
splits them into search-sized sections and indexes them, with optional
embeddings, into a search service. Re-running on unchanged files is a
no-op; changed files are re-indexed in place.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cfg == nil {
			store, err := configfile.NewConfigStore("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = store
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the CLI with the given context; commands observe
// cancellation through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func indexName() string {
	if name := cfg.GetString("search.index"); name != "" {
		return name
	}
	return defaultIndexName
}

// buildSearchIndex connects to the configured search service, or falls
// back to an in-memory index for dry runs.
func buildSearchIndex() (driven.SearchIndex, error) {
	url := cfg.GetString("search.url")
	if url == "" || url == "memory" {
		logger.Warn("No search.url configured, using in-memory index (results are not persisted)")
		return memory.NewIndex(), nil
	}
	return httpindex.NewClient(httpindex.Config{
		BaseURL: url,
		APIKey:  cfg.GetString("search.api_key"),
		Index:   indexName(),
	})
}

// buildEmbedder returns nil when no embedding API key is configured;
// sections are then indexed without vectors.
func buildEmbedder() (driven.EmbeddingService, error) {
	apiKey := cfg.GetString("embedding.api_key")
	if apiKey == "" {
		logger.Debug("No embedding.api_key configured, indexing without embeddings")
		return nil, nil
	}
	return openai.NewEmbeddingService(openai.Config{
		APIKey:            apiKey,
		BaseURL:           cfg.GetString("embedding.url"),
		Model:             cfg.GetString("embedding.model"),
		RequestsPerMinute: cfg.GetInt("embedding.requests_per_minute"),
	})
}

// buildRegistry assembles the parser registry. PDFs go through the
// layout service when layout.url is configured.
func buildRegistry() (*parsers.Registry, error) {
	tok, err := tiktoken.NewForModel(cfg.GetString("embedding.model"))
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	var layoutSvc driven.DocumentLayoutService
	if url := cfg.GetString("layout.url"); url != "" {
		layoutSvc, err = layoutapi.NewClient(layoutapi.Config{
			BaseURL: url,
			APIKey:  cfg.GetString("layout.api_key"),
		})
		if err != nil {
			return nil, err
		}
	}
	return parsers.NewDefaultRegistry(tok, layoutSvc), nil
}

// buildBlobStore returns nil when storage.backend is unset; source
// files are then indexed without being copied anywhere.
func buildBlobStore() (driven.BlobStore, error) {
	switch backend := cfg.GetString("storage.backend"); backend {
	case "":
		return nil, nil
	case "local":
		return local.NewStore(cfg.GetString("storage.dir"))
	case "s3":
		return s3.NewStore(rootCmd.Context(), s3.Config{
			Bucket:    cfg.GetString("storage.bucket"),
			Region:    cfg.GetString("storage.region"),
			AccessKey: cfg.GetString("storage.access_key"),
			SecretKey: cfg.GetString("storage.secret_key"),
			Prefix:    cfg.GetString("storage.prefix"),
		})
	default:
		return nil, fmt.Errorf("unknown storage.backend %q", backend)
	}
}

// buildFingerprints selects the change-detection store. "sidecar" is
// the default; "sqlite" keeps source directories clean; "none"
// disables change detection.
func buildFingerprints() (driven.FingerprintStore, error) {
	switch backend := cfg.GetString("fingerprints"); backend {
	case "", "sidecar":
		return fpsidecar.NewStore(), nil
	case "sqlite":
		return fpsqlite.NewStore(cfg.GetString("data.dir"))
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown fingerprints backend %q", backend)
	}
}

// newRunner wires a pipeline for the given file pattern. The returned
// cleanup closes everything the pipeline holds open. Package variable
// so tests can substitute a fake.
var newRunner = func(pattern, category string) (driving.IngestRunner, func(), error) {
	index, err := buildSearchIndex()
	if err != nil {
		return nil, nil, err
	}
	embedder, err := buildEmbedder()
	if err != nil {
		index.Close()
		return nil, nil, err
	}
	registry, err := buildRegistry()
	if err != nil {
		index.Close()
		return nil, nil, err
	}
	blobStore, err := buildBlobStore()
	if err != nil {
		index.Close()
		return nil, nil, err
	}
	fingerprints, err := buildFingerprints()
	if err != nil {
		index.Close()
		return nil, nil, err
	}

	manager := services.NewIndexManager(index, embedder, indexName(), false)
	fileLister := lister.New(pattern, fingerprints)
	pipeline := services.NewIngestPipeline(fileLister, registry, manager, services.PipelineOptions{
		BlobStore: blobStore,
		Category:  category,
	})

	cleanup := func() {
		if fingerprints != nil {
			fingerprints.Close()
		}
		if blobStore != nil {
			blobStore.Close()
		}
		if embedder != nil {
			embedder.Close()
		}
		index.Close()
	}
	return pipeline, cleanup, nil
}

// newUploader wires the single-file upload surface. Package variable
// so tests can substitute a fake.
var newUploader = func() (driving.Uploader, func(), error) {
	index, err := buildSearchIndex()
	if err != nil {
		return nil, nil, err
	}
	embedder, err := buildEmbedder()
	if err != nil {
		index.Close()
		return nil, nil, err
	}
	registry, err := buildRegistry()
	if err != nil {
		index.Close()
		return nil, nil, err
	}

	// The HTTP client doubles as the indexer admin; the in-memory
	// fallback has no scheduled indexer.
	admin, _ := index.(driven.IndexerAdmin)

	manager := services.NewIndexManager(index, embedder, indexName(), false)
	uploader := services.NewUploadService(registry, manager, admin, indexName())

	cleanup := func() {
		if embedder != nil {
			embedder.Close()
		}
		index.Close()
	}
	return uploader, cleanup, nil
}

// watchRoot derives the directory to watch from a glob pattern: the
// longest path prefix with no glob metacharacters.
func watchRoot(pattern string) string {
	parts := strings.Split(pattern, "/")
	var kept []string
	for _, part := range parts {
		if strings.ContainsAny(part, "*?[{") {
			break
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return "."
	}
	root := strings.Join(kept, "/")
	if root == "" {
		return "/"
	}
	return root
}
