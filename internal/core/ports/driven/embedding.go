package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, sections are indexed without
// embeddings and vector search is unavailable for them.
//
// Implementations may include:
//   - OpenAI-compatible HTTP APIs (text-embedding-3-small, ada-002)
//   - Local models via inference servers
type EmbeddingService interface {
	// EmbedBatch generates embeddings for multiple texts in one call.
	// The index manager invokes this once per upsert batch, never per
	// document.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 1536).
	// This must match the index schema's vector field dimensions.
	Dimensions() int

	// Close releases resources.
	Close() error
}

// ImageEmbedder generates vector embeddings for page images referenced
// by URL. Optional; when nil, image embeddings are skipped.
type ImageEmbedder interface {
	// EmbedImages generates one embedding per image URL.
	EmbedImages(ctx context.Context, urls []string) ([][]float32, error)

	// Dimensions returns the image embedding vector size.
	Dimensions() int
}
