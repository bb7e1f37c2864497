// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - Parser: Converts raw bytes into a sequence of pages
//   - Splitter: Converts pages into bounded chunks
//   - FileLister: Enumerates candidate source files
//   - FingerprintStore: Persists content hashes for change detection
//   - SearchIndex: Index schema and content lifecycle
//   - BlobStore: Raw file storage
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - EmbeddingService: Generates text vectors. Without it, sections
//     are indexed without embeddings.
//   - ImageEmbedder: Generates page-image vectors.
//   - DocumentLayoutService: Layout-aware analysis for the structured
//     PDF parser. Without it, only local PDF extraction is available.
//   - IndexerAdmin: Manages the external scheduled indexer.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, parser, or splitter package
package driven
