// Package domain defines the core business entities for Docdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: A position-tracked unit of text produced by a parser
//   - Chunk: A bounded split of page text, attributed to a page
//   - Section: A chunk paired with source-file metadata for indexing
//   - File: A source file with content, access control and origin URL
//   - IndexDocument: The record shape handed to the search index
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
