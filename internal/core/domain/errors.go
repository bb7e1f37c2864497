package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no parser is registered for a
	// file's extension. Non-fatal: the file is skipped and logged.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDecode indicates content could not be interpreted as text.
	// It aborts that file's ingestion.
	ErrDecode = errors.New("content is not decodable text")

	// ErrIndexUnavailable indicates the search index is not configured.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Sections are indexed without vectors.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
