package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// Parser converts raw byte content into a lazy, finite, non-restartable
// sequence of pages, ordered by increasing page number.
//
// Pages arrive on the first channel; a parse failure is delivered on
// the second channel after the page channel closes. Both channels are
// closed when parsing completes. The sequence cannot be consumed twice.
type Parser interface {
	// Parse reads the content stream and streams extracted pages.
	Parse(ctx context.Context, r io.Reader) (<-chan domain.Page, <-chan error)
}

// Splitter converts an ordered page sequence into a lazy sequence of
// bounded chunks. Splitting is deterministic and restartable: it is a
// pure function of its input.
type Splitter interface {
	// Split streams chunks derived from the given pages.
	Split(pages []domain.Page) (<-chan domain.Chunk, <-chan error)
}

// CollectPages drains a parser's channel pair into a slice.
// It returns the pages seen before any error.
func CollectPages(pages <-chan domain.Page, errs <-chan error) ([]domain.Page, error) {
	var out []domain.Page
	for p := range pages {
		out = append(out, p)
	}
	if err := <-errs; err != nil {
		return out, err
	}
	return out, nil
}

// CollectChunks drains a splitter's channel pair into a slice.
func CollectChunks(chunks <-chan domain.Chunk, errs <-chan error) ([]domain.Chunk, error) {
	var out []domain.Chunk
	for c := range chunks {
		out = append(out, c)
	}
	if err := <-errs; err != nil {
		return out, err
	}
	return out, nil
}
