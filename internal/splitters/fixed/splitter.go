// Package fixed implements a simple length-based splitter with no
// sentence or token awareness. It suits formats whose pages are
// already self-contained records, such as JSON documents.
package fixed

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// DefaultMaxObjectLength is the maximum characters per chunk.
const DefaultMaxObjectLength = 1000

// Ensure Splitter implements the interface.
var _ driven.Splitter = (*Splitter)(nil)

// Splitter emits consecutive non-overlapping fixed-size chunks.
// Chunk PageNum is the chunk's ordinal index, not a source page.
type Splitter struct {
	maxObjectLength int
}

// New creates a splitter with the default chunk length.
func New() *Splitter {
	return &Splitter{maxObjectLength: DefaultMaxObjectLength}
}

// Split concatenates the page texts and cuts them into fixed-size
// chunks. Content within the limit is emitted as a single chunk.
func (s *Splitter) Split(pages []domain.Page) (<-chan domain.Chunk, <-chan error) {
	chunks := make(chan domain.Chunk)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		var b strings.Builder
		for _, p := range pages {
			b.WriteString(p.Text)
		}
		text := b.String()
		if strings.TrimSpace(text) == "" {
			return
		}

		if utf8.RuneCountInString(text) <= s.maxObjectLength {
			chunks <- domain.Chunk{PageNum: 0, Text: text}
			return
		}

		all := []rune(text)
		for i, n := 0, 0; i < len(all); i, n = i+s.maxObjectLength, n+1 {
			end := i + s.maxObjectLength
			if end > len(all) {
				end = len(all)
			}
			chunks <- domain.Chunk{PageNum: n, Text: string(all[i:end])}
		}
	}()

	return chunks, errs
}
