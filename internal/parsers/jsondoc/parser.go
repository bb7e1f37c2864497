// Package jsondoc parses JSON content: a single object becomes one
// page, an array becomes one page per element.
package jsondoc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser converts JSON documents into pages. For arrays, offsets
// advance by each serialized element's length plus one separator
// character (the opening bracket or the comma before the element).
type Parser struct{}

// New creates a new JSON parser.
func New() *Parser {
	return &Parser{}
}

// Parse streams pages for the JSON content. Content that is neither a
// JSON object nor an array of values yields no pages; content that is
// not valid JSON fails with a decode error.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (<-chan domain.Page, <-chan error) {
	pages := make(chan domain.Page)
	errs := make(chan error, 1)

	go func() {
		defer close(pages)
		defer close(errs)

		data, err := io.ReadAll(r)
		if err != nil {
			errs <- fmt.Errorf("read content: %w", err)
			return
		}

		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			errs <- fmt.Errorf("%w: %v", domain.ErrDecode, err)
			return
		}

		emit := func(page domain.Page) bool {
			select {
			case pages <- page:
				return true
			case <-ctx.Done():
				errs <- ctx.Err()
				return false
			}
		}

		switch v := parsed.(type) {
		case []any:
			offset := 0
			for i, elem := range v {
				text, err := json.Marshal(elem)
				if err != nil {
					errs <- fmt.Errorf("serialize element %d: %w", i, err)
					return
				}
				offset++ // opening bracket or the comma before the element
				if !emit(domain.Page{PageNum: i, Offset: offset, Text: string(text)}) {
					return
				}
				offset += utf8.RuneCount(text)
			}
		case map[string]any:
			text, err := json.Marshal(v)
			if err != nil {
				errs <- fmt.Errorf("serialize object: %w", err)
				return
			}
			emit(domain.Page{PageNum: 0, Offset: 0, Text: string(text)})
		}
	}()

	return pages, errs
}
