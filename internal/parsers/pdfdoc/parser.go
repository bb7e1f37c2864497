// Package pdfdoc parses PDF content locally, one page per physical
// page. Extraction quality is best-effort; pages whose text cannot be
// extracted are preserved positionally as empty pages.
package pdfdoc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser extracts text from PDFs without any external service.
type Parser struct{}

// New creates a new local PDF parser.
func New() *Parser {
	return &Parser{}
}

// Parse streams one page per physical PDF page, with offsets
// accumulating the extracted text length across pages.
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

		reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			errs <- fmt.Errorf("%w: %v", domain.ErrDecode, err)
			return
		}

		offset := 0
		for i := 1; i <= reader.NumPage(); i++ {
			text := ""
			page := reader.Page(i)
			if !page.V.IsNull() {
				// Image-only or malformed pages extract as empty.
				if extracted, err := page.GetPlainText(nil); err == nil {
					text = extracted
				}
			}

			select {
			case pages <- domain.Page{PageNum: i - 1, Offset: offset, Text: text}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
			offset += utf8.RuneCountInString(text)
		}
	}()

	return pages, errs
}
