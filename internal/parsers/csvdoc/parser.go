// Package csvdoc parses CSV content into one page per data row.
package csvdoc

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser turns each CSV data row into its own page, so search results
// point at individual rows. The header row is always skipped. Row
// fields are rejoined with commas, and each page's offset accounts for
// the previous rows plus one newline each.
type Parser struct{}

// New creates a new CSV parser.
func New() *Parser {
	return &Parser{}
}

// Parse streams one page per data row.
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
		if !utf8.Valid(data) {
			errs <- fmt.Errorf("%w: invalid UTF-8", domain.ErrDecode)
			return
		}

		reader := csv.NewReader(strings.NewReader(string(data)))
		reader.FieldsPerRecord = -1

		// Header row is always skipped.
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			errs <- fmt.Errorf("%w: %v", domain.ErrDecode, err)
			return
		}

		offset := 0
		for i := 0; ; i++ {
			row, err := reader.Read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				errs <- fmt.Errorf("%w: %v", domain.ErrDecode, err)
				return
			}

			text := strings.Join(row, ",")
			select {
			case pages <- domain.Page{PageNum: i, Offset: offset, Text: text}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
			offset += utf8.RuneCountInString(text) + 1
		}
	}()

	return pages, errs
}
