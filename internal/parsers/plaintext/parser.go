// Package plaintext parses UTF-8 text content into a single page.
package plaintext

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

var (
	multiNewline = regexp.MustCompile(`\n{2,}`)
	multiSpace   = regexp.MustCompile(`[^\S\n]{2,}`)
)

// Cleanup normalises whitespace in extracted text: runs of blank lines
// collapse to one newline, runs of non-newline whitespace collapse to
// one space, and leading/trailing whitespace is trimmed.
func Cleanup(data string) string {
	if data == "" {
		return ""
	}
	out := multiNewline.ReplaceAllString(data, "\n")
	out = multiSpace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Parser handles plain text documents. The whole content becomes one
// page with page number 0 and offset 0.
type Parser struct{}

// New creates a new plain text parser.
func New() *Parser {
	return &Parser{}
}

// Parse reads the content and emits a single cleaned page. Content
// that is not valid UTF-8 fails with a decode error.
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

		text := Cleanup(string(data))
		if text == "" {
			return
		}

		select {
		case pages <- domain.Page{PageNum: 0, Offset: 0, Text: text}:
		case <-ctx.Done():
			errs <- ctx.Err()
		}
	}()

	return pages, errs
}
