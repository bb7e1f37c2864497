// Package htmldoc parses HTML content by stripping all markup down to
// plain text, producing a single page.
package htmldoc

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/parsers/plaintext"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

var multiHyphen = regexp.MustCompile(`-{2,}`)

// Elements whose text content is never document text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// Parser extracts readable text from HTML documents. All tags are
// removed, entities are decoded, whitespace is normalised as for plain
// text, and long hyphen runs (horizontal rules typed as "----") are
// collapsed to a double hyphen.
type Parser struct{}

// New creates a new HTML parser.
func New() *Parser {
	return &Parser{}
}

// Parse emits a single page containing the document's visible text.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (<-chan domain.Page, <-chan error) {
	pages := make(chan domain.Page)
	errs := make(chan error, 1)

	go func() {
		defer close(pages)
		defer close(errs)

		doc, err := html.Parse(r)
		if err != nil {
			errs <- fmt.Errorf("%w: %v", domain.ErrDecode, err)
			return
		}

		var b strings.Builder
		extractText(doc, &b)

		text := plaintext.Cleanup(b.String())
		text = multiHyphen.ReplaceAllString(text, "--")
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

// extractText walks the parse tree collecting text nodes.
func extractText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && skippedElements[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, b)
	}
	// Block elements separate their text from what follows.
	if n.Type == html.ElementNode && isBlockElement(n.Data) {
		b.WriteString("\n")
	}
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "ul": true, "ol": true, "blockquote": true, "pre": true,
}

func isBlockElement(name string) bool {
	return blockElements[name]
}
