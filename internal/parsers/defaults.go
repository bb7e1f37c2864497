package parsers

import (
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/parsers/csvdoc"
	"github.com/custodia-labs/docdex-cli/internal/parsers/htmldoc"
	"github.com/custodia-labs/docdex-cli/internal/parsers/jsondoc"
	"github.com/custodia-labs/docdex-cli/internal/parsers/layout"
	"github.com/custodia-labs/docdex-cli/internal/parsers/pdfdoc"
	"github.com/custodia-labs/docdex-cli/internal/parsers/plaintext"
	"github.com/custodia-labs/docdex-cli/internal/splitters/fixed"
	"github.com/custodia-labs/docdex-cli/internal/splitters/sentence"
)

// NewDefaultRegistry builds the registry for the supported formats.
// Text-like formats use the sentence splitter; JSON documents are
// already record-shaped and use the fixed splitter. PDFs go through
// the layout service when one is configured, otherwise through the
// local text extractor.
func NewDefaultRegistry(tok driven.Tokenizer, layoutSvc driven.DocumentLayoutService) *Registry {
	sent := sentence.New(tok)

	var pdfParser driven.Parser = pdfdoc.New()
	if layoutSvc != nil {
		pdfParser = layout.New(layoutSvc)
	}

	r := NewRegistry()
	r.Register(".pdf", FileProcessor{Parser: pdfParser, Splitter: sent})
	r.Register(".html", FileProcessor{Parser: htmldoc.New(), Splitter: sent})
	r.Register(".htm", FileProcessor{Parser: htmldoc.New(), Splitter: sent})
	r.Register(".txt", FileProcessor{Parser: plaintext.New(), Splitter: sent})
	r.Register(".md", FileProcessor{Parser: plaintext.New(), Splitter: sent})
	r.Register(".csv", FileProcessor{Parser: csvdoc.New(), Splitter: sent})
	r.Register(".json", FileProcessor{Parser: jsondoc.New(), Splitter: fixed.New()})
	return r
}
