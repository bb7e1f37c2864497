package parsers

import (
	"sort"
	"strings"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// FileProcessor pairs a parser with the splitter used for its format.
type FileProcessor struct {
	// Parser extracts pages from the raw content.
	Parser driven.Parser

	// Splitter converts the pages into bounded chunks.
	Splitter driven.Splitter
}

// Registry maps lowercase file extensions (including the leading dot)
// to their processors. Files with unregistered extensions are skipped
// by the pipeline, not treated as errors.
type Registry struct {
	processors map[string]FileProcessor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		processors: make(map[string]FileProcessor),
	}
}

// Register adds a processor for an extension. The extension is
// lowercased; registering an extension twice replaces the processor.
func (r *Registry) Register(ext string, p FileProcessor) {
	r.processors[strings.ToLower(ext)] = p
}

// Lookup returns the processor for an extension.
func (r *Registry) Lookup(ext string) (FileProcessor, bool) {
	p, ok := r.processors[strings.ToLower(ext)]
	return p, ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.processors))
	for ext := range r.processors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
