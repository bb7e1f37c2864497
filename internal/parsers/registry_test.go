package parsers

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/parsers/layout"
	"github.com/custodia-labs/docdex-cli/internal/parsers/pdfdoc"
)

// stubTokenizer satisfies driven.Tokenizer for registry construction.
type stubTokenizer struct{}

func (stubTokenizer) Encode(text string) ([]int, error) {
	return make([]int, len(text)), nil
}

// stubLayoutService satisfies driven.DocumentLayoutService.
type stubLayoutService struct{}

func (stubLayoutService) Analyze(_ context.Context, _ io.Reader) (*driven.LayoutResult, error) {
	return &driven.LayoutResult{}, nil
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(".TXT", FileProcessor{})

	_, ok := r.Lookup(".txt")
	assert.True(t, ok)
	_, ok = r.Lookup(".TXT")
	assert.True(t, ok)
	_, ok = r.Lookup(".pdf")
	assert.False(t, ok)
}

func TestDefaultRegistryExtensions(t *testing.T) {
	r := NewDefaultRegistry(stubTokenizer{}, nil)
	assert.Equal(t,
		[]string{".csv", ".htm", ".html", ".json", ".md", ".pdf", ".txt"},
		r.Extensions())
}

func TestDefaultRegistryPDFParserSelection(t *testing.T) {
	local := NewDefaultRegistry(stubTokenizer{}, nil)
	p, ok := local.Lookup(".pdf")
	require.True(t, ok)
	assert.IsType(t, &pdfdoc.Parser{}, p.Parser)
}

func TestDefaultRegistryUsesLayoutServiceWhenConfigured(t *testing.T) {
	r := NewDefaultRegistry(stubTokenizer{}, stubLayoutService{})
	p, ok := r.Lookup(".pdf")
	require.True(t, ok)
	assert.IsType(t, &layout.Parser{}, p.Parser)
}
