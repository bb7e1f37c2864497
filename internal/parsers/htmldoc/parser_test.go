package htmldoc

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

func parse(t *testing.T, content string) string {
	t.Helper()
	pages, err := driven.CollectPages(New().Parse(context.Background(), strings.NewReader(content)))
	require.NoError(t, err)
	if len(pages) == 0 {
		return ""
	}
	require.Len(t, pages, 1)
	assert.Equal(t, 0, pages[0].PageNum)
	assert.Equal(t, 0, pages[0].Offset)
	return pages[0].Text
}

func TestParser_Parse_StripsMarkup(t *testing.T) {
	text := parse(t, "<html><body><h1>Title</h1><p>Hello <b>World</b></p></body></html>")
	assert.Equal(t, "Title\nHello World", text)
}

func TestParser_Parse_SkipsScriptAndStyle(t *testing.T) {
	text := parse(t, "<body><script>var x=1;</script><style>p{}</style><p>visible</p></body>")
	assert.Equal(t, "visible", text)
}

func TestParser_Parse_CollapsesWhitespace(t *testing.T) {
	text := parse(t, "<p>Hello    World</p>\n\n\n<p>Next</p>")
	assert.Equal(t, "Hello World\nNext", text)
}

func TestParser_Parse_CollapsesHyphenRuns(t *testing.T) {
	text := parse(t, "<p>before ------ after</p>")
	assert.Equal(t, "before -- after", text)
}

func TestParser_Parse_DecodesEntities(t *testing.T) {
	text := parse(t, "<p>a &amp; b</p>")
	assert.Equal(t, "a & b", text)
}

func TestParser_Parse_EmptyBody(t *testing.T) {
	text := parse(t, "<html><body></body></html>")
	assert.Equal(t, "", text)
}
