package fixed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

func TestSplitWithinLimitSingleChunk(t *testing.T) {
	s := New()
	chunks, err := driven.CollectChunks(s.Split([]domain.Page{
		{PageNum: 0, Offset: 0, Text: "short content"},
	}))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, domain.Chunk{PageNum: 0, Text: "short content"}, chunks[0])
}

func TestSplitOverLimitOrdinalPages(t *testing.T) {
	s := New()
	chunks, err := driven.CollectChunks(s.Split([]domain.Page{
		{PageNum: 0, Offset: 0, Text: strings.Repeat("x", 2500)},
	}))
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, 1000, len(chunks[0].Text))
	assert.Equal(t, 1000, len(chunks[1].Text))
	assert.Equal(t, 500, len(chunks[2].Text))
	for i, c := range chunks {
		assert.Equal(t, i, c.PageNum)
	}
}

func TestSplitConcatenatesPages(t *testing.T) {
	s := New()
	chunks, err := driven.CollectChunks(s.Split([]domain.Page{
		{PageNum: 0, Offset: 0, Text: "first "},
		{PageNum: 1, Offset: 6, Text: "second"},
	}))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "first second", chunks[0].Text)
}

func TestSplitBlankYieldsNothing(t *testing.T) {
	s := New()
	chunks, err := driven.CollectChunks(s.Split([]domain.Page{
		{PageNum: 0, Offset: 0, Text: "   \n "},
	}))
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
