package layout

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

type fakeLayoutService struct {
	result *driven.LayoutResult
	err    error
}

func (f *fakeLayoutService) Analyze(_ context.Context, _ io.Reader) (*driven.LayoutResult, error) {
	return f.result, f.err
}

func TestParseSubstitutesTableOnce(t *testing.T) {
	// Content: "Intro XXXXX outro" where XXXXX (offsets 6..10) is a
	// table region reported as two separate spans.
	result := &driven.LayoutResult{
		Content: "Intro XXXXX outro",
		Pages: []driven.LayoutPage{
			{Number: 1, Span: driven.LayoutSpan{Offset: 0, Length: 17}},
		},
		Tables: []driven.LayoutTable{
			{
				RowCount:    1,
				ColumnCount: 2,
				PageNumber:  1,
				Spans: []driven.LayoutSpan{
					{Offset: 6, Length: 3},
					{Offset: 9, Length: 2},
				},
				Cells: []driven.LayoutCell{
					{RowIndex: 0, ColumnIndex: 0, RowSpan: 1, ColumnSpan: 1, Kind: "columnHeader", Content: "a"},
					{RowIndex: 0, ColumnIndex: 1, RowSpan: 1, ColumnSpan: 1, Content: "b"},
				},
			},
		},
	}

	p := New(&fakeLayoutService{result: result})
	pagesCh, errsCh := p.Parse(context.Background(), strings.NewReader("ignored"))
	pages, err := driven.CollectPages(pagesCh, errsCh)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	want := "Intro <table><tr><th>a</th><td>b</td></tr></table> outro"
	assert.Equal(t, want, pages[0].Text)
	assert.Equal(t, 0, pages[0].PageNum)
	assert.Equal(t, 0, pages[0].Offset)
	assert.Equal(t, 1, strings.Count(pages[0].Text, "<table>"))
}

func TestParseMultiplePagesOffsets(t *testing.T) {
	result := &driven.LayoutResult{
		Content: "page one.page two.",
		Pages: []driven.LayoutPage{
			{Number: 1, Span: driven.LayoutSpan{Offset: 0, Length: 9}},
			{Number: 2, Span: driven.LayoutSpan{Offset: 9, Length: 9}},
		},
	}

	p := New(&fakeLayoutService{result: result})
	pages, err := driven.CollectPages(p.Parse(context.Background(), strings.NewReader("")))
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, "page one.", pages[0].Text)
	assert.Equal(t, "page two.", pages[1].Text)
	assert.Equal(t, 0, pages[0].Offset)
	assert.Equal(t, 9, pages[1].Offset)
	assert.Equal(t, 1, pages[1].PageNum)
}

func TestParseEscapesCellContent(t *testing.T) {
	result := &driven.LayoutResult{
		Content: "T",
		Pages: []driven.LayoutPage{
			{Number: 1, Span: driven.LayoutSpan{Offset: 0, Length: 1}},
		},
		Tables: []driven.LayoutTable{
			{
				RowCount:    1,
				ColumnCount: 1,
				PageNumber:  1,
				Spans:       []driven.LayoutSpan{{Offset: 0, Length: 1}},
				Cells: []driven.LayoutCell{
					{RowIndex: 0, ColumnIndex: 0, RowSpan: 2, ColumnSpan: 3, Content: "<b>&</b>"},
				},
			},
		},
	}

	p := New(&fakeLayoutService{result: result})
	pages, err := driven.CollectPages(p.Parse(context.Background(), strings.NewReader("")))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "<table><tr><td colSpan=3 rowSpan=2>&lt;b&gt;&amp;&lt;/b&gt;</td></tr></table>", pages[0].Text)
}

func TestParseServiceError(t *testing.T) {
	p := New(&fakeLayoutService{err: io.ErrUnexpectedEOF})
	_, err := driven.CollectPages(p.Parse(context.Background(), strings.NewReader("")))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
