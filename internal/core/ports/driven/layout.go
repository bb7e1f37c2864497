package driven

import (
	"context"
	"io"
)

// LayoutSpan is a half-open character range [Offset, Offset+Length)
// within the analysis result's whole-document content string.
type LayoutSpan struct {
	Offset int
	Length int
}

// LayoutCell is one table cell from layout analysis.
type LayoutCell struct {
	// RowIndex and ColumnIndex locate the cell in the table grid.
	RowIndex    int
	ColumnIndex int

	// RowSpan and ColumnSpan are 1 for ordinary cells.
	RowSpan    int
	ColumnSpan int

	// Kind is "columnHeader", "rowHeader" or "" for body cells.
	Kind string

	// Content is the cell's plain text.
	Content string
}

// LayoutTable is one detected table region.
type LayoutTable struct {
	// RowCount and ColumnCount give the grid dimensions.
	RowCount    int
	ColumnCount int

	// PageNumber is the one-based page the table appears on.
	PageNumber int

	// Spans are the table's character ranges in the document content.
	Spans []LayoutSpan

	// Cells are the table's cells.
	Cells []LayoutCell
}

// LayoutPage is one analysed page.
type LayoutPage struct {
	// Number is the one-based page number.
	Number int

	// Span is the page's character range in the document content.
	Span LayoutSpan
}

// LayoutResult is the complete document analysis.
type LayoutResult struct {
	// Content is the whole-document extracted text.
	Content string

	// Pages are the document's pages in order.
	Pages []LayoutPage

	// Tables are all detected tables.
	Tables []LayoutTable
}

// DocumentLayoutService performs layout-aware document analysis via an
// external service. The structured PDF parser uses it to substitute
// detected table regions with an HTML-table rendering.
type DocumentLayoutService interface {
	// Analyze submits the document and waits for the analysis result.
	Analyze(ctx context.Context, r io.Reader) (*LayoutResult, error)
}
