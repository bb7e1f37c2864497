// Package layout parses documents through an external layout-analysis
// service. Detected table regions are substituted in place with an
// HTML-table rendering so downstream chunking can keep tables intact.
package layout

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser converts layout-analysis results into pages. Offset
// bookkeeping follows the service's own span accounting, which may be
// approximate when tables span page boundaries; that imprecision is a
// documented property of this parser, not an error.
type Parser struct {
	svc driven.DocumentLayoutService
}

// New creates a parser backed by the given layout service.
func New(svc driven.DocumentLayoutService) *Parser {
	return &Parser{svc: svc}
}

// Parse submits the document for analysis and streams one page per
// physical page, with table spans replaced by HTML tables.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (<-chan domain.Page, <-chan error) {
	pages := make(chan domain.Page)
	errs := make(chan error, 1)

	go func() {
		defer close(pages)
		defer close(errs)

		result, err := p.svc.Analyze(ctx, r)
		if err != nil {
			errs <- fmt.Errorf("layout analysis: %w", err)
			return
		}

		content := []rune(result.Content)
		offset := 0
		for pageIdx, page := range result.Pages {
			text := renderPage(content, page, tablesOnPage(result.Tables, page.Number))

			select {
			case pages <- domain.Page{PageNum: pageIdx, Offset: offset, Text: text}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
			offset += utf8.RuneCountInString(text)
		}
	}()

	return pages, errs
}

// tablesOnPage selects the tables appearing on the given page number.
func tablesOnPage(tables []driven.LayoutTable, pageNumber int) []driven.LayoutTable {
	var out []driven.LayoutTable
	for _, t := range tables {
		if t.PageNumber == pageNumber {
			out = append(out, t)
		}
	}
	return out
}

// renderPage rebuilds a page's text with each table span replaced by
// the table's HTML rendering. A table covering several spans is
// substituted only once, at the first character of its first span.
func renderPage(content []rune, page driven.LayoutPage, tables []driven.LayoutTable) string {
	pageOffset := page.Span.Offset
	pageLength := page.Span.Length

	// Mark every character position covered by a table span.
	tableChars := make([]int, pageLength)
	for i := range tableChars {
		tableChars[i] = -1
	}
	for tableID, table := range tables {
		for _, span := range table.Spans {
			for i := 0; i < span.Length; i++ {
				idx := span.Offset - pageOffset + i
				if idx >= 0 && idx < pageLength {
					tableChars[idx] = tableID
				}
			}
		}
	}

	var b strings.Builder
	added := make(map[int]bool)
	for idx, tableID := range tableChars {
		if tableID == -1 {
			if pageOffset+idx < len(content) {
				b.WriteRune(content[pageOffset+idx])
			}
		} else if !added[tableID] {
			b.WriteString(tableToHTML(tables[tableID]))
			added[tableID] = true
		}
	}
	return b.String()
}

// tableToHTML serialises a detected table to HTML markup with escaped
// cell content, preserving header kinds and row/column spans.
func tableToHTML(table driven.LayoutTable) string {
	var b strings.Builder
	b.WriteString("<table>")
	for row := 0; row < table.RowCount; row++ {
		b.WriteString("<tr>")
		for _, cell := range rowCells(table, row) {
			tag := "td"
			if cell.Kind == "columnHeader" || cell.Kind == "rowHeader" {
				tag = "th"
			}
			spans := ""
			if cell.ColumnSpan > 1 {
				spans += fmt.Sprintf(" colSpan=%d", cell.ColumnSpan)
			}
			if cell.RowSpan > 1 {
				spans += fmt.Sprintf(" rowSpan=%d", cell.RowSpan)
			}
			fmt.Fprintf(&b, "<%s%s>%s</%s>", tag, spans, html.EscapeString(cell.Content), tag)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

// rowCells returns a row's cells ordered by column index.
func rowCells(table driven.LayoutTable, row int) []driven.LayoutCell {
	var cells []driven.LayoutCell
	for _, c := range table.Cells {
		if c.RowIndex == row {
			cells = append(cells, c)
		}
	}
	for i := 1; i < len(cells); i++ {
		for j := i; j > 0 && cells[j-1].ColumnIndex > cells[j].ColumnIndex; j-- {
			cells[j-1], cells[j] = cells[j], cells[j-1]
		}
	}
	return cells
}
