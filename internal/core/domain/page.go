package domain

// Page represents one parser-defined unit of extracted text.
// It carries the character offset of its text within the concatenation
// of all page texts for the document, so that later stages can map a
// position in the combined text back to a page.
//
// For a document with pages P0..Pn in order, the producing parser
// guarantees Offset(Pi+1) = Offset(Pi) + len in runes of Text(Pi),
// under its own accounting. Offsets are counted in runes, not bytes,
// so multilingual text positions stay exact.
type Page struct {
	// PageNum is the zero-based page number within the document.
	PageNum int

	// Offset is the rune offset of this page's text in the
	// concatenated document text.
	Offset int

	// Text is the extracted content of the page.
	Text string
}

// Chunk is one output unit of the splitting stage. Its text length is
// bounded by the splitter's policy, and it is attributed to the page
// whose offset range contains the chunk's starting position.
type Chunk struct {
	// PageNum attributes the chunk to its originating page.
	PageNum int

	// Text is the chunk content.
	Text string
}
