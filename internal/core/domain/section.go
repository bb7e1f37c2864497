package domain

// Section bridges chunking and indexing: one chunk paired with the
// source file it came from and an optional category label. It owns no
// resources; the File reference is borrowed and closed by the pipeline.
type Section struct {
	// Chunk is the bounded text unit to index.
	Chunk Chunk

	// File is the source file the chunk was derived from.
	File *File

	// Category is an optional label stored on the index document.
	Category string
}
