package driven

// Tokenizer encodes text into model tokens. The sentence-aware splitter
// uses it to enforce the per-section token budget.
//
// Implementations wrap a concrete encoding (e.g. tiktoken cl100k_base).
// Tests substitute a deterministic stub. Encoding failures are not
// handled specially by callers; they propagate.
type Tokenizer interface {
	// Encode returns the token ids for the given text.
	Encode(text string) ([]int, error)
}
