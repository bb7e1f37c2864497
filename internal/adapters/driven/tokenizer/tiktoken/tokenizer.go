// Package tiktoken adapts the tiktoken BPE tokenizer to the tokenizer
// port. Token counts drive the splitter's section budget and must use
// the same encoding as the embedding model.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// DefaultModel matches the default embedding model.
const DefaultModel = "text-embedding-ada-002"

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer encodes text with a model's BPE encoding.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// NewForModel creates a tokenizer using the encoding of the given
// embedding model. An empty model selects the default.
func NewForModel(model string) (*Tokenizer, error) {
	if model == "" {
		model = DefaultModel
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("tiktoken: encoding for model %q: %w", model, err)
	}
	return &Tokenizer{encoding: enc}, nil
}

// Encode returns the BPE token ids for the text.
func (t *Tokenizer) Encode(text string) ([]int, error) {
	return t.encoding.Encode(text, nil, nil), nil
}
