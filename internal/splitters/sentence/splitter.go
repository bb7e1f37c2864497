// Package sentence implements a sentence-aware, token-bounded text
// splitter. Sections target a fixed character length, end on sentence
// or word boundaries where one can be found nearby, overlap their
// neighbours for context, and are bisected until each fits the token
// budget.
package sentence

import (
	"fmt"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

const (
	// DefaultSectionLength is the target section size in characters.
	DefaultSectionLength = 1000

	// DefaultOverlapPercent is the overlap between neighbouring
	// sections, as a percentage of the section length.
	DefaultOverlapPercent = 10

	// DefaultMaxTokens bounds the token count of every emitted chunk.
	DefaultMaxTokens = 500

	// sentenceSearchLimit bounds the boundary look-ahead in characters.
	sentenceSearchLimit = 100
)

// Sentence endings, standard plus CJK (JIS X 4051:2004).
var sentenceEndings = runeSet(".!?。！？‼⁇⁈⁉")

// Word breaks, standard plus CJK (W3C jlreq cl-01).
var wordBreaks = runeSet(",;: ()[]{}\t\n" +
	"、，；：（）【】「」『』〔〕〈〉《》〖〗〘〙〚〛〝〞〟〰–—" +
	"‘’‚‛“”„‟‹›")

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range s {
		set[r] = true
	}
	return set
}

// Ensure Splitter implements the interface.
var _ driven.Splitter = (*Splitter)(nil)

// Splitter is the sentence-aware strategy. All offsets and lengths are
// rune counts, matching the parsers' page offset accounting.
type Splitter struct {
	tokenizer      driven.Tokenizer
	sectionLength  int
	sectionOverlap int
	maxTokens      int
}

// New creates a splitter with the default section length, overlap and
// token budget.
func New(tok driven.Tokenizer) *Splitter {
	return &Splitter{
		tokenizer:      tok,
		sectionLength:  DefaultSectionLength,
		sectionOverlap: DefaultSectionLength * DefaultOverlapPercent / 100,
		maxTokens:      DefaultMaxTokens,
	}
}

// Split streams token-bounded chunks derived from the pages. Splitting
// is a pure function of its input and can be re-run on the same pages.
func (s *Splitter) Split(pages []domain.Page) (<-chan domain.Chunk, <-chan error) {
	chunks := make(chan domain.Chunk)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)
		if err := s.split(pages, chunks); err != nil {
			errs <- err
		}
	}()

	return chunks, errs
}

func (s *Splitter) split(pages []domain.Page, out chan<- domain.Chunk) error {
	// findPage attributes a character offset to the last page whose
	// offset does not exceed it. When a parser undercounts offsets,
	// a chunk starting inside a later page can be attributed to an
	// earlier one; that imprecision is accepted.
	findPage := func(offset int) int {
		for i := 0; i < len(pages)-1; i++ {
			if offset >= pages[i].Offset && offset < pages[i+1].Offset {
				return pages[i].PageNum
			}
		}
		return pages[len(pages)-1].PageNum
	}

	var all []rune
	for _, p := range pages {
		all = append(all, []rune(p.Text)...)
	}
	if isBlank(all) {
		return nil
	}

	if len(all) <= s.sectionLength {
		return s.emitBounded(findPage(0), string(all), out)
	}

	length := len(all)
	start := 0
	end := 0
	for start+s.sectionOverlap < length {
		lastWord := -1
		end = start + s.sectionLength
		if end > length {
			end = length
		}

		// Advance end to the nearest sentence ending within the
		// look-ahead, remembering the last word break seen.
		for end < length &&
			end-start-s.sectionLength < sentenceSearchLimit &&
			!sentenceEndings[all[end]] {
			if wordBreaks[all[end]] {
				lastWord = end
			}
			end++
		}
		if end < length && !sentenceEndings[all[end]] && lastWord > 0 {
			end = lastWord
		}
		if end < length {
			end++
		}

		// Pull start back to the nearest sentence ending, bounded so
		// the section never exceeds its length plus both look-aheads.
		lastWord = -1
		for start > 0 &&
			start > end-s.sectionLength-2*sentenceSearchLimit &&
			!sentenceEndings[all[start]] {
			if wordBreaks[all[start]] {
				lastWord = start
			}
			start--
		}
		if !sentenceEndings[all[start]] && lastWord > 0 {
			start = lastWord
		}
		if start > 0 {
			start++
		}

		section := all[start:end]
		if err := s.emitBounded(findPage(start), string(section), out); err != nil {
			return err
		}

		// If the section opens a table it does not close, start the
		// next section at the table opener so the table's markup is
		// present in the chunk that continues it.
		lastTableStart := lastIndexRunes(section, "<table")
		if lastTableStart > 2*sentenceSearchLimit &&
			lastTableStart > lastIndexRunes(section, "</table") {
			next := start + lastTableStart
			if end-s.sectionOverlap < next {
				next = end - s.sectionOverlap
			}
			logger.Debug("section ends with unclosed table, adjusting next section start (page %d, offset %d, table start %d)",
				findPage(next), next, lastTableStart)
			start = next
		} else {
			start = end - s.sectionOverlap
		}
	}

	if start+s.sectionOverlap < end {
		return s.emitBounded(findPage(start), string(all[start:end]), out)
	}
	return nil
}

// emitBounded emits the text as one or more chunks, each within the
// token budget. Oversized text is bisected near its midpoint, at a
// sentence ending when one lies within the middle third, otherwise at
// the midpoint with a fixed overlap between the halves. The bisection
// uses an explicit work stack so pathological inputs with no sentence
// boundaries cannot exhaust the call stack.
func (s *Splitter) emitBounded(pageNum int, text string, out chan<- domain.Chunk) error {
	stack := [][]rune{[]rune(text)}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tokens, err := s.tokenizer.Encode(string(t))
		if err != nil {
			return fmt.Errorf("encode section: %w", err)
		}
		if len(tokens) <= s.maxTokens || len(t) <= 1 {
			out <- domain.Chunk{PageNum: pageNum, Text: string(t)}
			continue
		}

		mid := len(t) / 2
		boundary := len(t) / 3
		splitPos := -1
		for pos := 0; mid-pos > boundary; pos++ {
			if sentenceEndings[t[mid-pos]] {
				splitPos = mid - pos
				break
			}
			if mid+pos < len(t) && sentenceEndings[t[mid+pos]] {
				splitPos = mid + pos
				break
			}
		}

		var first, second []rune
		if splitPos > 0 {
			first = t[:splitPos+1]
			second = t[splitPos+1:]
		} else {
			overlap := len(t) * DefaultOverlapPercent / 100
			first = t[:mid+overlap]
			second = t[mid-overlap:]
		}

		// Second half below first so the first half is processed next.
		stack = append(stack, second, first)
	}
	return nil
}

func isBlank(text []rune) bool {
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\v', '\f', '\r', 0x85, 0xA0:
		default:
			return false
		}
	}
	return true
}

// lastIndexRunes returns the rune index of the last occurrence of sub
// in text, or -1.
func lastIndexRunes(text []rune, sub string) int {
	s := []rune(sub)
	if len(s) == 0 || len(s) > len(text) {
		return -1
	}
outer:
	for i := len(text) - len(s); i >= 0; i-- {
		for j, r := range s {
			if text[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
