// Package token provides token counting for chunk budgeting.
package token

import (
	"fmt"
	"unicode"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Counter counts model tokens in a string
type Counter interface {
	Count(text string) int
}

type pretrainedCounter struct {
	tok *tokenizer.Tokenizer
}

// NewPretrained loads a HuggingFace tokenizer.json and counts with it
func NewPretrained(path string) (Counter, error) {
	tok, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	return &pretrainedCounter{tok: tok}, nil
}

func (c *pretrainedCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	encoding, err := c.tok.EncodeSingle(text)
	if err != nil {
		// Fall back to the estimate rather than reporting an
		// empty segment, which would break greedy packing.
		return estimate(text)
	}
	return len(encoding.GetIds())
}

type estimatorCounter struct{}

// NewEstimator returns a heuristic Counter used when no tokenizer
// file is configured. CJK characters count roughly one token each,
// alphabetic words roughly one token per four characters.
func NewEstimator() Counter {
	return estimatorCounter{}
}

func (estimatorCounter) Count(text string) int {
	return estimate(text)
}

func estimate(text string) int {
	tokens := 0
	wordLen := 0

	flush := func() {
		if wordLen > 0 {
			tokens += (wordLen + 3) / 4
			wordLen = 0
		}
	}

	for _, r := range text {
		switch {
		case isCJK(r):
			flush()
			tokens++
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			wordLen++
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				tokens++
			}
		}
	}
	flush()

	return tokens
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
