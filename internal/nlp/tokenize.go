package nlp

import "strings"

// Tokenizer splits cleaned text into tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// WhitespaceTokenizer splits on runs of whitespace.
type WhitespaceTokenizer struct{}

// Tokenize implements Tokenizer.
func (WhitespaceTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}

// tokenize runs t and falls back to a naive split when t is missing or panics.
func tokenize(t Tokenizer, text string) (tokens []string) {
	if t == nil {
		return strings.Fields(text)
	}
	defer func() {
		if recover() != nil {
			tokens = strings.Fields(text)
		}
	}()
	return t.Tokenize(text)
}
