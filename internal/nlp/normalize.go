// Package nlp turns raw resume and job text into a deterministic stream of base-form tokens.
package nlp

import (
	"regexp"
	"strings"
	"sync"
)

var (
	reNonWord = regexp.MustCompile(`[^a-z0-9\s]`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// Normalizer cleans, tokenizes, filters and lemmatizes text.
// Both capabilities are optional: a nil Tokenizer splits on whitespace and a nil
// Lemmatizer keeps tokens unchanged. A Normalizer has no mutable state.
type Normalizer struct {
	tokenizer  Tokenizer
	lemmatizer Lemmatizer
}

// NewNormalizer creates a Normalizer with the given capabilities.
func NewNormalizer(t Tokenizer, l Lemmatizer) *Normalizer {
	return &Normalizer{tokenizer: t, lemmatizer: l}
}

// Default returns a Normalizer with whitespace tokenization and dictionary lemmatization.
func Default() *Normalizer {
	return NewNormalizer(WhitespaceTokenizer{}, DefaultLemmatizer())
}

var defaultNormalizer = sync.OnceValue(Default)

// Normalize runs text through the default Normalizer.
func Normalize(text string) string {
	return defaultNormalizer().Normalize(text)
}

// Clean lower-cases text, replaces every character outside [a-z0-9] and whitespace
// with a space and collapses whitespace.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = reNonWord.ReplaceAllString(text, " ")
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Normalize returns the space-joined lemmatized tokens of text that are not stopwords
// and longer than one character. Empty or content-free input yields "".
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	cleaned := Clean(text)
	if cleaned == "" {
		return ""
	}

	tokens := tokenize(n.tokenizer, cleaned)
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !keepToken(t) {
			continue
		}
		kept = append(kept, lemmatize(n.lemmatizer, t))
	}
	return strings.Join(kept, " ")
}

// Tokens counts the tokens of normalized text.
func Tokens(normalized string) int {
	return len(strings.Fields(normalized))
}
