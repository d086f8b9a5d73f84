// Package tfidf implements a bag-of-words TF-IDF vector model with a closed vocabulary.
package tfidf

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/vector"
)

// state is an immutable fitted vocabulary with its IDF weights.
type state struct {
	vocab map[string]int
	terms []string // index -> term, sorted ascending
	idf   []float64
	docs  int
}

// Model is a TF-IDF vectorizer. The zero value is untrained.
// Fit, Load and Replace swap the whole fitted state atomically; Transform reads a
// snapshot and never blocks.
type Model struct {
	current atomic.Pointer[state]
}

// New creates an untrained model.
func New() *Model { return &Model{} }

// Fit builds the vocabulary and IDF weights from corpus, replacing any previous state,
// and returns the TF-IDF vector of every corpus document.
// corpus holds normalized texts: tokens are whitespace-separated.
func (m *Model) Fit(corpus []string) ([]vector.Sparse, error) {
	s, err := fit(corpus)
	if err != nil {
		return nil, err
	}
	m.current.Store(s)
	return transformAll(s, corpus), nil
}

// Transform projects texts onto the fitted vocabulary. Unknown terms are dropped.
func (m *Model) Transform(texts []string) ([]vector.Sparse, error) {
	s := m.current.Load()
	if s == nil {
		return nil, fmt.Errorf("transform: %w", domain.ErrModelNotReady)
	}
	return transformAll(s, texts), nil
}

// Replace hot-swaps the fitted state of other into m.
func (m *Model) Replace(other *Model) error {
	s := other.current.Load()
	if s == nil {
		return fmt.Errorf("replace: %w", domain.ErrModelNotReady)
	}
	m.current.Store(s)
	return nil
}

// Fitted reports whether the model has a vocabulary.
func (m *Model) Fitted() bool { return m.current.Load() != nil }

// VocabularySize returns the vector dimension, 0 when untrained.
func (m *Model) VocabularySize() int {
	if s := m.current.Load(); s != nil {
		return len(s.terms)
	}
	return 0
}

// DocumentCount returns the size of the training corpus, 0 when untrained or loaded
// from an artifact (the count lives in the artifact metadata).
func (m *Model) DocumentCount() int {
	if s := m.current.Load(); s != nil {
		return s.docs
	}
	return 0
}

// IDF returns the inverse document frequency of term and whether it is in the vocabulary.
func (m *Model) IDF(term string) (float64, bool) {
	s := m.current.Load()
	if s == nil {
		return 0, false
	}
	i, ok := s.vocab[term]
	if !ok {
		return 0, false
	}
	return s.idf[i], true
}

func fit(corpus []string) (*state, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("fit: empty corpus: %w", domain.ErrInvalidInput)
	}

	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range strings.Fields(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, fmt.Errorf("fit: corpus has no terms: %w", domain.ErrInvalidInput)
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	s := &state{
		vocab: make(map[string]int, len(terms)),
		terms: terms,
		idf:   make([]float64, len(terms)),
		docs:  len(corpus),
	}
	for i, t := range terms {
		s.vocab[t] = i
		s.idf[i] = smoothIDF(n, float64(df[t]))
	}
	return s, nil
}

// smoothIDF is ln((1+n)/(1+df)) + 1: every term keeps a positive weight and
// unseen-in-corpus terms never divide by zero.
func smoothIDF(n, df float64) float64 {
	return math.Log((1+n)/(1+df)) + 1
}

func transformAll(s *state, texts []string) []vector.Sparse {
	out := make([]vector.Sparse, len(texts))
	for i, text := range texts {
		out[i] = s.transform(text)
	}
	return out
}

// transform returns raw term count x IDF for every known term of text, not normalized.
func (s *state) transform(text string) vector.Sparse {
	counts := make(map[int]int)
	for _, tok := range strings.Fields(text) {
		if i, ok := s.vocab[tok]; ok {
			counts[i]++
		}
	}

	v := vector.Sparse{
		Dim:     len(s.terms),
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for i := range counts {
		v.Indices = append(v.Indices, i)
	}
	sort.Ints(v.Indices)
	for _, i := range v.Indices {
		v.Values = append(v.Values, float64(counts[i])*s.idf[i])
	}
	return v
}
