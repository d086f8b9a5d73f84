package ranking

import "github.com/kailas-cloud/resumatch/internal/domain/vector"

// Transformer projects normalized texts onto the served vocabulary.
type Transformer interface {
	Transform(texts []string) ([]vector.Sparse, error)
}

// Normalizer turns raw text into normalized text.
type Normalizer interface {
	Normalize(text string) string
}
