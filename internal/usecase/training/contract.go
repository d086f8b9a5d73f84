package training

import (
	"context"

	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
	"github.com/kailas-cloud/resumatch/internal/tfidf"
)

// ArtifactStore persists the trained model and its metadata.
type ArtifactStore interface {
	Save(ctx context.Context, model []byte, meta domart.Metadata) error
	Load(ctx context.Context) ([]byte, domart.Metadata, error)
}

// ServedModel is the model instance the matching services read from.
type ServedModel interface {
	Replace(other *tfidf.Model) error
	VocabularySize() int
	Fitted() bool
}

// Normalizer turns raw text into normalized text.
type Normalizer interface {
	Normalize(text string) string
}
