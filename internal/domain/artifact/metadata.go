// Package artifact describes a persisted trained model.
package artifact

import (
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// ErrNotFound signals that no trained model has been stored yet.
var ErrNotFound = errors.New("model artifact not found")

// versionLayout renders training time as vYYYYMMDDHHMMSS.
const versionLayout = "20060102150405"

// Metadata identifies a trained model. It is stored next to the artifact, never inside it.
type Metadata struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	NumDocs   int       `json:"num_docs"`
}

// NewMetadata creates metadata for a model trained at t on numDocs documents.
// An empty version is derived from t.
func NewMetadata(version string, t time.Time, numDocs int) Metadata {
	if version == "" {
		version = NewVersion(t)
	}
	return Metadata{Version: version, CreatedAt: t.UTC(), NumDocs: numDocs}
}

// NewVersion returns the default version label for a model trained at t.
func NewVersion(t time.Time) string {
	return "v" + t.UTC().Format(versionLayout)
}

// Validate checks that metadata can be stored.
func (m Metadata) Validate() error {
	if m.Version == "" {
		return fmt.Errorf("metadata: empty version: %w", domain.ErrInvalidInput)
	}
	if m.NumDocs < 0 {
		return fmt.Errorf("metadata: negative num_docs: %w", domain.ErrInvalidInput)
	}
	return nil
}
