package artifact

import (
	"context"
	"sync"

	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
)

// MemoryStore keeps the latest artifact in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	model []byte
	meta  domart.Metadata
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored artifact with a copy of model.
func (s *MemoryStore) Save(ctx context.Context, model []byte, meta domart.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = append([]byte(nil), model...)
	s.meta = meta
	return nil
}

// Load returns a copy of the stored artifact.
func (s *MemoryStore) Load(ctx context.Context) ([]byte, domart.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, domart.Metadata{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.model == nil {
		return nil, domart.Metadata{}, domart.ErrNotFound
	}
	return append([]byte(nil), s.model...), s.meta, nil
}
