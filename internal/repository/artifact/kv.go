package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/resumatch/internal/db"
	"github.com/kailas-cloud/resumatch/internal/domain"
	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
)

var (
	artifactKey = domain.KeyPrefix + "model:artifact"
	metaKey     = domain.KeyPrefix + "model:meta"
)

// kvStore is the consumer interface for the shared store (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMulti(ctx context.Context, items []db.KVItem) error
}

// KVStore shares the served model between replicas through Redis or Valkey.
type KVStore struct {
	store kvStore
}

// NewKVStore creates a key-value backed store.
func NewKVStore(s kvStore) *KVStore {
	return &KVStore{store: s}
}

// Save writes artifact and metadata in one multi-key write.
func (s *KVStore) Save(ctx context.Context, model []byte, meta domart.Metadata) error {
	if err := meta.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	err = s.store.SetMulti(ctx, []db.KVItem{
		{Key: artifactKey, Value: model},
		{Key: metaKey, Value: data},
	})
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

// Load reads the shared model. Missing metadata yields zero metadata.
func (s *KVStore) Load(ctx context.Context) ([]byte, domart.Metadata, error) {
	model, err := s.store.Get(ctx, artifactKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domart.Metadata{}, fmt.Errorf("%s: %w", artifactKey, domart.ErrNotFound)
		}
		return nil, domart.Metadata{}, fmt.Errorf("get artifact: %w", err)
	}

	var meta domart.Metadata
	data, err := s.store.Get(ctx, metaKey)
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		return model, meta, nil
	case err != nil:
		return nil, domart.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, domart.Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	return model, meta, nil
}
