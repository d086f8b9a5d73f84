package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
)

var (
	bucketArtifacts = []byte("models")
	bucketMetadata  = []byte("metadata")
	bucketRefs      = []byte("refs")
	refLatest       = []byte("latest")
)

// BoltStore keeps every trained version in a bbolt database plus a pointer to the served one.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketArtifacts, bucketMetadata, bucketRefs} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Save stores a new version and makes it the latest in one transaction.
// Versions are immutable: saving an existing version fails with domain.ErrInvalidInput.
func (s *BoltStore) Save(ctx context.Context, model []byte, meta domart.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	key := []byte(meta.Version)
	err = s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketMetadata).Get(key) != nil {
			return fmt.Errorf("version already exists: %w", domain.ErrInvalidInput)
		}
		if err := tx.Bucket(bucketArtifacts).Put(key, model); err != nil {
			return err
		}
		if err := tx.Bucket(bucketMetadata).Put(key, data); err != nil {
			return err
		}
		return tx.Bucket(bucketRefs).Put(refLatest, key)
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", meta.Version, err)
	}
	return nil
}

// Load returns the latest version.
func (s *BoltStore) Load(ctx context.Context) ([]byte, domart.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, domart.Metadata{}, err
	}

	var (
		model []byte
		meta  domart.Metadata
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		version := tx.Bucket(bucketRefs).Get(refLatest)
		if version == nil {
			return domart.ErrNotFound
		}
		var err error
		model, meta, err = get(tx, version)
		return err
	})
	if err != nil {
		return nil, domart.Metadata{}, err
	}
	return model, meta, nil
}

// Versions lists the metadata of every stored version, oldest first.
func (s *BoltStore) Versions(ctx context.Context) ([]domart.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []domart.Metadata
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMetadata).ForEach(func(k, v []byte) error {
			var m domart.Metadata
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("decode metadata %s: %w", k, err)
			}
			out = append(out, m)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Activate points latest at an already stored version.
func (s *BoltStore) Activate(ctx context.Context, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := []byte(version)
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketArtifacts).Get(key) == nil {
			return fmt.Errorf("version %s: %w", version, domart.ErrNotFound)
		}
		return tx.Bucket(bucketRefs).Put(refLatest, key)
	})
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// get copies a version out of tx; bbolt memory is only valid inside the transaction.
func get(tx *bbolt.Tx, version []byte) ([]byte, domart.Metadata, error) {
	raw := tx.Bucket(bucketArtifacts).Get(version)
	if raw == nil {
		return nil, domart.Metadata{}, fmt.Errorf("version %s: %w", version, domart.ErrNotFound)
	}
	model := append([]byte(nil), raw...)

	var meta domart.Metadata
	if data := tx.Bucket(bucketMetadata).Get(version); data != nil {
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, domart.Metadata{}, fmt.Errorf("decode metadata %s: %w", version, err)
		}
	}
	return model, meta, nil
}
