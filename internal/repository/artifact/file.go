// Package artifact persists trained model artifacts and their metadata.
package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
)

// FileStore keeps the artifact and a sidecar JSON metadata file on local disk.
type FileStore struct {
	artifactPath string
	metaPath     string
}

// NewFileStore creates a file-backed store.
func NewFileStore(artifactPath, metadataPath string) *FileStore {
	return &FileStore{artifactPath: artifactPath, metaPath: metadataPath}
}

// Save stages both files next to their targets and only then moves them into place.
// If the metadata cannot be installed the previous artifact is restored, so the pair on
// disk always describes one version.
func (s *FileStore) Save(ctx context.Context, model []byte, meta domart.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	artTmp, err := stageFile(s.artifactPath, model)
	if err != nil {
		return fmt.Errorf("stage artifact: %w", err)
	}
	defer os.Remove(artTmp) // no-op after a successful rename

	metaTmp, err := stageFile(s.metaPath, data)
	if err != nil {
		return fmt.Errorf("stage metadata: %w", err)
	}
	defer os.Remove(metaTmp)

	prev, err := os.ReadFile(s.artifactPath)
	hadPrev := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read previous artifact: %w", err)
	}

	if err := os.Rename(artTmp, s.artifactPath); err != nil {
		return fmt.Errorf("install artifact: %w", err)
	}
	if err := os.Rename(metaTmp, s.metaPath); err != nil {
		if hadPrev {
			err = errors.Join(err, writeFileAtomic(s.artifactPath, prev))
		} else {
			err = errors.Join(err, os.Remove(s.artifactPath))
		}
		return fmt.Errorf("install metadata: %w", err)
	}
	return nil
}

// Load reads the artifact and its metadata. A missing metadata file yields zero metadata.
func (s *FileStore) Load(ctx context.Context) ([]byte, domart.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, domart.Metadata{}, err
	}
	model, err := os.ReadFile(s.artifactPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domart.Metadata{}, fmt.Errorf("%s: %w", s.artifactPath, domart.ErrNotFound)
		}
		return nil, domart.Metadata{}, fmt.Errorf("read artifact: %w", err)
	}

	var meta domart.Metadata
	data, err := os.ReadFile(s.metaPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return model, meta, nil
	case err != nil:
		return nil, domart.Metadata{}, fmt.Errorf("read metadata: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, domart.Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	return model, meta, nil
}

// writeFileAtomic writes data to a temp file in the target directory and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := stageFile(path, data)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)
	return os.Rename(tmp, path)
}

// stageFile writes and syncs data to a temp file beside path and returns its name.
func stageFile(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
