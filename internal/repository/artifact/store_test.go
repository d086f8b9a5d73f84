package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/resumatch/internal/db"
	"github.com/kailas-cloud/resumatch/internal/db/redis"
	"github.com/kailas-cloud/resumatch/internal/domain"
	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
)

// store is the contract shared by every driver.
type store interface {
	Save(ctx context.Context, model []byte, meta domart.Metadata) error
	Load(ctx context.Context) ([]byte, domart.Metadata, error)
}

var (
	_ store = (*FileStore)(nil)
	_ store = (*BoltStore)(nil)
	_ store = (*KVStore)(nil)
	_ store = (*MemoryStore)(nil)
)

func testMeta(version string, at time.Time) domart.Metadata {
	return domart.NewMetadata(version, at, 5)
}

func sameMeta(a, b domart.Metadata) bool {
	return a.Version == b.Version && a.NumDocs == b.NumDocs && a.CreatedAt.Equal(b.CreatedAt)
}

// --- memory.go tests ---

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, _, err := s.Load(ctx); !errors.Is(err, domart.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	data := []byte{4, 5, 6}
	meta := testMeta("v1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := s.Save(ctx, data, meta); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data[0] = 9

	model, got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(model, []byte{4, 5, 6}) {
		t.Errorf("stored artifact aliases the caller's slice: %v", model)
	}
	if !sameMeta(got, meta) {
		t.Errorf("metadata mismatch: %+v vs %+v", got, meta)
	}

	if err := s.Save(ctx, data, domart.Metadata{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty version, got %v", err)
	}
}

// --- file.go tests ---

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "models", "model.bin"), filepath.Join(dir, "models", "meta.json"))

	if _, _, err := s.Load(context.Background()); !errors.Is(err, domart.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	meta := testMeta("v1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := s.Save(context.Background(), []byte{1, 2, 3}, meta); err != nil {
		t.Fatalf("Save: %v", err)
	}

	model, got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(model, []byte{1, 2, 3}) {
		t.Errorf("unexpected artifact %v", model)
	}
	if !sameMeta(got, meta) {
		t.Errorf("expected %+v, got %+v", meta, got)
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "models"))
	if len(entries) != 2 {
		t.Errorf("expected only artifact and metadata, got %d entries", len(entries))
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "model.bin"), filepath.Join(dir, "meta.json"))

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Save(context.Background(), []byte("old"), testMeta("v1", now)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), []byte("new"), testMeta("v2", now.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	model, meta, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if string(model) != "new" || meta.Version != "v2" {
		t.Errorf("expected v2, got %s %q", model, meta.Version)
	}
}

func TestFileStore_MissingMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.bin")
	if err := os.WriteFile(path, []byte("blob"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path, filepath.Join(dir, "meta.json"))

	model, meta, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(model) != "blob" || meta.Version != "" {
		t.Errorf("unexpected load %s %+v", model, meta)
	}
}

func TestFileStore_CorruptMetadata(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "model.bin"), filepath.Join(dir, "meta.json"))
	if err := os.WriteFile(filepath.Join(dir, "model.bin"), []byte("blob"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "meta.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFileStore_InvalidMetadata(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "model.bin"), filepath.Join(dir, "meta.json"))
	err := s.Save(context.Background(), []byte("blob"), domart.Metadata{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "model.bin")); !os.IsNotExist(err) {
		t.Error("invalid save must not write the artifact")
	}
}

func TestFileStore_MetadataFailureKeepsPreviousArtifact(t *testing.T) {
	dir := t.TempDir()
	artifactPath := filepath.Join(dir, "model.bin")
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := NewFileStore(artifactPath, filepath.Join(dir, "meta.json")).
		Save(context.Background(), []byte("old"), testMeta("v1", now)); err != nil {
		t.Fatal(err)
	}

	// a directory in place of the sidecar makes the final rename fail
	blocked := filepath.Join(dir, "blocked.json")
	if err := os.Mkdir(blocked, 0o755); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(artifactPath, blocked)
	if err := s.Save(context.Background(), []byte("new"), testMeta("v2", now.Add(time.Hour))); err == nil {
		t.Fatal("expected metadata install error")
	}

	got, err := os.ReadFile(artifactPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "old" {
		t.Errorf("expected previous artifact restored, got %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Errorf("expected artifact, metadata and blocker only, got %d entries", len(entries))
	}
}

func TestFileStore_MetadataFailureWithoutPreviousArtifact(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "meta.json")
	if err := os.Mkdir(blocked, 0o755); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(filepath.Join(dir, "model.bin"), blocked)
	if err := s.Save(context.Background(), []byte("new"), testMeta("v1", time.Now())); err == nil {
		t.Fatal("expected metadata install error")
	}
	if _, _, err := s.Load(context.Background()); !errors.Is(err, domart.ErrNotFound) {
		t.Errorf("expected no artifact left behind, got %v", err)
	}
}

func TestFileStore_StageFailureLeavesArtifact(t *testing.T) {
	dir := t.TempDir()
	artifactPath := filepath.Join(dir, "model.bin")
	if err := os.WriteFile(artifactPath, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	// a regular file as the sidecar's parent directory
	parent := filepath.Join(dir, "file")
	if err := os.WriteFile(parent, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(artifactPath, filepath.Join(parent, "meta.json"))
	if err := s.Save(context.Background(), []byte("new"), testMeta("v1", time.Now())); err == nil {
		t.Fatal("expected stage error")
	}
	if got, _ := os.ReadFile(artifactPath); string(got) != "old" {
		t.Errorf("artifact changed to %q", got)
	}
}

// --- bolt.go tests ---

func newBolt(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "models.db"))
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBoltStore_RoundTrip(t *testing.T) {
	s := newBolt(t)
	ctx := context.Background()

	if _, _, err := s.Load(ctx); !errors.Is(err, domart.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Save(ctx, []byte("first"), testMeta("v1", now)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, []byte("second"), testMeta("v2", now.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}

	model, meta, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(model) != "second" || meta.Version != "v2" {
		t.Errorf("expected latest v2, got %s %q", model, meta.Version)
	}

	versions, err := s.Versions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != 2 || versions[0].Version != "v1" || versions[1].Version != "v2" {
		t.Errorf("unexpected versions %+v", versions)
	}
}

func TestBoltStore_Activate(t *testing.T) {
	s := newBolt(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := s.Save(ctx, []byte("first"), testMeta("v1", now)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, []byte("second"), testMeta("v2", now.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}

	if err := s.Activate(ctx, "v1"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	model, meta, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(model) != "first" || meta.Version != "v1" {
		t.Errorf("expected rolled back v1, got %s %q", model, meta.Version)
	}

	if err := s.Activate(ctx, "v9"); !errors.Is(err, domart.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBoltStore_DuplicateVersion(t *testing.T) {
	s := newBolt(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := s.Save(ctx, []byte("first"), testMeta("release-1", now)); err != nil {
		t.Fatal(err)
	}
	err := s.Save(ctx, []byte("second"), testMeta("release-1", now.Add(time.Hour)))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	model, meta, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(model) != "first" || !meta.CreatedAt.Equal(now) {
		t.Errorf("stored version was overwritten: %s %v", model, meta.CreatedAt)
	}
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.db")
	s, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), []byte("blob"), testMeta("v1", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	model, _, err := s.Load(context.Background())
	if err != nil || string(model) != "blob" {
		t.Fatalf("expected persisted blob, got %s, %v", model, err)
	}
}

func TestBoltStore_CancelledContext(t *testing.T) {
	s := newBolt(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, []byte("blob"), testMeta("v1", time.Now())); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// --- kv.go tests ---

func TestKVStore_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	meta := testMeta("v1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	metaJSON, _ := json.Marshal(meta)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("MSET", artifactKey, "blob", metaKey, string(metaJSON))).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewKVStore(redis.NewStoreForTest(c))
	if err := s.Save(context.Background(), []byte("blob"), meta); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestKVStore_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	meta := testMeta("v1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	metaJSON, _ := json.Marshal(meta)

	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("GET", artifactKey)).
			Return(mock.Result(mock.RedisBlobString("blob"))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("GET", metaKey)).
			Return(mock.Result(mock.RedisBlobString(string(metaJSON)))),
	)

	s := NewKVStore(redis.NewStoreForTest(c))
	model, got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(model) != "blob" || !sameMeta(got, meta) {
		t.Errorf("unexpected load %s %+v", model, got)
	}
}

func TestKVStore_LoadNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", artifactKey)).
		Return(mock.Result(mock.RedisNil()))

	s := NewKVStore(redis.NewStoreForTest(c))
	if _, _, err := s.Load(context.Background()); !errors.Is(err, domart.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// mockKV implements the consumer interface for error paths.
type mockKV struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKV) SetMulti(_ context.Context, items []db.KVItem) error {
	if m.setErr != nil {
		return m.setErr
	}
	for _, it := range items {
		m.data[it.Key] = it.Value
	}
	return nil
}

func TestKVStore_MockRoundTripAndErrors(t *testing.T) {
	kv := &mockKV{data: map[string][]byte{}}
	s := NewKVStore(kv)
	meta := testMeta("v3", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	if err := s.Save(context.Background(), []byte("blob"), meta); err != nil {
		t.Fatal(err)
	}
	model, got, err := s.Load(context.Background())
	if err != nil || string(model) != "blob" || !sameMeta(got, meta) {
		t.Fatalf("unexpected load %s %+v %v", model, got, err)
	}

	delete(kv.data, metaKey)
	if _, got, err := s.Load(context.Background()); err != nil || got.Version != "" {
		t.Errorf("missing metadata must yield zero metadata, got %+v %v", got, err)
	}

	boom := &db.Error{Op: db.OpGet, Err: context.DeadlineExceeded}
	kv.getErr = boom
	if _, _, err := s.Load(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped store error, got %v", err)
	}

	kv.setErr = boom
	if err := s.Save(context.Background(), []byte("blob"), meta); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
