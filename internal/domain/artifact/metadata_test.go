package artifact

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

func TestNewVersion(t *testing.T) {
	ts := time.Date(2026, 3, 7, 9, 5, 1, 0, time.UTC)
	if got := NewVersion(ts); got != "v20260307090501" {
		t.Errorf("unexpected version %q", got)
	}
}

func TestNewMetadata(t *testing.T) {
	ts := time.Date(2026, 3, 7, 9, 5, 1, 0, time.FixedZone("X", 3600))

	m := NewMetadata("", ts, 5)
	if m.Version != "v20260307080501" {
		t.Errorf("expected UTC-derived version, got %q", m.Version)
	}
	if m.NumDocs != 5 || m.CreatedAt.Location() != time.UTC {
		t.Errorf("unexpected metadata %+v", m)
	}

	if got := NewMetadata("custom", ts, 5).Version; got != "custom" {
		t.Errorf("expected caller version, got %q", got)
	}
}

func TestMetadata_JSON(t *testing.T) {
	m := NewMetadata("v1", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), 3)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"version":"v1"`, `"created_at":"2026-01-02T03:04:05Z"`, `"num_docs":3`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}

func TestMetadata_Validate(t *testing.T) {
	if err := (Metadata{Version: "v1", NumDocs: 2}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Metadata{}).Validate(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err := (Metadata{Version: "v1", NumDocs: -1}).Validate(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
