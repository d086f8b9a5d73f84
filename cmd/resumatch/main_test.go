package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/config"
	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(out.String(), "resumatch ") {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestOpenModelStore_LocalDrivers(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{Model: config.ModelConfig{
		ArtifactPath: filepath.Join(dir, "vectorizer.bin"),
		MetadataPath: filepath.Join(dir, "metadata.json"),
		BoltPath:     filepath.Join(dir, "models.db"),
	}}

	for _, driver := range []string{config.StoreFile, config.StoreBolt} {
		t.Run(driver, func(t *testing.T) {
			cfg.Model.Store = driver
			ms, err := openModelStore(context.Background(), cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("open %s: %v", driver, err)
			}
			defer ms.close()

			if ms.pinger != nil {
				t.Error("local stores must not report a database")
			}
			if (ms.bolt != nil) != (driver == config.StoreBolt) {
				t.Errorf("bolt handle set=%v for %s", ms.bolt != nil, driver)
			}
			if _, _, err := ms.store.Load(context.Background()); !errors.Is(err, domart.ErrNotFound) {
				t.Errorf("empty store: expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestOpenModelStore_Unknown(t *testing.T) {
	cfg := config.Config{Model: config.ModelConfig{Store: "ftp"}}
	if _, err := openModelStore(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
