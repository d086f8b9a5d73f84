package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/config"
	dbRedis "github.com/kailas-cloud/resumatch/internal/db/redis"
	artifactrepo "github.com/kailas-cloud/resumatch/internal/repository/artifact"
	healthuc "github.com/kailas-cloud/resumatch/internal/usecase/health"
	traininguc "github.com/kailas-cloud/resumatch/internal/usecase/training"
)

// modelStore is the configured artifact store with its optional database handle.
type modelStore struct {
	store  traininguc.ArtifactStore
	bolt   *artifactrepo.BoltStore // set for the bolt driver only
	pinger healthuc.DBPinger       // nil unless the store lives in a database
	close  func()
}

// openModelStore builds the artifact store selected by model.store.
func openModelStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (*modelStore, error) {
	switch cfg.Model.Store {
	case config.StoreFile:
		return &modelStore{
			store: artifactrepo.NewFileStore(cfg.Model.ArtifactPath, cfg.Model.MetadataPath),
			close: func() {},
		}, nil

	case config.StoreBolt:
		bs, err := artifactrepo.NewBoltStore(cfg.Model.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		return &modelStore{
			store: bs,
			bolt:  bs,
			close: func() {
				if err := bs.Close(); err != nil {
					logger.Warn("Failed to close bolt store", zap.Error(err))
				}
			},
		}, nil

	case config.StoreRedis, config.StoreValkey:
		// rueidis speaks to both servers
		db, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Model.Store, err)
		}
		timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := db.WaitForReady(ctx, timeout); err != nil {
			db.Close()
			return nil, fmt.Errorf("database not ready: %w", err)
		}
		logger.Info("Database is ready", zap.String("driver", cfg.Model.Store))
		return &modelStore{
			store:  artifactrepo.NewKVStore(db),
			pinger: db,
			close:  db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown model store %q", cfg.Model.Store)
	}
}
