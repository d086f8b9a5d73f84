package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/config"
	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
	"github.com/kailas-cloud/resumatch/internal/metrics"
	"github.com/kailas-cloud/resumatch/internal/nlp"
	"github.com/kailas-cloud/resumatch/internal/tfidf"
	chiTransport "github.com/kailas-cloud/resumatch/internal/transport/chi"
	batchuc "github.com/kailas-cloud/resumatch/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/resumatch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/resumatch/internal/usecase/match"
	rankinguc "github.com/kailas-cloud/resumatch/internal/usecase/ranking"
	traininguc "github.com/kailas-cloud/resumatch/internal/usecase/training"
	"github.com/kailas-cloud/resumatch/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, env, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("Starting resumatch API",
			zap.String("version", version.Version),
			zap.String("commit", version.Commit),
			zap.String("env", env),
			zap.Int("http_port", cfg.HTTP.Port),
			zap.String("model_store", cfg.Model.Store),
		)
		return serve(ctx, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	ms, err := openModelStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer ms.close()

	metrics.RegisterMatchingMetrics()

	// единственный экземпляр модели, его подменяет retrain
	model := tfidf.New()
	norm := nlp.Default()

	trainingSvc := traininguc.New(model, ms.store, logger).
		WithCorpusDir(cfg.Model.CorpusDir).
		WithMinCorpusSize(cfg.Model.MinCorpusSize).
		WithNormalizer(norm)

	if _, err := trainingSvc.LoadLatest(ctx); err != nil {
		if !errors.Is(err, domart.ErrNotFound) {
			return fmt.Errorf("load model: %w", err)
		}
		logger.Warn("No trained model found, matching is unavailable until POST /api/admin/retrain")
	}

	matchSvc := matchuc.New(model, norm)
	batchSvc := batchuc.New(matchSvc, logger).
		WithWorkers(cfg.Batch.Workers).
		WithMaxBatchSize(cfg.Batch.MaxSize)
	rankingSvc := rankinguc.New(model, norm, logger).
		WithPreviewLength(cfg.Batch.PreviewLength)
	healthSvc := healthuc.New(trainingSvc, ms.pinger)

	server := chiTransport.NewServer(matchSvc, batchSvc, rankingSvc, trainingSvc, healthSvc, logger)
	if cfg.Auth.AdminToken == "" {
		logger.Warn("auth.admin_token is empty, admin endpoints are disabled")
	}
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:    cfg.Auth.APIKeys,
		AdminToken: cfg.Auth.AdminToken,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
