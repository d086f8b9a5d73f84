package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/config"
	"github.com/kailas-cloud/resumatch/internal/tfidf"
	traininguc "github.com/kailas-cloud/resumatch/internal/usecase/training"
)

var (
	trainCorpus  string
	trainVersion string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a model on the corpus and store it",
	Long: "Train fits a TF-IDF model on every *.txt file of the corpus directory " +
		"(the built-in corpus when the directory is empty) and writes it to the configured model store. " +
		"A running server picks it up on its next retrain or restart.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, _, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return train(ctx, cmd, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringVar(&trainCorpus, "corpus", "", "directory of *.txt training documents (default is model.corpus_dir)")
	trainCmd.Flags().StringVar(&trainVersion, "version", "", "version label of the trained model (default is derived from the training time)")
}

func train(ctx context.Context, cmd *cobra.Command, cfg config.Config, logger *zap.Logger) error {
	corpusDir := cfg.Model.CorpusDir
	if trainCorpus != "" {
		corpusDir = trainCorpus
	}

	ms, err := openModelStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer ms.close()

	svc := traininguc.New(tfidf.New(), ms.store, logger).
		WithCorpusDir(corpusDir).
		WithMinCorpusSize(cfg.Model.MinCorpusSize)

	meta, err := svc.Retrain(ctx, trainVersion)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "trained model %s on %d documents at %s\n",
		meta.Version, meta.NumDocs, meta.CreatedAt.Format(time.RFC3339))
	return nil
}
