package resumatch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	artifactPath string
	metadataPath string

	corpusDir     string
	corpus        []string
	minCorpusSize int

	workers       int
	maxBatchSize  int
	previewLength int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithModelFile loads the model from artifactPath (and its metadata sidecar).
// When the file does not exist yet, the client trains a model and writes it there.
// Without this option the model lives in memory only.
func WithModelFile(artifactPath, metadataPath string) Option {
	return optionFunc(func(c *clientConfig) {
		c.artifactPath = artifactPath
		c.metadataPath = metadataPath
	})
}

// WithCorpusDir trains on the *.txt files of dir instead of the built-in corpus.
func WithCorpusDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpusDir = dir
	})
}

// WithCorpus trains on the given documents instead of the built-in corpus.
// Takes precedence over WithCorpusDir.
func WithCorpus(docs []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpus = append([]string(nil), docs...)
	})
}

// WithMinCorpusSize sets the smallest corpus a model may be trained on. Default: 2.
func WithMinCorpusSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minCorpusSize = n
	})
}

// WithWorkers sets the number of pairs scored concurrently by MatchBatch. Default: 4.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithMaxBatchSize sets the maximum number of pairs per MatchBatch call.
// Default: 100.
func WithMaxBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = size
	})
}

// WithPreviewLength sets how many characters of a job MatchToJobs returns as preview.
// Default: 100.
func WithPreviewLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.previewLength = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
