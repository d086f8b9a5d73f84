package training

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
	"github.com/kailas-cloud/resumatch/internal/metrics"
	"github.com/kailas-cloud/resumatch/internal/nlp"
	"github.com/kailas-cloud/resumatch/internal/tfidf"
)

const (
	reloadOK    = "ok"
	reloadError = "error"
)

// Service trains, persists and hot-swaps the served model.
type Service struct {
	served    ServedModel
	store     ArtifactStore
	norm      Normalizer
	corpusDir string
	corpus    []string
	minDocs   int
	now       func() time.Time
	logger    *zap.Logger

	mu   sync.Mutex // single writer for Retrain and LoadLatest
	meta atomic.Pointer[domart.Metadata]
}

// New creates a training service.
func New(served ServedModel, store ArtifactStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		served:  served,
		store:   store,
		norm:    nlp.Default(),
		minDocs: domain.DefaultMatchConfig().MinCorpusSize,
		now:     time.Now,
		logger:  logger,
	}
}

// WithCorpusDir configures the directory of *.txt training documents.
func (s *Service) WithCorpusDir(dir string) *Service {
	s.corpusDir = dir
	return s
}

// WithCorpus trains on docs instead of the corpus directory.
func (s *Service) WithCorpus(docs []string) *Service {
	s.corpus = append([]string(nil), docs...)
	return s
}

// WithMinCorpusSize configures the minimum number of training documents.
func (s *Service) WithMinCorpusSize(n int) *Service {
	if n > 0 {
		s.minDocs = n
	}
	return s
}

// WithNormalizer replaces the default normalizer.
func (s *Service) WithNormalizer(n Normalizer) *Service {
	if n != nil {
		s.norm = n
	}
	return s
}

// WithClock replaces time.Now for version labels.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Retrain fits a new model on the corpus, persists it and swaps it into service.
// An empty label is derived from the training time. The served model is untouched on failure.
func (s *Service) Retrain(ctx context.Context, label string) (domart.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.retrain(ctx, label)
	if err != nil {
		metrics.ModelReloadsTotal.WithLabelValues(reloadError).Inc()
		s.logger.Error("Model retrain failed", zap.Error(err))
		return domart.Metadata{}, err
	}
	metrics.ModelReloadsTotal.WithLabelValues(reloadOK).Inc()
	metrics.ModelVocabularySize.Set(float64(s.served.VocabularySize()))
	s.logger.Info("Model retrained",
		zap.String("version", meta.Version),
		zap.Int("num_docs", meta.NumDocs),
		zap.Int("vocabulary", s.served.VocabularySize()),
	)
	return meta, nil
}

func (s *Service) retrain(ctx context.Context, label string) (domart.Metadata, error) {
	corpus, fallback := s.corpus, false
	if len(corpus) == 0 {
		corpus, fallback = LoadCorpus(s.corpusDir)
	}
	if fallback {
		s.logger.Info("Corpus directory empty, using default corpus", zap.String("dir", s.corpusDir))
	}
	if len(corpus) < s.minDocs {
		return domart.Metadata{}, fmt.Errorf(
			"need at least %d documents to train, got %d: %w", s.minDocs, len(corpus), domain.ErrInvalidInput)
	}

	normalized := make([]string, len(corpus))
	for i, doc := range corpus {
		normalized[i] = s.norm.Normalize(doc)
	}

	m := tfidf.New()
	if _, err := m.Fit(normalized); err != nil {
		return domart.Metadata{}, fmt.Errorf("fit: %w", err)
	}
	data, err := m.MarshalBinary()
	if err != nil {
		return domart.Metadata{}, fmt.Errorf("encode model: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return domart.Metadata{}, fmt.Errorf("retrain: %w", err)
	}
	meta := domart.NewMetadata(label, s.now(), len(corpus))
	if err := s.store.Save(ctx, data, meta); err != nil {
		return domart.Metadata{}, fmt.Errorf("persist model: %w", err)
	}
	if err := s.served.Replace(m); err != nil {
		return domart.Metadata{}, fmt.Errorf("swap model: %w", err)
	}
	s.meta.Store(&meta)
	return meta, nil
}

// LoadLatest loads the stored model into service. It returns domart.ErrNotFound when
// nothing has been trained yet, leaving the served model as it was.
func (s *Service) LoadLatest(ctx context.Context) (domart.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, meta, err := s.store.Load(ctx)
	if err != nil {
		return domart.Metadata{}, fmt.Errorf("load model: %w", err)
	}
	m := tfidf.New()
	if err := m.UnmarshalBinary(data); err != nil {
		metrics.ModelReloadsTotal.WithLabelValues(reloadError).Inc()
		return domart.Metadata{}, fmt.Errorf("decode model: %w", err)
	}
	if err := s.served.Replace(m); err != nil {
		return domart.Metadata{}, fmt.Errorf("swap model: %w", err)
	}
	s.meta.Store(&meta)

	metrics.ModelReloadsTotal.WithLabelValues(reloadOK).Inc()
	metrics.ModelVocabularySize.Set(float64(s.served.VocabularySize()))
	s.logger.Info("Model loaded",
		zap.String("version", meta.Version),
		zap.Int("vocabulary", s.served.VocabularySize()),
	)
	return meta, nil
}

// Metadata returns the metadata of the served model and whether a model is served.
func (s *Service) Metadata() (domart.Metadata, bool) {
	if m := s.meta.Load(); m != nil && s.served.Fitted() {
		return *m, true
	}
	return domart.Metadata{}, s.served.Fitted()
}
