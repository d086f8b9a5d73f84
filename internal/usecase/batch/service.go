package batch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/resumatch/internal/domain"
	dommatch "github.com/kailas-cloud/resumatch/internal/domain/match"
	"github.com/kailas-cloud/resumatch/internal/metrics"
)

// Service scores index-aligned resume/job pairs with per-pair error reporting.
type Service struct {
	pairs        PairMatcher
	workers      int
	maxBatchSize int
	logger       *zap.Logger
}

// New creates a batch service with the default pool and batch limits.
func New(pairs PairMatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := domain.DefaultMatchConfig()
	return &Service{
		pairs:        pairs,
		workers:      defaults.Workers,
		maxBatchSize: defaults.MaxBatchSize,
		logger:       logger,
	}
}

// WithWorkers configures the worker pool size.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Process scores resumes[i] against jobs[i] for every i. The result at position i always
// belongs to pair i, whatever the worker count. Per-pair failures never fail the call;
// after ctx is cancelled the pairs not yet scheduled are reported as failed.
func (s *Service) Process(ctx context.Context, resumes, jobs []string) ([]dommatch.Result, error) {
	if len(resumes) != len(jobs) {
		return nil, domain.NewLengthMismatch(len(resumes), len(jobs))
	}
	if len(resumes) > s.maxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds %d: %w", len(resumes), s.maxBatchSize, domain.ErrInvalidInput)
	}

	start := time.Now()
	results := make([]dommatch.Result, len(resumes))

	// plain Group: a failed pair must not cancel its siblings
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range resumes {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(resumes); j++ {
				results[j] = dommatch.NewError(j, fmt.Errorf("not scheduled: %w", err))
			}
			break
		}
		g.Go(func() error {
			results[i] = s.safePair(i, resumes[i], jobs[i])
			return nil
		})
	}
	_ = g.Wait()

	elapsed := time.Since(start)
	metrics.BatchDuration.Observe(elapsed.Seconds())

	ok, failed := dommatch.Summary(results)
	s.logger.Info("Processed pairs",
		zap.Int("pairs", len(results)),
		zap.Int("successful", ok),
		zap.Int("failed", failed),
		zap.Int("workers", s.workers),
		zap.Duration("elapsed", elapsed),
	)
	return results, nil
}

func (s *Service) safePair(index int, resume, job string) (r dommatch.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("Pair panicked", zap.Int("index", index), zap.Any("panic", rec))
			r = dommatch.NewError(index, fmt.Errorf("pair %d panicked: %v", index, rec))
		}
	}()
	return s.pairs.Pair(index, resume, job)
}
