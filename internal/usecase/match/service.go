package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/resumatch/internal/domain"
	dommatch "github.com/kailas-cloud/resumatch/internal/domain/match"
	"github.com/kailas-cloud/resumatch/internal/domain/vector"
	"github.com/kailas-cloud/resumatch/internal/metrics"
	"github.com/kailas-cloud/resumatch/internal/nlp"
)

// Service scores one resume against one job description.
type Service struct {
	model Transformer
	norm  Normalizer
}

// New creates a match service. A nil normalizer uses the default pipeline.
func New(model Transformer, norm Normalizer) *Service {
	if norm == nil {
		norm = nlp.Default()
	}
	return &Service{model: model, norm: norm}
}

// Match normalizes both texts, vectorizes them with the served model and scores the pair.
func (s *Service) Match(ctx context.Context, resume, job string) (dommatch.Result, error) {
	if err := ctx.Err(); err != nil {
		return dommatch.Result{}, fmt.Errorf("match: %w", err)
	}
	r := s.Pair(0, resume, job)
	if !r.Success() {
		return r, r.Err()
	}
	return r, nil
}

// Pair scores the pair at index and reports any failure in the result instead of an error.
func (s *Service) Pair(index int, resume, job string) dommatch.Result {
	r := s.pair(index, resume, job)
	switch {
	case r.Success():
		metrics.PairsTotal.WithLabelValues(metrics.PairOK).Inc()
		metrics.MatchScore.Observe(r.Score())
	case errors.Is(r.Err(), domain.ErrEmptyContent):
		metrics.PairsTotal.WithLabelValues(metrics.PairEmpty).Inc()
	default:
		metrics.PairsTotal.WithLabelValues(metrics.PairError).Inc()
	}
	return r
}

func (s *Service) pair(index int, resume, job string) dommatch.Result {
	nr := s.norm.Normalize(resume)
	if nr == "" {
		return dommatch.NewError(index, fmt.Errorf("resume: %w", domain.ErrEmptyContent))
	}
	nj := s.norm.Normalize(job)
	if nj == "" {
		return dommatch.NewError(index, fmt.Errorf("job description: %w", domain.ErrEmptyContent))
	}

	vecs, err := s.model.Transform([]string{nr, nj})
	if err != nil {
		return dommatch.NewError(index, fmt.Errorf("transform: %w", err))
	}
	if len(vecs) != 2 {
		return dommatch.NewError(index, fmt.Errorf("transform returned %d vectors: %w", len(vecs), domain.ErrShapeMismatch))
	}

	score, err := vector.Score(vecs[0], vecs[1])
	if err != nil {
		return dommatch.NewError(index, err)
	}
	return dommatch.NewOK(index, score, nlp.Tokens(nr), nlp.Tokens(nj))
}
