package ranking

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	dommatch "github.com/kailas-cloud/resumatch/internal/domain/match"
	"github.com/kailas-cloud/resumatch/internal/domain/vector"
	"github.com/kailas-cloud/resumatch/internal/nlp"
)

// Service ranks job descriptions by similarity to one resume.
type Service struct {
	model         Transformer
	norm          Normalizer
	previewLength int
	logger        *zap.Logger
}

// New creates a ranking service. A nil normalizer uses the default pipeline.
func New(model Transformer, norm Normalizer, logger *zap.Logger) *Service {
	if norm == nil {
		norm = nlp.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{model: model, norm: norm, previewLength: domain.DefaultMatchConfig().PreviewLength, logger: logger}
}

// WithPreviewLength configures the preview length.
func (s *Service) WithPreviewLength(n int) *Service {
	if n > 0 {
		s.previewLength = n
	}
	return s
}

// MatchToJobs scores resume against every job and returns the best topK, highest score first.
// Ties keep input order. Jobs that normalize to nothing are skipped, as are jobs that fail
// to score. topK <= 0 returns every scored job.
//
// The resume and all jobs are vectorized in one Transform call so a concurrent model
// swap never mixes two vocabularies within one ranking.
func (s *Service) MatchToJobs(ctx context.Context, resume string, jobs []string, topK int) ([]dommatch.Ranked, error) {
	nr := s.norm.Normalize(resume)
	if nr == "" {
		return nil, fmt.Errorf("resume: %w", domain.ErrEmptyContent)
	}

	texts := make([]string, 1, len(jobs)+1)
	texts[0] = nr
	indices := make([]int, 0, len(jobs))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("rank: %w", err)
		}
		nj := s.norm.Normalize(job)
		if nj == "" {
			continue
		}
		texts = append(texts, nj)
		indices = append(indices, i)
	}

	vecs, err := s.model.Transform(texts)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("transform returned %d vectors for %d texts: %w",
			len(vecs), len(texts), domain.ErrShapeMismatch)
	}

	resumeVec := vecs[0]
	ranked := make([]dommatch.Ranked, 0, len(indices))
	for k, i := range indices {
		score, err := vector.Score(resumeVec, vecs[k+1])
		if err != nil {
			s.logger.Warn("Skipping job", zap.Int("job_index", i), zap.Error(err))
			continue
		}
		ranked = append(ranked, dommatch.NewRanked(i, score, jobs[i], s.previewLength))
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if topK > 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked, nil
}
