package resumatch

import (
	"context"

	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
	dommatch "github.com/kailas-cloud/resumatch/internal/domain/match"
)

// --- matchUseCase mock ---

type mockMatchUC struct {
	matchFn func(ctx context.Context, resume, job string) (dommatch.Result, error)
}

func (m *mockMatchUC) Match(ctx context.Context, resume, job string) (dommatch.Result, error) {
	return m.matchFn(ctx, resume, job)
}

// --- batchUseCase mock ---

type mockBatchUC struct {
	processFn func(ctx context.Context, resumes, jobs []string) ([]dommatch.Result, error)
}

func (m *mockBatchUC) Process(ctx context.Context, resumes, jobs []string) ([]dommatch.Result, error) {
	return m.processFn(ctx, resumes, jobs)
}

// --- rankingUseCase mock ---

type mockRankingUC struct {
	matchToJobsFn func(ctx context.Context, resume string, jobs []string, topK int) ([]dommatch.Ranked, error)
}

func (m *mockRankingUC) MatchToJobs(
	ctx context.Context, resume string, jobs []string, topK int,
) ([]dommatch.Ranked, error) {
	return m.matchToJobsFn(ctx, resume, jobs, topK)
}

// --- trainingUseCase mock ---

type mockTrainingUC struct {
	retrainFn func(ctx context.Context, label string) (domart.Metadata, error)
	meta      domart.Metadata
	loaded    bool
}

func (m *mockTrainingUC) Retrain(ctx context.Context, label string) (domart.Metadata, error) {
	return m.retrainFn(ctx, label)
}

func (m *mockTrainingUC) Metadata() (domart.Metadata, bool) { return m.meta, m.loaded }
