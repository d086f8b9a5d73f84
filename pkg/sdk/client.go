package resumatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
	dommatch "github.com/kailas-cloud/resumatch/internal/domain/match"
	"github.com/kailas-cloud/resumatch/internal/nlp"
	artifactrepo "github.com/kailas-cloud/resumatch/internal/repository/artifact"
	"github.com/kailas-cloud/resumatch/internal/tfidf"
	batchuc "github.com/kailas-cloud/resumatch/internal/usecase/batch"
	matchuc "github.com/kailas-cloud/resumatch/internal/usecase/match"
	rankinguc "github.com/kailas-cloud/resumatch/internal/usecase/ranking"
	traininguc "github.com/kailas-cloud/resumatch/internal/usecase/training"
)

// Внутренние интерфейсы для подмены в тестах.
type matchUseCase interface {
	Match(ctx context.Context, resume, job string) (dommatch.Result, error)
}

type batchUseCase interface {
	Process(ctx context.Context, resumes, jobs []string) ([]dommatch.Result, error)
}

type rankingUseCase interface {
	MatchToJobs(ctx context.Context, resume string, jobs []string, topK int) ([]dommatch.Ranked, error)
}

type trainingUseCase interface {
	Retrain(ctx context.Context, label string) (domart.Metadata, error)
	Metadata() (domart.Metadata, bool)
}

// Client is the resumatch SDK entry point.
type Client struct {
	model       *tfidf.Model
	matchSvc    matchUseCase
	batchSvc    batchUseCase
	rankingSvc  rankingUseCase
	trainingSvc trainingUseCase
	obs         *observer
}

// New creates a Client with a ready model. It loads the model file configured with
// WithModelFile, or trains a model when there is none yet. The provided context bounds
// the initial load or training.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	model := tfidf.New()
	norm := nlp.Default()

	var store traininguc.ArtifactStore = artifactrepo.NewMemoryStore()
	if cfg.artifactPath != "" {
		store = artifactrepo.NewFileStore(cfg.artifactPath, cfg.metadataPath)
	}

	trainingSvc := traininguc.New(model, store, nil).
		WithCorpusDir(cfg.corpusDir).
		WithMinCorpusSize(cfg.minCorpusSize).
		WithNormalizer(norm)
	if len(cfg.corpus) > 0 {
		trainingSvc = trainingSvc.WithCorpus(cfg.corpus)
	}

	start := time.Now()
	meta, err := trainingSvc.LoadLatest(ctx)
	switch {
	case err == nil:
		obs.observe("model.load", start, nil, "version", meta.Version)
	case errors.Is(err, domart.ErrNotFound):
		meta, err = trainingSvc.Retrain(ctx, "")
		obs.observe("model.train", start, err, "version", meta.Version)
		if err != nil {
			return nil, fmt.Errorf("resumatch: train model: %w", err)
		}
	default:
		obs.observe("model.load", start, err)
		return nil, fmt.Errorf("resumatch: load model: %w", err)
	}

	matchSvc := matchuc.New(model, norm)
	batchSvc := batchuc.New(matchSvc, nil)
	if cfg.workers > 0 {
		batchSvc = batchSvc.WithWorkers(cfg.workers)
	}
	if cfg.maxBatchSize > 0 {
		batchSvc = batchSvc.WithMaxBatchSize(cfg.maxBatchSize)
	}
	rankingSvc := rankinguc.New(model, norm, nil)
	if cfg.previewLength > 0 {
		rankingSvc = rankingSvc.WithPreviewLength(cfg.previewLength)
	}

	return &Client{
		model:       model,
		matchSvc:    matchSvc,
		batchSvc:    batchSvc,
		rankingSvc:  rankingSvc,
		trainingSvc: trainingSvc,
		obs:         obs,
	}, nil
}

// Match scores one resume against one job description.
func (c *Client) Match(ctx context.Context, resume, job string) (_ MatchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match", start, err) }()

	r, err := c.matchSvc.Match(ctx, resume, job)
	if err != nil {
		return MatchResult{}, fmt.Errorf("match: %w", err)
	}
	return MatchResult{
		Score:        r.Score(),
		ResumeTokens: r.ResumeTokens(),
		JobTokens:    r.JobTokens(),
	}, nil
}

// MatchBatch scores resumes[i] against jobs[i] for every i. Results are in input order;
// a pair that fails is reported in its result and does not fail the batch.
func (c *Client) MatchBatch(ctx context.Context, resumes, jobs []string) (_ []BatchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match.batch", start, err, "pairs", len(resumes)) }()

	results, err := c.batchSvc.Process(ctx, resumes, jobs)
	if err != nil {
		return nil, fmt.Errorf("match batch: %w", err)
	}
	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{
			Index:        r.Index(),
			OK:           r.Success(),
			Score:        r.Score(),
			ResumeTokens: r.ResumeTokens(),
			JobTokens:    r.JobTokens(),
			Err:          r.Err(),
		}
	}
	return out, nil
}

// MatchToJobs ranks jobs against one resume, best first. topK <= 0 returns every scored job.
// Jobs that are empty after normalization are left out.
func (c *Client) MatchToJobs(ctx context.Context, resume string, jobs []string, topK int) (_ []RankedJob, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match.jobs", start, err, "jobs", len(jobs)) }()

	ranked, err := c.rankingSvc.MatchToJobs(ctx, resume, jobs, topK)
	if err != nil {
		return nil, fmt.Errorf("match to jobs: %w", err)
	}
	out := make([]RankedJob, len(ranked))
	for i, r := range ranked {
		out[i] = RankedJob{JobIndex: r.JobIndex, Score: r.Score, Preview: r.Preview}
	}
	return out, nil
}

// Retrain fits a new model on the configured corpus, stores it and serves it.
// Concurrent matches keep using the previous model until the swap.
func (c *Client) Retrain(ctx context.Context, version string) (_ ModelInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("model.train", start, err) }()

	meta, err := c.trainingSvc.Retrain(ctx, version)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("retrain: %w", err)
	}
	return c.info(meta), nil
}

// Model describes the served model.
func (c *Client) Model() (ModelInfo, bool) {
	meta, ok := c.trainingSvc.Metadata()
	if !ok {
		return ModelInfo{}, false
	}
	return c.info(meta), true
}

func (c *Client) info(meta domart.Metadata) ModelInfo {
	info := ModelInfo{
		Version:   meta.Version,
		CreatedAt: meta.CreatedAt,
		NumDocs:   meta.NumDocs,
	}
	if c.model != nil {
		info.VocabularySize = c.model.VocabularySize()
	}
	return info
}
