package resumatch

import "time"

// MatchResult is the score of one resume against one job description.
type MatchResult struct {
	Score        float64 // cosine similarity in [0, 1], rounded to 3 decimals
	ResumeTokens int
	JobTokens    int
}

// BatchResult is the outcome of one pair of a batch. Err is set when OK is false.
type BatchResult struct {
	Index        int
	OK           bool
	Score        float64
	ResumeTokens int
	JobTokens    int
	Err          error
}

// RankedJob is one job of a MatchToJobs ranking.
type RankedJob struct {
	JobIndex int
	Score    float64
	Preview  string
}

// ModelInfo describes the served model.
type ModelInfo struct {
	Version        string
	CreatedAt      time.Time
	NumDocs        int
	VocabularySize int
}
