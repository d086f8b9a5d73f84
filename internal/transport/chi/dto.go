package chi

// ErrorCode is a machine-readable error code of an error response.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeEmptyContent     ErrorCode = "empty_content"
	CodeLengthMismatch   ErrorCode = "length_mismatch"
	CodeInvalidInput     ErrorCode = "invalid_input"
	CodeModelNotReady    ErrorCode = "model_not_ready"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeForbidden        ErrorCode = "forbidden"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// MatchRequest is the body of POST /api/match.
type MatchRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,min=10"`
	JobDescription string `json:"job_description" validate:"required,min=10"`
}

// MatchResponse is the result of a single match.
type MatchResponse struct {
	MatchScore            float64 `json:"match_score"`
	ProcessedResumeTokens int     `json:"processed_resume_tokens"`
	ProcessedJobTokens    int     `json:"processed_job_tokens"`
}

// BatchMatchRequest is the body of POST /api/batch/match.
type BatchMatchRequest struct {
	Resumes         []string `json:"resumes" validate:"required,min=1"`
	JobDescriptions []string `json:"job_descriptions" validate:"required,min=1"`
}

// BatchResultItem is the outcome of one pair of a batch.
type BatchResultItem struct {
	Index        int     `json:"index"`
	Success      bool    `json:"success"`
	MatchScore   float64 `json:"match_score"`
	ResumeTokens *int    `json:"resume_tokens,omitempty"`
	JobTokens    *int    `json:"job_tokens,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// BatchMatchResponse is the result of a batch match.
type BatchMatchResponse struct {
	BatchID               string            `json:"batch_id"`
	TotalProcessed        int               `json:"total_processed"`
	Successful            int               `json:"successful"`
	Failed                int               `json:"failed"`
	Results               []BatchResultItem `json:"results"`
	ProcessingTimeSeconds float64           `json:"processing_time_seconds"`
}

// MultiJobMatchRequest is the body of POST /api/match/multiple.
type MultiJobMatchRequest struct {
	ResumeText      string   `json:"resume_text" validate:"required,min=10"`
	JobDescriptions []string `json:"job_descriptions" validate:"required,min=1"`
	TopK            *int     `json:"top_k,omitempty" validate:"omitempty,min=1"`
}

// RankedMatch is one ranked job.
type RankedMatch struct {
	JobIndex   int     `json:"job_index"`
	MatchScore float64 `json:"match_score"`
	JobPreview string  `json:"job_preview"`
}

// MultiJobMatchResponse lists ranked jobs, best first.
type MultiJobMatchResponse struct {
	TotalJobs int           `json:"total_jobs"`
	Matches   []RankedMatch `json:"matches"`
}

// RetrainResponse reports a completed retrain.
type RetrainResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	NumDocs   int    `json:"num_docs"`
	TrainedAt string `json:"trained_at"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status       string            `json:"status"`
	ModelLoaded  bool              `json:"model_loaded"`
	ModelVersion *string           `json:"model_version"`
	Checks       map[string]string `json:"checks"`
}
