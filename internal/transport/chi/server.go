package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	dommatch "github.com/kailas-cloud/resumatch/internal/domain/match"
	logpkg "github.com/kailas-cloud/resumatch/internal/logger"
	batchuc "github.com/kailas-cloud/resumatch/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/resumatch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/resumatch/internal/usecase/match"
	rankinguc "github.com/kailas-cloud/resumatch/internal/usecase/ranking"
	traininguc "github.com/kailas-cloud/resumatch/internal/usecase/training"
)

// maxBodyBytes caps request bodies; a full batch of long resumes fits comfortably.
const maxBodyBytes = 8 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the matching HTTP API.
type Server struct {
	match         *matchuc.Service
	batch         *batchuc.Service
	ranking       *rankinguc.Service
	training      *traininguc.Service
	health        *healthuc.Service
	validate      *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	match *matchuc.Service,
	batch *batchuc.Service,
	ranking *rankinguc.Service,
	training *traininguc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		match:    match,
		batch:    batch,
		ranking:  ranking,
		training: training,
		health:   health,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrModelNotReady, http.StatusServiceUnavailable, CodeModelNotReady,
			"model not loaded, train it with POST /api/admin/retrain"),
		detailHandler(domain.ErrLengthMismatch, http.StatusBadRequest, CodeLengthMismatch),
		detailHandler(domain.ErrEmptyContent, http.StatusBadRequest, CodeEmptyContent),
		detailHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput),
	}
	return s
}

// HealthCheck handles GET /api/health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	resp := HealthResponse{
		Status:      string(report.Status),
		ModelLoaded: report.ModelLoaded,
		Checks:      checks,
	}
	if report.ModelVersion != "" {
		v := report.ModelVersion
		resp.ModelVersion = &v
	}

	// a missing model degrades but keeps the instance up so it can be retrained
	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, resp)
}

// Match handles POST /api/match.
func (s *Server) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.match.Match(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MatchResponse{
		MatchScore:            res.Score(),
		ProcessedResumeTokens: res.ResumeTokens(),
		ProcessedJobTokens:    res.JobTokens(),
	})
}

// BatchMatch handles POST /api/batch/match.
func (s *Server) BatchMatch(w http.ResponseWriter, r *http.Request) {
	var req BatchMatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	results, err := s.batch.Process(r.Context(), req.Resumes, req.JobDescriptions)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	elapsed := time.Since(start)

	items := make([]BatchResultItem, len(results))
	for i, res := range results {
		items[i] = batchResultToDTO(res)
	}
	successful, failed := dommatch.Summary(results)

	writeJSON(w, http.StatusOK, BatchMatchResponse{
		BatchID:               uuid.NewString(),
		TotalProcessed:        len(results),
		Successful:            successful,
		Failed:                failed,
		Results:               items,
		ProcessingTimeSeconds: math.Round(elapsed.Seconds()*1000) / 1000,
	})
}

// MatchMultiple handles POST /api/match/multiple.
func (s *Server) MatchMultiple(w http.ResponseWriter, r *http.Request) {
	var req MultiJobMatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	topK := 0
	if req.TopK != nil {
		topK = *req.TopK
	}

	ranked, err := s.ranking.MatchToJobs(r.Context(), req.ResumeText, req.JobDescriptions, topK)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	matches := make([]RankedMatch, len(ranked))
	for i, m := range ranked {
		matches[i] = RankedMatch{JobIndex: m.JobIndex, MatchScore: m.Score, JobPreview: m.Preview}
	}
	writeJSON(w, http.StatusOK, MultiJobMatchResponse{
		TotalJobs: len(req.JobDescriptions),
		Matches:   matches,
	})
}

// Retrain handles POST /api/admin/retrain.
func (s *Server) Retrain(w http.ResponseWriter, r *http.Request) {
	meta, err := s.training.Retrain(r.Context(), r.URL.Query().Get("version"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RetrainResponse{
		Status:    "success",
		Message:   "Model retrained and reloaded successfully",
		Version:   meta.Version,
		NumDocs:   meta.NumDocs,
		TrainedAt: meta.CreatedAt.Format(time.RFC3339),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads and validates a JSON body. It writes the error response and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, CodeValidationFailed, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("field %s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("field %s failed %s", fe.Field(), fe.Tag())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that answers a sentinel with a fixed message.
func sentinelHandler(sentinel error, status int, code ErrorCode, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, message)
		return true
	}
}

// detailHandler returns an errorHandler that passes the error text to the client.
// Only used for input errors, whose messages are built from request sizes and field names.
func detailHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func batchResultToDTO(r dommatch.Result) BatchResultItem {
	item := BatchResultItem{
		Index:      r.Index(),
		Success:    r.Success(),
		MatchScore: r.Score(),
	}
	if r.Success() {
		rt, jt := r.ResumeTokens(), r.JobTokens()
		item.ResumeTokens = &rt
		item.JobTokens = &jt
		return item
	}
	if r.Err() != nil {
		item.Error = r.Err().Error()
	}
	return item
}
