package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the service is up but has no model to serve.
	Degraded Status = "degraded"
	// Unhealthy indicates the model store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckNotLoaded indicates that no model is served yet.
	CheckNotLoaded CheckResult = "not_loaded"
)

// Report aggregates health check results.
type Report struct {
	Status       Status
	ModelLoaded  bool
	ModelVersion string
	Checks       map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	model ModelInspector
	db    DBPinger
}

// New creates a Service. db can be nil when the model store is not a database.
func New(model ModelInspector, db DBPinger) *Service {
	return &Service{model: model, db: db}
}

// Check runs health checks against all components.
// A missing model degrades the service: matching answers 503 until a model is trained.
// An unreachable model store makes it unhealthy.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	report := Report{Checks: checks}

	meta, loaded := s.model.Metadata()
	report.ModelLoaded = loaded
	report.ModelVersion = meta.Version
	if loaded {
		checks["model"] = CheckOK
	} else {
		checks["model"] = CheckNotLoaded
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
		} else {
			checks["database"] = CheckOK
		}
	}

	switch {
	case checks["database"] == CheckError:
		report.Status = Unhealthy
	case !loaded:
		report.Status = Degraded
	default:
		report.Status = Healthy
	}
	return report
}
