package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Endpoint labels. Every route outside the API collapses into EndpointOther.
const (
	EndpointMatch         = "match"
	EndpointMatchMultiple = "match_multiple"
	EndpointBatchMatch    = "batch_match"
	EndpointRetrain       = "retrain"
	EndpointHealth        = "health"
	EndpointMetrics       = "metrics"
	EndpointOther         = "other"
)

var endpoints = map[string]string{
	"/api/match":          EndpointMatch,
	"/api/match/multiple": EndpointMatchMultiple,
	"/api/batch/match":    EndpointBatchMatch,
	"/api/admin/retrain":  EndpointRetrain,
	"/api/health":         EndpointHealth,
	"/metrics":            EndpointMetrics,
}

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumatch",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds by endpoint and status class",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint", "class"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumatch",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status", "class"},
	)

	httpInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "resumatch",
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served by endpoint",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal, httpInFlight)
}

// Middleware records per-endpoint request counts, latency and in-flight requests.
// Statuses are kept exact on the counter and grouped into classes on the histogram.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			// маршрут известен только после роутинга, поэтому in-flight считаем по пути
			inFlight := httpInFlight.WithLabelValues(Endpoint(r.URL.Path))
			inFlight.Inc()
			defer inFlight.Dec()

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			endpoint := EndpointOther
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				endpoint = Endpoint(rctx.RoutePattern())
			}
			status := StatusLabel(ww.status)
			class := StatusClass(ww.status)

			httpRequestDuration.WithLabelValues(endpoint, class).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(endpoint, r.Method, status, class).Inc()
		})
	}
}

// Endpoint maps a route pattern or path to its endpoint label.
func Endpoint(pattern string) string {
	if e, ok := endpoints[strings.TrimSuffix(pattern, "/")]; ok {
		return e
	}
	return EndpointOther
}

// StatusClass groups a status code as "2xx", "4xx", "5xx" and so on.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return string(rune('0'+status/100)) + "xx"
}

// StatusLabel keeps the statuses the API returns and folds the rest into their class.
func StatusLabel(status int) string {
	switch status {
	case http.StatusOK:
		return "200"
	case http.StatusBadRequest:
		return "400"
	case http.StatusUnauthorized:
		return "401"
	case http.StatusForbidden:
		return "403"
	case http.StatusNotFound:
		return "404"
	case http.StatusMethodNotAllowed:
		return "405"
	case http.StatusRequestEntityTooLarge:
		return "413"
	case http.StatusUnprocessableEntity:
		return "422"
	case http.StatusInternalServerError:
		return "500"
	case http.StatusServiceUnavailable:
		return "503"
	default:
		return StatusClass(status)
	}
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b) //nolint:wrapcheck // delegating to underlying ResponseWriter
}
