package metrics

import "github.com/prometheus/client_golang/prometheus"

// Matching Prometheus metrics.
var (
	PairsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumatch",
			Name:      "pairs_total",
			Help:      "Total number of scored resume/job pairs",
		},
		[]string{"status"}, // "ok" / "empty" / "error"
	)

	MatchScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resumatch",
			Name:      "match_score",
			Help:      "Distribution of successful match scores",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	BatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resumatch",
			Name:      "batch_duration_seconds",
			Help:      "Batch match processing time in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	ModelReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumatch",
			Name:      "model_reloads_total",
			Help:      "Model trainings and loads by outcome",
		},
		[]string{"status"}, // "ok" / "error"
	)

	ModelVocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "resumatch",
			Name:      "model_vocabulary_size",
			Help:      "Vocabulary size of the served model",
		},
	)
)

// Pair outcome labels.
const (
	PairOK    = "ok"
	PairEmpty = "empty"
	PairError = "error"
)

var matchMetricsRegistered bool

// RegisterMatchingMetrics registers Prometheus matching metrics. Must be called once from main.
func RegisterMatchingMetrics() {
	if matchMetricsRegistered {
		return
	}
	prometheus.MustRegister(PairsTotal)
	prometheus.MustRegister(MatchScore)
	prometheus.MustRegister(BatchDuration)
	prometheus.MustRegister(ModelReloadsTotal)
	prometheus.MustRegister(ModelVocabularySize)
	matchMetricsRegistered = true
}
