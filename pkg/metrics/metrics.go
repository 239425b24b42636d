package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendations HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recserve_recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recserve_recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// Signals skipped because no model artifact was loaded
	SignalSkips = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recserve_signal_skips_total",
		Help: "Signals skipped due to a missing scorer",
	}, []string{"signal"})

	// Signal scoring invocations that failed and were contained
	SignalErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recserve_signal_errors_total",
		Help: "Contained per-signal scoring failures",
	}, []string{"signal"})

	// Explainer invocations that failed and fell back to the zero explanation
	ExplainErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recserve_explain_errors_total",
		Help: "Contained per-signal explainer failures",
	}, []string{"signal"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		SignalSkips,
		SignalErrors,
		ExplainErrors,
	)
}
