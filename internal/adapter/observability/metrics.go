package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	MatchPipelineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_pipeline_requests_total",
			Help: "Total number of matching pipeline invocations",
		},
		[]string{"pipeline"},
	)
	MatchPipelineFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_pipeline_failures_total",
			Help: "Pipeline invocations that degraded to an empty result, by cause",
		},
		[]string{"pipeline", "reason"},
	)
	MatchPipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_pipeline_duration_seconds",
			Help:    "Matching pipeline duration in seconds, store reads included",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"pipeline"},
	)
	MatchScoreHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_score",
			Help:    "Distribution of returned match scores ([0,100])",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"pipeline"},
	)
	MatchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_results_returned",
			Help:    "Number of results returned per pipeline call",
			Buckets: []float64{0, 1, 5, 10, 20, 30},
		},
		[]string{"pipeline"},
	)
	MatchesSavedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_saved_total",
			Help: "Persisted match writes by type and outcome",
		},
		[]string{"type", "outcome"},
	)
	MatchScoreDrift = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "match_score_drift",
			Help: "Absolute drift of the rolling average match score from its baseline",
		},
		[]string{"pipeline"},
	)
	PoolCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pool_cache_requests_total",
			Help: "Pool cache lookups by pool and result (hit, miss, error, bypass)",
		},
		[]string{"pool", "result"},
	)
	CircuitBreakerStateGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

var initOnce sync.Once

// InitMetrics registers all collectors with the default registry. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			MatchPipelineRequestsTotal,
			MatchPipelineFailuresTotal,
			MatchPipelineDuration,
			MatchScoreHistogram,
			MatchResultsReturned,
			MatchesSavedTotal,
			MatchScoreDrift,
			PoolCacheTotal,
			CircuitBreakerStateGauge,
		)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObservePipeline records one pipeline invocation and its returned scores.
func ObservePipeline(pipeline string, dur time.Duration, scores []int) {
	MatchPipelineRequestsTotal.WithLabelValues(pipeline).Inc()
	MatchPipelineDuration.WithLabelValues(pipeline).Observe(dur.Seconds())
	MatchResultsReturned.WithLabelValues(pipeline).Observe(float64(len(scores)))
	h := MatchScoreHistogram.WithLabelValues(pipeline)
	for _, s := range scores {
		h.Observe(float64(s))
	}
}

// RecordPipelineFailure counts a pipeline call that degraded to an empty result.
func RecordPipelineFailure(pipeline, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	MatchPipelineFailuresTotal.WithLabelValues(pipeline, reason).Inc()
}

// RecordMatchSaved counts a persisted match write.
func RecordMatchSaved(matchType string, ok bool) {
	outcome := "saved"
	if !ok {
		outcome = "failed"
	}
	MatchesSavedTotal.WithLabelValues(matchType, outcome).Inc()
}

// RecordScoreDrift sets the current drift gauge for a pipeline.
func RecordScoreDrift(pipeline string, drift float64) {
	MatchScoreDrift.WithLabelValues(pipeline).Set(drift)
}

// RecordPoolCache counts a pool cache lookup.
func RecordPoolCache(pool, result string) {
	PoolCacheTotal.WithLabelValues(pool, result).Inc()
}

// RecordCircuitBreakerStatus exports a breaker's state.
func RecordCircuitBreakerStatus(name string, state int) {
	CircuitBreakerStateGauge.WithLabelValues(name).Set(float64(state))
}
