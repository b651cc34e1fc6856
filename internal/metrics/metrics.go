// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for production observability:
// - Database query performance (DuckDB)
// - API endpoint latency and throughput
// - Recommendation requests and the loaded model
// - Training and import runs
// - Circuit breaker and cache state

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "success", "cache_hit", "invalid_input", "unavailable", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendCandidatesFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_candidates_filtered_total",
			Help: "Total number of candidates dropped by the similarity floor",
		},
	)

	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_results",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_loaded",
			Help: "Whether a recommendation model is loaded (1) or not (0)",
		},
	)

	ModelCorpusSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_authors",
			Help: "Number of authors in the loaded model",
		},
	)

	ModelVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_vocabulary_size",
			Help: "Vocabulary size of the loaded model",
		},
	)

	GraphBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "knowledge_graph_build_duration_seconds",
			Help:    "Duration of knowledge graph builds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Training Metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "training_duration_seconds",
			Help:    "Duration of model training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_runs_total",
			Help: "Total number of training runs by status",
		},
		[]string{"status"}, // "success", "failure", "timeout"
	)

	TrainingLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_last_success_timestamp",
			Help: "Unix timestamp of the last successful training run",
		},
	)

	// Import Metrics
	ImportRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_total",
			Help: "Total number of CSV rows processed by import",
		},
		[]string{"table", "result"}, // result: "imported", "skipped", "duplicate"
	)

	// Cache Metrics
	CacheExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_expired_entries_total",
			Help: "Total number of cache entries removed by expiry cleanup",
		},
		[]string{"cache"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records a completed recommendation request.
// filtered and results are ignored for anything but successful outcomes.
func RecordRecommendation(outcome string, duration time.Duration, filtered, results int) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if outcome == OutcomeSuccess || outcome == OutcomeCacheHit {
		RecommendCandidatesFiltered.Add(float64(filtered))
		RecommendResults.Observe(float64(results))
	}
}

// Recommendation outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeCacheHit     = "cache_hit"
	OutcomeInvalidInput = "invalid_input"
	OutcomeUnavailable  = "unavailable"
	OutcomeError        = "error"
)

// SetModelInfo updates the loaded-model gauges. A zero corpus reports the
// model as unloaded.
func SetModelInfo(loaded bool, authors, vocabulary int) {
	if !loaded {
		ModelLoaded.Set(0)
		ModelCorpusSize.Set(0)
		ModelVocabularySize.Set(0)
		return
	}
	ModelLoaded.Set(1)
	ModelCorpusSize.Set(float64(authors))
	ModelVocabularySize.Set(float64(vocabulary))
}

// RecordGraphBuild records a knowledge graph build
func RecordGraphBuild(duration time.Duration) {
	GraphBuildDuration.Observe(duration.Seconds())
}

// RecordTrainingRun records a training run metric
func RecordTrainingRun(duration time.Duration, err error) {
	TrainingDuration.Observe(duration.Seconds())
	switch {
	case err == nil:
		TrainingRuns.WithLabelValues("success").Inc()
		TrainingLastSuccess.Set(float64(time.Now().Unix()))
	case errors.Is(err, context.DeadlineExceeded):
		TrainingRuns.WithLabelValues("timeout").Inc()
	default:
		TrainingRuns.WithLabelValues("failure").Inc()
	}
}

// RecordImport records the row outcomes of one CSV import
func RecordImport(table string, imported, skipped, duplicates int) {
	ImportRows.WithLabelValues(table, "imported").Add(float64(imported))
	ImportRows.WithLabelValues(table, "skipped").Add(float64(skipped))
	ImportRows.WithLabelValues(table, "duplicate").Add(float64(duplicates))
}

// RecordCacheExpired records entries removed by an expiry sweep
func RecordCacheExpired(cache string, removed int) {
	if removed > 0 {
		CacheExpired.WithLabelValues(cache).Add(float64(removed))
	}
}

// RecordBreakerTransition records a circuit breaker state change. States
// use the gobreaker names: "closed", "half-open", "open".
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// InitBreaker publishes a closed state for a newly created breaker.
func InitBreaker(name string) {
	CircuitBreakerState.WithLabelValues(name).Set(0)
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
