// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All metrics are registered on the default registry through promauto at package
initialization and are exposed by the API server at /metrics.

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rejected by the rate limiter (counter)
    Labels: endpoint

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type

Recommendation Metrics:
  - recommend_requests_total: Requests by outcome (counter)
    Labels: outcome (success, cache_hit, invalid_input, unavailable, error)
  - recommend_duration_seconds: Engine latency (histogram)
  - recommend_candidates_filtered_total: Candidates below the similarity floor (counter)
  - recommend_results: Recommendations per response (histogram)
  - recommend_model_loaded: 1 when a model is loaded (gauge)
  - recommend_model_authors: Corpus size of the loaded model (gauge)
  - recommend_model_vocabulary_size: Vocabulary size of the loaded model (gauge)
  - knowledge_graph_build_duration_seconds: Graph build latency (histogram)

Training and Import Metrics:
  - training_duration_seconds: Training run duration (histogram)
  - training_runs_total: Runs by status (counter)
    Labels: status (success, failure, timeout)
  - training_last_success_timestamp: Unix time of the last successful run (gauge)
  - import_rows_total: CSV rows by result (counter)
    Labels: table, result (imported, skipped, duplicate)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

Cache Metrics:
  - cache_expired_entries_total: Entries removed by expiry sweeps (counter)
    Labels: cache

# Usage

	start := time.Now()
	resp, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation(metrics.OutcomeSuccess, time.Since(start),
	    resp.Metadata.CandidatesFiltered, len(resp.Recommendations))

Example PromQL queries:

	# Recommendation p95 latency
	histogram_quantile(0.95, rate(recommend_duration_seconds_bucket[5m]))

	# Share of requests answered from cache
	sum(rate(recommend_requests_total{outcome="cache_hit"}[5m]))
	  / sum(rate(recommend_requests_total[5m]))

# Cardinality Management

Endpoint labels use the chi route pattern, never the raw path, so
/api/authors/{author_id}/profile is one series regardless of author.
*/
package metrics
