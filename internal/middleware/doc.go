// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

/*
Package middleware provides HTTP middleware used by the API router.

All middleware has the http.HandlerFunc -> http.HandlerFunc shape. The api
package adapts it to chi's r.Use.

Components:

  - RequestID: reuses or generates X-Request-ID and stores request and
    correlation ids in the logging context
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern
  - Compression: gzip for clients that accept it
  - LatencyTracker: ring buffer of recent requests with per-route
    percentiles, reported by GET /api/v1/recommend/status

Route labels come from chi.RouteContext after dispatch, so requests to
/api/v1/authors/A1/profile and /api/v1/authors/A2/profile share the label
/api/v1/authors/{authorID}/profile. Requests that match no route are
labelled "unmatched".

See Also:

  - internal/api: router setup
  - internal/metrics: metric definitions
*/
package middleware
