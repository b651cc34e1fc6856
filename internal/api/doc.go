// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package api provides the HTTP interface of ScholarMatch on a chi router.
//
// # Endpoints
//
//	GET  /health                                 {status, authors_count, model_loaded}
//	GET  /api/v1/health/live                     liveness probe
//	GET  /api/v1/health/ready                    readiness: model loaded and database reachable
//	POST /recommend, /api/v1/recommend           ranked collaborator recommendations
//	GET  /api/v1/recommend/status                engine counters and route latency
//	GET  /api/v1/graph?login=|author_id=         knowledge graph around one scientist
//	GET  /api/v1/search?query=&limit=            users by login and authors by name
//	GET  /api/v1/search/users?username=&limit=   users only
//	GET  /api/v1/search/authors?name=&limit=     authors only
//	GET  /api/v1/authors/{authorID}/interests    author interest row
//	GET  /api/v1/authors/{authorID}/profile      scientist profile page data
//	PUT  /api/v1/users/interests                 replace a user's interests
//	GET  /metrics                                Prometheus metrics
//
// # Response Format
//
// /health and /recommend keep flat bodies for existing clients. Every
// other endpoint, and every error, uses models.APIResponse:
//
//	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "query_time_ms": 3}}
//	{"status": "error", "data": null, "error": {"code": "NOT_FOUND", "message": "..."}, "metadata": {...}}
//
// Error codes: VALIDATION_ERROR (400), NOT_FOUND (404), RATE_LIMIT_EXCEEDED
// (429), DATABASE_ERROR and INTERNAL_ERROR (500), MODEL_NOT_LOADED and
// SERVICE_UNAVAILABLE (503).
//
// # Middleware
//
// Global: request id, real IP, panic recovery, CORS. Per route group: an
// httprate per-IP limiter, security headers, Prometheus metrics, latency
// tracking and gzip compression for read endpoints.
//
// # Degraded Mode
//
// When no model is loaded, /recommend answers 503 MODEL_NOT_LOADED while
// health, search, author and graph endpoints keep working; the graph falls
// back to interest overlap only.
package api
