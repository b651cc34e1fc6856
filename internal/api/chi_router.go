// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/scholarmatch/internal/middleware"
	"github.com/tomtom215/scholarmatch/internal/models"
)

// Router wires the handlers into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	latency       *middleware.LatencyTracker
}

// NewRouter creates a router. latency may be nil.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, latency *middleware.LatencyTracker) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		latency:       latency,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// instrumented runs inside each group, after chi has matched the route
	// pattern used as the metrics label.
	instrumented := func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		if router.latency != nil {
			r.Use(chiMiddleware(router.latency.Middleware))
		}
	}

	// ========================
	// Health Endpoints
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		instrumented(r)
		r.Get("/health", router.handler.Health)
		r.Get("/api/v1/health/live", router.handler.HealthLive)
		r.Get("/api/v1/health/ready", router.handler.HealthReady)
	})

	// ========================
	// Recommendations
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("recommend"))
		instrumented(r)
		r.Use(chiMiddleware(middleware.Compression))
		r.Post("/recommend", router.handler.Recommend)
		r.Post("/api/v1/recommend", router.handler.Recommend)
		r.Get("/api/v1/recommend/status", router.handler.RecommendStatus)
	})

	// ========================
	// Read API
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		instrumented(r)
		r.Use(chiMiddleware(middleware.Compression))

		r.Get("/api/v1/graph", router.handler.Graph)
		r.Get("/api/v1/search", router.handler.Search)
		r.Get("/api/v1/search/users", router.handler.SearchUsers)
		r.Get("/api/v1/search/authors", router.handler.SearchAuthors)
		r.Get("/api/v1/authors/{authorID}/interests", router.handler.AuthorInterests)
		r.Get("/api/v1/authors/{authorID}/profile", router.handler.AuthorProfile)
	})

	// ========================
	// Write API
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWrite())
		instrumented(r)
		r.Put("/api/v1/users/interests", router.handler.UpdateUserInterests)
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "Endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}
