// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/scholarmatch/internal/logging"
	"github.com/tomtom215/scholarmatch/internal/metrics"
	"github.com/tomtom215/scholarmatch/internal/middleware"
	"github.com/tomtom215/scholarmatch/internal/models"
	"github.com/tomtom215/scholarmatch/internal/recommend"
)

// defaultNumRecommendations applies when num_recommendations is omitted.
const defaultNumRecommendations = 10

// Recommend handles POST /recommend and POST /api/v1/recommend.
//
// @Summary Recommend collaborators
// @Description Ranks corpus authors by similarity to the given interests and optional publication text
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body RecommendRequest true "Interests and options"
// @Success 200 {object} RecommendResponse
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 503 {object} models.APIResponse "Model not loaded"
// @Router /recommend [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendRequest
	if apiErr := decodeJSONBody(w, r, &req); apiErr != nil {
		metrics.RecordRecommendation(metrics.OutcomeInvalidInput, time.Since(start), 0, 0)
		respondAPIError(w, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RecordRecommendation(metrics.OutcomeInvalidInput, time.Since(start), 0, 0)
		respondAPIError(w, apiErr)
		return
	}

	topK := defaultNumRecommendations
	if req.NumRecommendations != nil {
		topK = *req.NumRecommendations
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		Interests:    req.Interests,
		Publications: req.Publications,
		TopK:         topK,
		RequestID:    middleware.GetRequestID(r),
	})
	if err != nil {
		h.respondEngineError(w, r, err, time.Since(start))
		return
	}

	outcome := metrics.OutcomeSuccess
	if resp.Metadata.CacheHit {
		outcome = metrics.OutcomeCacheHit
	}
	metrics.RecordRecommendation(outcome, time.Since(start), resp.Metadata.CandidatesFiltered, len(resp.Recommendations))

	recs := resp.Recommendations
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	writeJSON(w, http.StatusOK, RecommendResponse{
		Recommendations: recs,
		ProcessingTime:  resp.ProcessingTime,
	})
}

// respondEngineError maps engine errors to HTTP responses.
func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error, elapsed time.Duration) {
	var inputErr *recommend.InputError
	switch {
	case errors.As(err, &inputErr):
		metrics.RecordRecommendation(metrics.OutcomeInvalidInput, elapsed, 0, 0)
		respondAPIError(w, &models.APIError{
			Code:    models.CodeValidation,
			Message: inputErr.Error(),
			Details: map[string]interface{}{"field": inputErr.Field},
		})
	case errors.Is(err, recommend.ErrInvalidInput):
		metrics.RecordRecommendation(metrics.OutcomeInvalidInput, elapsed, 0, 0)
		respondError(w, http.StatusBadRequest, models.CodeValidation, err.Error(), nil)
	case errors.Is(err, recommend.ErrModelNotLoaded):
		metrics.RecordRecommendation(metrics.OutcomeUnavailable, elapsed, 0, 0)
		respondError(w, http.StatusServiceUnavailable, models.CodeModelNotLoaded,
			"Recommendation model is not loaded", nil)
	default:
		metrics.RecordRecommendation(metrics.OutcomeError, elapsed, 0, 0)
		logging.Ctx(r.Context()).Error().Err(err).Msg("recommendation failed")
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Error generating recommendations", nil)
	}
}

// RecommendStatus handles GET /api/v1/recommend/status.
func (h *Handler) RecommendStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	data := map[string]interface{}{
		"engine": h.engine.GetMetrics(),
		"health": h.engine.Health(),
	}
	if h.graph != nil {
		data["graph_breaker"] = h.graph.BreakerState().String()
	}
	if stored, err := h.store.CountAuthorInterests(ctx); err == nil {
		data["stored_authors"] = stored
	} else {
		h.logger.Warn().Err(err).Msg("failed to count stored authors")
	}
	if h.latency != nil {
		data["routes"] = h.latency.Stats()
	}

	respondSuccess(w, data, start)
}
