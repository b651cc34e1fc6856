// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/scholarmatch/internal/models"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	AuthorsCount int    `json:"authors_count"`
	ModelLoaded  bool   `json:"model_loaded"`
}

// Health reports process health and model status. It answers 200 even when
// the model failed to load so that search and profile traffic keeps flowing.
//
// @Summary Get service health
// @Tags Core
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	engineHealth := h.engine.Health()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		AuthorsCount: engineHealth.AuthorsCount,
		ModelLoaded:  engineHealth.ModelLoaded,
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Ready means the model is loaded and the database answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	modelLoaded := h.engine.Available()
	dbConnected := h.store.Ping(ctx) == nil

	data := map[string]interface{}{
		"ready":              modelLoaded && dbConnected,
		"model_loaded":       modelLoaded,
		"database_connected": dbConnected,
	}

	if !modelLoaded || !dbConnected {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   models.StatusError,
			Data:     data,
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    models.CodeServiceUnavail,
				Message: "Service not ready",
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
