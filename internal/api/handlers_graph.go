// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/scholarmatch/internal/database"
	"github.com/tomtom215/scholarmatch/internal/metrics"
	"github.com/tomtom215/scholarmatch/internal/models"
	"github.com/tomtom215/scholarmatch/internal/recommend"
)

// Graph handles GET /api/v1/graph?login=... or ?author_id=...
//
// The active entity is a registered user (login) or a corpus author
// (author_id); exactly one must be given.
//
// @Summary Knowledge graph
// @Tags Graph
// @Produce json
// @Param login query string false "Registered user login"
// @Param author_id query string false "Corpus author id"
// @Success 200 {object} models.APIResponse{data=recommend.KnowledgeGraph}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/v1/graph [get]
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := graphRequest{
		Login:    strings.TrimSpace(r.URL.Query().Get("login")),
		AuthorID: strings.TrimSpace(r.URL.Query().Get("author_id")),
	}
	if (req.Login == "") == (req.AuthorID == "") {
		respondAPIError(w, &models.APIError{
			Code:    models.CodeValidation,
			Message: "exactly one of login or author_id is required",
			Details: map[string]interface{}{"field": "login", "tag": "exactly_one"},
		})
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var (
		active recommend.Entity
		err    error
	)
	if req.Login != "" {
		active, err = h.store.UserEntity(ctx, req.Login)
	} else {
		active, err = h.store.AuthorEntity(ctx, req.AuthorID)
	}
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "Scientist not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to load scientist", err)
		return
	}

	pool, err := h.store.GraphEntities(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to load scientists", err)
		return
	}

	buildStart := time.Now()
	graph, err := h.graph.BuildGraph(ctx, active, pool)
	metrics.RecordGraphBuild(time.Since(buildStart))
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal, "Failed to build knowledge graph", err)
		return
	}

	respondSuccess(w, graph, start)
}
