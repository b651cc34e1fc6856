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

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/scholarmatch/internal/database"
	"github.com/tomtom215/scholarmatch/internal/models"
)

// authorIDParam reads and validates the {authorID} path parameter.
func authorIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	req := authorPathRequest{AuthorID: chi.URLParam(r, "authorID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return "", false
	}
	return req.AuthorID, true
}

// AuthorInterests handles GET /api/v1/authors/{authorID}/interests
//
// @Summary Author interest profile
// @Tags Authors
// @Produce json
// @Param authorID path string true "Author id"
// @Success 200 {object} models.APIResponse{data=models.AuthorInterest}
// @Failure 404 {object} models.APIResponse
// @Router /api/v1/authors/{authorID}/interests [get]
func (h *Handler) AuthorInterests(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	authorID, ok := authorIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	interest, err := h.store.GetAuthorInterest(ctx, authorID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "Author "+authorID+" not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to load author interests", err)
		return
	}
	respondSuccess(w, interest, start)
}

// AuthorProfile handles GET /api/v1/authors/{authorID}/profile
//
// @Summary Scientist profile
// @Description Profile page data: identity, metrics, activity analytics, topic distribution and publications
// @Tags Authors
// @Produce json
// @Param authorID path string true "Author id"
// @Success 200 {object} models.APIResponse{data=models.ScientistProfileResponse}
// @Failure 404 {object} models.APIResponse
// @Router /api/v1/authors/{authorID}/profile [get]
func (h *Handler) AuthorProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	authorID, ok := authorIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	interest, err := h.store.GetAuthorInterest(ctx, authorID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "Author "+authorID+" not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to load author", err)
		return
	}

	pubs, err := h.store.AuthorPublications(ctx, authorID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to load publications", err)
		return
	}
	user, err := h.store.FindUserByExternalID(ctx, interest.AuthorID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to load linked user", err)
		return
	}

	respondSuccess(w, buildScientistProfile(interest, pubs, user), start)
}

// UpdateUserInterests handles PUT /api/v1/users/interests
//
// @Summary Replace a user's interests
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.UpdateInterestsRequest true "Login and interests"
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/v1/users/interests [put]
func (h *Handler) UpdateUserInterests(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpdateInterestsRequest
	if apiErr := decodeJSONBody(w, r, &req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	user, err := h.store.UpdateUserInterests(ctx, req.Login, req.InterestsList)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "User "+req.Login+" not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to update interests", err)
		return
	}

	h.logger.Info().
		Str("login", sanitizeLogValue(req.Login)).
		Int("interests", len(req.InterestsList)).
		Msg("user interests updated")
	respondSuccess(w, user, start)
}
