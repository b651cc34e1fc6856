// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/scholarmatch/internal/models"
)

// parseSearch reads and validates the search term from param and the
// limit parameter.
func (h *Handler) parseSearch(w http.ResponseWriter, r *http.Request, param string) (searchRequest, bool) {
	defaultLimit, maxLimit := h.searchLimits()
	limit, apiErr := parseLimitParam(r, defaultLimit)
	if apiErr != nil {
		respondAPIError(w, apiErr)
		return searchRequest{}, false
	}

	req := searchRequest{Query: r.URL.Query().Get(param), Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		// Report the parameter the caller actually sent.
		if apiErr.Details != nil && apiErr.Details["field"] == "query" && param != "query" {
			apiErr.Details["field"] = param
			apiErr.Message = strings.Replace(apiErr.Message, "query", param, 1)
		}
		respondAPIError(w, apiErr)
		return searchRequest{}, false
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	return req, true
}

// Search handles GET /api/v1/search?query=&limit=
//
// Registered users are matched by login and external authors by name,
// ignoring case. The interest rows of the matched authors are included.
//
// @Summary Search users and authors
// @Tags Search
// @Produce json
// @Param query query string true "Search term, at least 2 characters"
// @Param limit query int false "Maximum results per group (1-100)" default(10)
// @Success 200 {object} models.APIResponse{data=models.SearchResponse}
// @Failure 400 {object} models.APIResponse
// @Router /api/v1/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.parseSearch(w, r, "query")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	users, err := h.store.SearchUsers(ctx, req.Query, req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to search users", err)
		return
	}
	authors, err := h.store.SearchAuthors(ctx, req.Query, req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to search authors", err)
		return
	}

	seen := make(map[string]struct{}, len(authors))
	ids := make([]string, 0, len(authors))
	for i := range authors {
		if authors[i].AuthorID == nil || *authors[i].AuthorID == "" {
			continue
		}
		if _, dup := seen[*authors[i].AuthorID]; dup {
			continue
		}
		seen[*authors[i].AuthorID] = struct{}{}
		ids = append(ids, *authors[i].AuthorID)
	}
	interests, err := h.store.AuthorInterestsByIDs(ctx, ids)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to load author interests", err)
		return
	}

	respondSuccess(w, models.SearchResponse{
		RegisteredUsers:     nonNil(users),
		UnregisteredAuthors: nonNil(authors),
		AuthorInterests:     nonNil(interests),
	}, start)
}

// SearchUsers handles GET /api/v1/search/users?username=&limit=
func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.parseSearch(w, r, "username")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	users, err := h.store.SearchUsers(ctx, req.Query, req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to search users", err)
		return
	}
	respondSuccess(w, nonNil(users), start)
}

// SearchAuthors handles GET /api/v1/search/authors?name=&limit=
func (h *Handler) SearchAuthors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.parseSearch(w, r, "name")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	authors, err := h.store.SearchAuthors(ctx, req.Query, req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Failed to search authors", err)
		return
	}
	respondSuccess(w, nonNil(authors), start)
}

// nonNil turns a nil slice into an empty one so it encodes as [].
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
