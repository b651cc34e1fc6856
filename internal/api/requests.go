// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package api

import "github.com/tomtom215/scholarmatch/internal/recommend"

// RecommendRequest is the body of POST /recommend.
type RecommendRequest struct {
	Interests    []string `json:"interests" validate:"required,max=100,dive,max=500"`
	Publications []string `json:"publications" validate:"omitempty,max=200,dive,max=20000"`

	// NumRecommendations defaults to 10 when omitted.
	NumRecommendations *int `json:"num_recommendations" validate:"omitempty,gte=1,lte=100"`
}

// RecommendResponse is the body of a successful POST /recommend.
type RecommendResponse struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	ProcessingTime  float64                    `json:"processing_time"`
}

// searchRequest carries the query parameters of the search endpoints. The
// json names are the parameter names used in validation messages.
type searchRequest struct {
	Query string `json:"query" validate:"required,notblank,min=2,max=255,nocontrol"`
	Limit int    `json:"limit" validate:"gte=1,lte=100"`
}

// graphRequest selects the active entity of the knowledge graph.
type graphRequest struct {
	Login    string `json:"login" validate:"omitempty,max=255,nocontrol"`
	AuthorID string `json:"author_id" validate:"omitempty,max=255,nocontrol"`
}

// authorPathRequest validates the {authorID} path parameter.
type authorPathRequest struct {
	AuthorID string `json:"author_id" validate:"required,notblank,max=255,nocontrol"`
}
