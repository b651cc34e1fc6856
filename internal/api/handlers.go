// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/scholarmatch/internal/config"
	"github.com/tomtom215/scholarmatch/internal/middleware"
	"github.com/tomtom215/scholarmatch/internal/models"
	"github.com/tomtom215/scholarmatch/internal/recommend"
)

// handlerTimeout bounds the database and engine work of one request.
const handlerTimeout = 10 * time.Second

// Store is the data access the handlers need. *database.DB implements it.
type Store interface {
	Ping(ctx context.Context) error
	CountAuthorInterests(ctx context.Context) (int64, error)

	SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error)
	SearchAuthors(ctx context.Context, query string, limit int) ([]models.Author, error)
	AuthorInterestsByIDs(ctx context.Context, authorIDs []string) ([]models.AuthorInterest, error)

	GetAuthorInterest(ctx context.Context, authorID string) (*models.AuthorInterest, error)
	AuthorPublications(ctx context.Context, authorID string) ([]models.Author, error)
	FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
	UpdateUserInterests(ctx context.Context, login string, interests []string) (*models.User, error)

	UserEntity(ctx context.Context, login string) (recommend.Entity, error)
	AuthorEntity(ctx context.Context, authorID string) (recommend.Entity, error)
	GraphEntities(ctx context.Context) ([]recommend.Entity, error)
}

// Recommender is the part of recommend.Engine the handlers use.
type Recommender interface {
	Available() bool
	Health() recommend.Health
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	GetMetrics() recommend.Metrics
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health and probes
//   - handlers_recommend.go: recommendations and engine status
//   - handlers_graph.go: knowledge graph
//   - handlers_search.go: user and author search
//   - handlers_authors.go: author interests, scientist profile, user interests
type Handler struct {
	store     Store
	engine    Recommender
	graph     *recommend.GraphBuilder
	config    *config.Config
	latency   *middleware.LatencyTracker
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates the API handler. latency may be nil, in which case
// the status endpoint omits route statistics.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(store Store, engine Recommender, graph *recommend.GraphBuilder, cfg *config.Config,
	latency *middleware.LatencyTracker, logger zerolog.Logger) *Handler {
	return &Handler{
		store:     store,
		engine:    engine,
		graph:     graph,
		config:    cfg,
		latency:   latency,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}

// searchLimits returns the default and maximum search limit.
func (h *Handler) searchLimits() (defaultLimit, maxLimit int) {
	defaultLimit, maxLimit = 10, 100
	if h.config != nil {
		if h.config.API.DefaultSearchLimit > 0 {
			defaultLimit = h.config.API.DefaultSearchLimit
		}
		if h.config.API.MaxSearchLimit > 0 {
			maxLimit = h.config.API.MaxSearchLimit
		}
	}
	return defaultLimit, maxLimit
}
