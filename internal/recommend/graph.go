// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package recommend

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/scholarmatch/internal/recommend/algorithms"
)

// EntityKind distinguishes registered users from corpus authors.
type EntityKind string

const (
	// EntityUser is a registered user of the service.
	EntityUser EntityKind = "user"
	// EntityAuthor is an external author from the corpus.
	EntityAuthor EntityKind = "author"
)

// Entity is a person that can appear in the knowledge graph.
type Entity struct {
	// Key is unique across users and authors, e.g. "user:12".
	Key string

	Kind     EntityKind
	ID       int
	Name     string
	Username string

	// AuthorID links an author entity to its corpus record.
	AuthorID string

	Interests []string
}

// InterestNode is one interest in the graph catalog.
type InterestNode struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ScientistCount int    `json:"scientist_count"`
}

// ScientistNode is one ranked person in the graph.
type ScientistNode struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Interests []int      `json:"interests"`
	Score     float64    `json:"score"`
	Kind      EntityKind `json:"kind"`
	AuthorID  string     `json:"author_id,omitempty"`
}

// KnowledgeGraph links interests to the people most similar to the active
// entity.
type KnowledgeGraph struct {
	Active     *ScientistNode  `json:"active,omitempty"`
	Interests  []InterestNode  `json:"interests"`
	Scientists []ScientistNode `json:"scientists"`
}

// TopRanker is the part of Engine the graph view depends on.
type TopRanker interface {
	Available() bool
	TopByTotal(ctx context.Context, interests []string, n int) ([]Recommendation, error)
}

// GraphOption configures a GraphBuilder.
type GraphOption func(*GraphBuilder)

// WithBreakerStateHook registers a callback for circuit breaker transitions.
func WithBreakerStateHook(fn func(name string, from, to gobreaker.State)) GraphOption {
	return func(g *GraphBuilder) {
		g.onStateChange = fn
	}
}

// GraphBuilder ranks candidate collaborators by interest overlap, raised by
// the engine's total score when the engine is available.
type GraphBuilder struct {
	ranker        TopRanker
	config        GraphConfig
	logger        zerolog.Logger
	breaker       *gobreaker.CircuitBreaker[[]Recommendation]
	onStateChange func(name string, from, to gobreaker.State)
}

// GraphBreakerName names the circuit breaker around engine calls.
const GraphBreakerName = "graph-engine"

// NewGraphBuilder creates a graph builder. ranker may be nil, in which case
// only interest overlap is used.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGraphBuilder(ranker TopRanker, cfg GraphConfig, logger zerolog.Logger, opts ...GraphOption) *GraphBuilder {
	g := &GraphBuilder{
		ranker: ranker,
		config: cfg,
		logger: logger.With().Str("component", "graph").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	g.breaker = gobreaker.NewCircuitBreaker[[]Recommendation](gobreaker.Settings{
		Name:        GraphBreakerName,
		MaxRequests: 1,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation says nothing about engine health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.logger.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			if g.onStateChange != nil {
				g.onStateChange(name, from, to)
			}
		},
	})
	return g
}

// BreakerState returns the current circuit breaker state.
func (g *GraphBuilder) BreakerState() gobreaker.State {
	return g.breaker.State()
}

// BuildGraph ranks pool against active. The active entity is removed from
// pool if present.
func (g *GraphBuilder) BuildGraph(ctx context.Context, active Entity, pool []Entity) (*KnowledgeGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := make([]Entity, 0, len(pool))
	for i := range pool {
		if pool[i].Key != active.Key {
			candidates = append(candidates, pool[i])
		}
	}

	catalog, ids := buildCatalog(append([]Entity{active}, candidates...))
	activeSet := normalizeInterests(active.Interests)
	engineScores := g.engineScores(ctx, active.Interests)

	nodes := make([]ScientistNode, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		score := algorithms.Jaccard(activeSet, normalizeInterests(c.Interests))
		if c.Kind == EntityAuthor {
			if total, ok := engineScores[c.AuthorID]; ok && total > score {
				score = total
			}
		}
		nodes = append(nodes, newScientistNode(c, score, ids))
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Score > nodes[j].Score
	})
	if len(nodes) > g.config.MaxNodes {
		nodes = nodes[:g.config.MaxNodes]
	}

	activeNode := newScientistNode(&active, 1, ids)
	return &KnowledgeGraph{
		Active:     &activeNode,
		Interests:  catalog,
		Scientists: nodes,
	}, nil
}

// engineScores returns author_id -> total score from the engine's top
// candidates. Failures degrade to an empty map.
func (g *GraphBuilder) engineScores(ctx context.Context, interests []string) map[string]float64 {
	if g.ranker == nil || !g.ranker.Available() || g.config.EngineCandidates == 0 {
		return nil
	}

	recs, err := g.breaker.Execute(func() ([]Recommendation, error) {
		return g.ranker.TopByTotal(ctx, interests, g.config.EngineCandidates)
	})
	if err != nil {
		g.logger.Warn().Err(err).Msg("engine scores unavailable, using interest overlap only")
		return nil
	}

	scores := make(map[string]float64, len(recs))
	for _, r := range recs {
		scores[r.AuthorID] = r.TotalScore
	}
	return scores
}

// buildCatalog collects every interest referenced by entities, sorted
// alphabetically and numbered from 1. It also returns normalized name -> id.
func buildCatalog(entities []Entity) ([]InterestNode, map[string]int) {
	display := make(map[string]string)
	counts := make(map[string]int)
	for i := range entities {
		seen := make(map[string]struct{})
		for _, raw := range entities[i].Interests {
			name := strings.TrimSpace(raw)
			key := strings.ToLower(name)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, ok := display[key]; !ok {
				display[key] = name
			}
			counts[key]++
		}
	}

	keys := make([]string, 0, len(display))
	for key := range display {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	catalog := make([]InterestNode, len(keys))
	ids := make(map[string]int, len(keys))
	for i, key := range keys {
		catalog[i] = InterestNode{ID: i + 1, Name: display[key], ScientistCount: counts[key]}
		ids[key] = i + 1
	}
	return catalog, ids
}

func newScientistNode(e *Entity, score float64, ids map[string]int) ScientistNode {
	set := make(map[int]struct{})
	for _, key := range normalizeInterests(e.Interests) {
		if id, ok := ids[key]; ok {
			set[id] = struct{}{}
		}
	}
	interestIDs := make([]int, 0, len(set))
	for id := range set {
		interestIDs = append(interestIDs, id)
	}
	sort.Ints(interestIDs)

	return ScientistNode{
		ID:        e.ID,
		Name:      e.Name,
		Username:  e.Username,
		Interests: interestIDs,
		Score:     score,
		Kind:      e.Kind,
		AuthorID:  e.AuthorID,
	}
}

// normalizeInterests lower-cases and trims, dropping empties.
func normalizeInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	for _, raw := range interests {
		if key := strings.ToLower(strings.TrimSpace(raw)); key != "" {
			out = append(out, key)
		}
	}
	return out
}

// ParseInterests splits a stored interest string. Users store comma
// separated lists and authors pipe separated ones, so both are accepted.
func ParseInterests(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '|'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// DeriveUsername builds a display handle for an author without an account:
// the first name token plus up to five characters of the last token, with
// dots and commas removed. Returns "N/A" when nothing usable remains.
func DeriveUsername(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "N/A"
	}

	first := stripPunct(parts[0])
	if len(parts) == 1 {
		if first == "" {
			return "N/A"
		}
		return first
	}

	last := []rune(stripPunct(parts[len(parts)-1]))
	if len(last) > 5 {
		last = last[:5]
	}
	switch {
	case first != "" && len(last) > 0:
		return first + string(last)
	case first != "":
		return first
	default:
		return "N/A"
	}
}

func stripPunct(s string) string {
	return strings.TrimSpace(strings.NewReplacer(".", "", ",", "").Replace(s))
}
