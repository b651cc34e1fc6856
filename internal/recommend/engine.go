// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/scholarmatch/internal/cache"
	"github.com/tomtom215/scholarmatch/internal/recommend/algorithms"
	"github.com/tomtom215/scholarmatch/internal/recommend/profile"
)

// Engine ranks corpus authors against a researcher's interests.
// It is safe for concurrent use: the model is read-only and all mutable
// state is either atomic or guarded by the response cache.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// model is nil when no artifact set was loaded.
	model *Model

	cache *cache.LRU[*Response]

	// Metrics
	requestCount       atomic.Int64
	cacheHits          atomic.Int64
	cacheMisses        atomic.Int64
	errorCount         atomic.Int64
	candidatesFiltered atomic.Int64
	totalLatencyMS     atomic.Int64
}

// NewEngine creates a ranking engine over model. A nil model produces an
// engine that reports itself unavailable and answers every recommendation
// with ErrModelNotLoaded.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(model *Model, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		model:  model,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	if model != nil {
		e.logger.Info().
			Int("authors", model.Size()).
			Int("vocabulary", model.Vectorizer.Dim()).
			Str("version", model.Version).
			Msg("recommendation model attached")
	} else {
		e.logger.Warn().Msg("no recommendation model loaded, engine unavailable")
	}
	return e, nil
}

// Available reports whether a model is loaded.
func (e *Engine) Available() bool {
	return e.model != nil
}

// Model returns the loaded model, or nil.
func (e *Engine) Model() *Model {
	return e.model
}

// CorpusSize returns the number of corpus authors, 0 when unloaded.
func (e *Engine) CorpusSize() int {
	return e.model.Size()
}

// Health returns the engine health surface.
func (e *Engine) Health() Health {
	if e.model == nil {
		return Health{}
	}
	return Health{
		ModelLoaded:    true,
		AuthorsCount:   e.model.Size(),
		VocabularySize: e.model.Vectorizer.Dim(),
		ModelVersion:   e.model.Version,
	}
}

// CacheExpirer exposes the response cache for periodic cleanup. Returns
// nil when caching is disabled.
func (e *Engine) CacheExpirer() cache.Expirer {
	if e.cache == nil {
		return nil
	}
	return e.cache
}

// Recommend returns up to TopK authors ranked by total score.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if e.model == nil {
		e.errorCount.Add(1)
		return nil, ErrModelNotLoaded
	}

	req, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("top_k", req.TopK).
		Logger()
	logger.Debug().Int("interests", len(req.Interests)).Msg("processing recommendation request")

	cacheKey := e.cacheKey(req)
	if resp := e.tryGetCachedResponse(cacheKey, req, start); resp != nil {
		logger.Debug().Msg("cache hit")
		return resp, nil
	}

	vec, err := e.model.Vectorizer.Transform(profile.Build(req.Interests, req.Publications))
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("transform profile: %w", err)
	}
	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	recs, considered, filtered, err := e.rank(ctx, vec, req.TopK, e.config.Ranking.CollectAllCandidates)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("rank candidates: %w", err)
	}
	e.candidatesFiltered.Add(int64(filtered))

	resp := &Response{
		Recommendations: recs,
		ProcessingTime:  time.Since(start).Seconds(),
		Metadata: ResponseMetadata{
			RequestID:            req.RequestID,
			CandidatesConsidered: considered,
			CandidatesFiltered:   filtered,
			ModelVersion:         e.model.Version,
			Timestamp:            time.Now(),
		},
	}
	if e.cache != nil {
		e.cache.Add(cacheKey, resp)
	}
	e.totalLatencyMS.Add(time.Since(start).Milliseconds())

	logger.Debug().
		Int("candidates", considered).
		Int("filtered", filtered).
		Int("returned", len(recs)).
		Float64("processing_time", resp.ProcessingTime).
		Msg("recommendation complete")

	return copyResponse(resp), nil
}

// TopByTotal returns the n best authors by total score for a bare interest
// list. An empty interest list yields no results. Used by the graph view.
func (e *Engine) TopByTotal(ctx context.Context, interests []string, n int) ([]Recommendation, error) {
	if e.model == nil {
		return nil, ErrModelNotLoaded
	}
	if n < 1 {
		return nil, NewInputError("n", "must be positive")
	}
	if !hasContent(interests) {
		return []Recommendation{}, nil
	}

	vec, err := e.model.Vectorizer.Transform(profile.Build(interests, nil))
	if err != nil {
		return nil, fmt.Errorf("transform profile: %w", err)
	}
	recs, _, _, err := e.rank(ctx, vec, n, e.config.Ranking.CollectAllCandidates)
	return recs, err
}

// prepareRequest validates the request and applies defaults.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.TopK < 1 {
		return req, NewInputError("top_k", fmt.Sprintf("must be >= 1, got %d", req.TopK))
	}
	if req.TopK > e.config.Limits.MaxK {
		req.TopK = e.config.Limits.MaxK
	}
	if !hasContent(req.Interests) && !hasContent(req.Publications) {
		return req, NewInputError("interests", "at least one interest or publication is required")
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	return req, nil
}

// rank queries the index and scores the surviving candidates. It returns
// the ranked list plus the number of neighbors considered and filtered.
func (e *Engine) rank(ctx context.Context, vec algorithms.SparseVector, topK int, collectAll bool) ([]Recommendation, int, int, error) {
	m := e.model

	n := topK * e.config.Ranking.OverFetchFactor
	if n > m.Size() {
		n = m.Size()
	}
	if n == 0 {
		return []Recommendation{}, 0, 0, nil
	}

	neighbors, err := m.Index.Query(ctx, vec, n)
	if err != nil {
		return nil, 0, 0, err
	}

	recs := make([]Recommendation, 0, topK)
	filtered := 0
	for _, nb := range neighbors {
		similarity := 1 - nb.Distance
		if similarity < e.config.Ranking.MinSimilarity {
			filtered++
			continue
		}
		recs = append(recs, e.score(nb.Index, similarity))
		if !collectAll && len(recs) >= topK {
			break
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].TotalScore > recs[j].TotalScore
	})
	if len(recs) > topK {
		recs = recs[:topK]
	}
	return recs, len(neighbors), filtered, nil
}

// score builds the recommendation for corpus row idx.
func (e *Engine) score(idx int, similarity float64) Recommendation {
	m := e.model
	author := &m.Corpus[idx]

	var productivity, diversity float64
	if m.maxArticles > 0 {
		productivity = float64(author.Articles()) / float64(m.maxArticles)
	}
	if m.maxInterests > 0 {
		diversity = float64(author.InterestCount()) / float64(m.maxInterests)
	}

	rec := Recommendation{
		AuthorID:          author.ID,
		AuthorName:        author.DisplayName(),
		TotalScore:        e.config.Weights.Total(similarity, productivity, diversity),
		SimilarityScore:   similarity,
		ProductivityScore: productivity,
		DiversityScore:    diversity,
		ArticlesCount:     author.Articles(),
		InterestsCount:    author.InterestCount(),
	}
	if author.MainInterest != nil {
		mi := *author.MainInterest
		rec.MainInterest = &mi
	}
	return rec
}

// tryGetCachedResponse returns a copy of a cached response, or nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(key string, req Request, start time.Time) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := copyResponse(cached)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.ProcessingTime = time.Since(start).Seconds()
	e.totalLatencyMS.Add(time.Since(start).Milliseconds())
	return resp
}

// cacheKey hashes the fields that determine the ranking.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func (e *Engine) cacheKey(req Request) string {
	return cache.GenerateKey("recommend", struct {
		Interests    []string
		Publications []string
		TopK         int
	}{req.Interests, req.Publications, req.TopK})
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		RequestCount:       e.requestCount.Load(),
		CacheHits:          e.cacheHits.Load(),
		CacheMisses:        e.cacheMisses.Load(),
		ErrorCount:         e.errorCount.Load(),
		CandidatesFiltered: e.candidatesFiltered.Load(),
		ModelLoaded:        e.model != nil,
		CorpusSize:         e.model.Size(),
	}
	if e.model != nil {
		m.ModelVersion = e.model.Version
	}
	if served := m.RequestCount - m.ErrorCount; served > 0 {
		m.AvgLatencyMS = e.totalLatencyMS.Load() / served
	}
	return m
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// copyResponse returns a copy that callers may modify.
func copyResponse(resp *Response) *Response {
	recs := make([]Recommendation, len(resp.Recommendations))
	copy(recs, resp.Recommendations)
	return &Response{
		Recommendations: recs,
		ProcessingTime:  resp.ProcessingTime,
		Metadata:        resp.Metadata,
	}
}

// hasContent reports whether any element is non-blank.
func hasContent(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
