// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package recommend

import (
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights blends the per-candidate signals into the total score.
	Weights ScoreWeights `json:"weights"`

	// Ranking controls candidate retrieval and filtering.
	Ranking RankingConfig `json:"ranking"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`

	// Graph contains knowledge graph parameters.
	Graph GraphConfig `json:"graph"`
}

// ScoreWeights defines the contribution of each signal to the total score.
// Unlike ensemble weights they are used as-is, not normalized.
type ScoreWeights struct {
	// Similarity is the weight of 1 - cosine distance.
	// Default: 0.6.
	Similarity float64 `json:"similarity"`

	// Productivity is the weight of articles / corpus max articles.
	// Default: 0.25.
	Productivity float64 `json:"productivity"`

	// Diversity is the weight of interests / corpus max interests.
	// Default: 0.15.
	Diversity float64 `json:"diversity"`
}

// Sum returns the total of all weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoreWeights) Sum() float64 {
	return w.Similarity + w.Productivity + w.Diversity
}

// Total blends the three signals.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoreWeights) Total(similarity, productivity, diversity float64) float64 {
	return similarity*w.Similarity + productivity*w.Productivity + diversity*w.Diversity
}

// RankingConfig controls candidate retrieval.
type RankingConfig struct {
	// MinSimilarity is the hard relevance floor. Candidates below it are
	// dropped regardless of their other scores.
	// Default: 0.1.
	MinSimilarity float64 `json:"min_similarity"`

	// OverFetchFactor multiplies top_k to size the neighbor query.
	// Default: 10.
	OverFetchFactor int `json:"over_fetch_factor"`

	// CollectAllCandidates ranks every neighbor above the floor before
	// truncating. When false, collection stops at the first top_k survivors
	// in distance order and only those are re-sorted by total score.
	// Default: false.
	CollectAllCandidates bool `json:"collect_all_candidates"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// DefaultK is used when a request does not set top_k.
	// Default: 10.
	DefaultK int `json:"default_k"`

	// MaxK is the largest accepted top_k.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// GraphConfig contains knowledge graph parameters.
type GraphConfig struct {
	// MaxNodes caps the scientists returned in a graph.
	// Default: 100.
	MaxNodes int `json:"max_nodes"`

	// EngineCandidates is how many engine results may raise a graph score.
	// Default: 100.
	EngineCandidates int `json:"engine_candidates"`

	// BreakerFailures is the number of consecutive engine failures that
	// opens the circuit.
	// Default: 5.
	BreakerFailures uint32 `json:"breaker_failures"`

	// BreakerTimeout is how long the circuit stays open.
	// Default: 30s.
	BreakerTimeout time.Duration `json:"breaker_timeout"`

	// BreakerInterval resets failure counts while closed.
	// Default: 1m.
	BreakerInterval time.Duration `json:"breaker_interval"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScoreWeights{
			Similarity:   0.6,
			Productivity: 0.25,
			Diversity:    0.15,
		},
		Ranking: RankingConfig{
			MinSimilarity:   0.1,
			OverFetchFactor: 10,
		},
		Limits: LimitsConfig{
			DefaultK: 10,
			MaxK:     100,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
		Graph: GraphConfig{
			MaxNodes:         100,
			EngineCandidates: 100,
			BreakerFailures:  5,
			BreakerTimeout:   30 * time.Second,
			BreakerInterval:  time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	for name, w := range map[string]float64{
		"similarity":   c.Weights.Similarity,
		"productivity": c.Weights.Productivity,
		"diversity":    c.Weights.Diversity,
	} {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("weights.%s must be non-negative, got %f", name, w)
		}
	}
	if c.Weights.Sum() == 0 {
		return fmt.Errorf("at least one score weight must be positive")
	}

	if c.Ranking.MinSimilarity < 0 || c.Ranking.MinSimilarity > 1 {
		return fmt.Errorf("ranking.min_similarity must be in [0, 1], got %f", c.Ranking.MinSimilarity)
	}
	if c.Ranking.OverFetchFactor < 1 {
		return fmt.Errorf("ranking.over_fetch_factor must be positive, got %d", c.Ranking.OverFetchFactor)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	if c.Graph.MaxNodes < 1 {
		return fmt.Errorf("graph.max_nodes must be positive, got %d", c.Graph.MaxNodes)
	}
	if c.Graph.EngineCandidates < 0 {
		return fmt.Errorf("graph.engine_candidates must be non-negative, got %d", c.Graph.EngineCandidates)
	}
	if c.Graph.BreakerFailures < 1 {
		return fmt.Errorf("graph.breaker_failures must be positive, got %d", c.Graph.BreakerFailures)
	}
	if c.Graph.BreakerTimeout <= 0 {
		return fmt.Errorf("graph.breaker_timeout must be positive, got %v", c.Graph.BreakerTimeout)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type cacheJSON struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}
	type graphJSON struct {
		MaxNodes         int    `json:"max_nodes"`
		EngineCandidates int    `json:"engine_candidates"`
		BreakerFailures  uint32 `json:"breaker_failures"`
		BreakerTimeout   string `json:"breaker_timeout"`
		BreakerInterval  string `json:"breaker_interval"`
	}
	return json.Marshal(&struct {
		*Alias
		Cache cacheJSON `json:"cache"`
		Graph graphJSON `json:"graph"`
	}{
		Alias: (*Alias)(c),
		Cache: cacheJSON{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
		Graph: graphJSON{
			MaxNodes:         c.Graph.MaxNodes,
			EngineCandidates: c.Graph.EngineCandidates,
			BreakerFailures:  c.Graph.BreakerFailures,
			BreakerTimeout:   c.Graph.BreakerTimeout.String(),
			BreakerInterval:  c.Graph.BreakerInterval.String(),
		},
	})
}
