// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/scholarmatch/internal/config"
	"github.com/tomtom215/scholarmatch/internal/metrics"
	"github.com/tomtom215/scholarmatch/internal/recommend"
	"github.com/tomtom215/scholarmatch/internal/recommend/storage"
)

// RecommendComponents holds the recommendation engine and the graph builder
// that consults it.
type RecommendComponents struct {
	Engine *recommend.Engine
	Graph  *recommend.GraphBuilder
}

// initRecommend loads the trained artifact set and builds the engine. A
// missing or corrupt artifact set is not fatal: the engine starts without a
// model and /recommend answers 503 until the service is restarted with a
// valid set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initRecommend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	var model *recommend.Model
	if cfg.Recommend.Enabled {
		model = loadModel(ctx, cfg.Recommend.ModelPath, logger)
	} else {
		logger.Info().Msg("Recommendation model loading disabled (RECOMMEND_ENABLED=false)")
	}

	if model != nil {
		metrics.SetModelInfo(true, model.Size(), model.Vectorizer.Dim())
	} else {
		metrics.SetModelInfo(false, 0, 0)
	}

	engineCfg := buildEngineConfig(cfg)
	engine, err := recommend.NewEngine(model, engineCfg, logger)
	if err != nil {
		return nil, err
	}

	metrics.InitBreaker(recommend.GraphBreakerName)
	graph := recommend.NewGraphBuilder(engine, engineCfg.Graph, logger,
		recommend.WithBreakerStateHook(func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String())
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		}),
	)

	return &RecommendComponents{Engine: engine, Graph: graph}, nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func loadModel(ctx context.Context, path string, logger zerolog.Logger) *recommend.Model {
	store := storage.NewArtifactStore(path)
	if !store.Exists() {
		logger.Warn().Str("path", path).Msg("No trained model found, run cmd/train to create one")
		return nil
	}

	model, err := store.Load(ctx)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to load recommendation model, serving without it")
		return nil
	}

	logger.Info().
		Str("path", path).
		Str("version", model.Version).
		Time("trained_at", model.TrainedAt).
		Msg("Recommendation model loaded")
	return model
}

// buildEngineConfig maps application config onto engine config. Zero values
// keep the engine defaults.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	engineCfg := recommend.DefaultConfig()
	rc := &cfg.Recommend

	if rc.Weights.Similarity != 0 || rc.Weights.Productivity != 0 || rc.Weights.Diversity != 0 {
		engineCfg.Weights = recommend.ScoreWeights{
			Similarity:   rc.Weights.Similarity,
			Productivity: rc.Weights.Productivity,
			Diversity:    rc.Weights.Diversity,
		}
	}

	if rc.MinSimilarity > 0 {
		engineCfg.Ranking.MinSimilarity = rc.MinSimilarity
	}
	if rc.OverFetchFactor > 0 {
		engineCfg.Ranking.OverFetchFactor = rc.OverFetchFactor
	}
	engineCfg.Ranking.CollectAllCandidates = rc.CollectAllCandidates

	if rc.DefaultK > 0 {
		engineCfg.Limits.DefaultK = rc.DefaultK
	}
	if rc.MaxK > 0 {
		engineCfg.Limits.MaxK = rc.MaxK
	}

	engineCfg.Cache.Enabled = rc.CacheSize > 0 && rc.CacheTTL > 0
	if engineCfg.Cache.Enabled {
		engineCfg.Cache.TTL = rc.CacheTTL
		engineCfg.Cache.MaxEntries = rc.CacheSize
	}

	if rc.Graph.MaxNodes > 0 {
		engineCfg.Graph.MaxNodes = rc.Graph.MaxNodes
	}
	if rc.Graph.EngineCandidates > 0 {
		engineCfg.Graph.EngineCandidates = rc.Graph.EngineCandidates
	}
	if rc.Graph.BreakerFailures > 0 {
		engineCfg.Graph.BreakerFailures = rc.Graph.BreakerFailures
	}
	if rc.Graph.BreakerTimeout > 0 {
		engineCfg.Graph.BreakerTimeout = rc.Graph.BreakerTimeout
	}
	if rc.Graph.BreakerInterval > 0 {
		engineCfg.Graph.BreakerInterval = rc.Graph.BreakerInterval
	}

	return engineCfg
}
