// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package config

import (
	"time"
)

// Config holds all application configuration loaded from config files and
// environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Infrastructure:
//     - Database: DuckDB configuration (path, memory, threads)
//     - Server: HTTP server configuration (port, host, timeout)
//
//  2. Recommendation:
//     - Recommend: Model location, score weights, ranking and cache settings
//     - Training: CSV location and vectorizer parameters for cmd/train
//
//  3. API & Security:
//     - API: Search limits
//     - Security: CORS and rate limiting
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database, logger)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Training  TrainingConfig  `koanf:"training"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)

	// CheckpointInterval is how often the WAL is flushed into the database
	// file. Zero disables periodic checkpoints.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Environment mode: "development", "staging", "production" (default: "development")
}

// APIConfig holds search limits.
type APIConfig struct {
	// DefaultSearchLimit is used when a search request omits limit.
	// Default: 10
	DefaultSearchLimit int `koanf:"default_search_limit"`

	// MaxSearchLimit is the largest accepted limit.
	// Default: 100
	MaxSearchLimit int `koanf:"max_search_limit"`
}

// SecurityConfig holds CORS and rate limiting settings.
// User authentication is handled upstream of this service.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include file:line in logs (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
//
// The model itself is trained offline by cmd/train and loaded once at
// startup from ModelPath. When the load fails the service still starts and
// /recommend answers 503.
//
// Environment Variables:
//   - RECOMMEND_ENABLED: Load the model at startup (default: true)
//   - RECOMMEND_MODEL_PATH: Artifact set directory (default: /data/model)
//   - RECOMMEND_CACHE_TTL: Response cache TTL (default: 5m)
//   - RECOMMEND_CACHE_SIZE: Response cache entries, 0 disables (default: 10000)
//   - RECOMMEND_MIN_SIMILARITY: Similarity floor (default: 0.1)
//   - RECOMMEND_OVER_FETCH_FACTOR: Neighbor query multiplier (default: 10)
//   - RECOMMEND_COLLECT_ALL: Rank all neighbors before truncating (default: false)
//   - RECOMMEND_WEIGHT_SIMILARITY / _PRODUCTIVITY / _DIVERSITY: Score weights
//   - GRAPH_MAX_NODES, GRAPH_ENGINE_CANDIDATES: Knowledge graph limits
//   - GRAPH_BREAKER_FAILURES, GRAPH_BREAKER_TIMEOUT: Engine circuit breaker
type RecommendConfig struct {
	Enabled              bool          `koanf:"enabled"`
	ModelPath            string        `koanf:"model_path"`
	CacheTTL             time.Duration `koanf:"cache_ttl"`
	CacheSize            int           `koanf:"cache_size"`
	CleanupInterval      time.Duration `koanf:"cleanup_interval"`
	MinSimilarity        float64       `koanf:"min_similarity"`
	OverFetchFactor      int           `koanf:"over_fetch_factor"`
	CollectAllCandidates bool          `koanf:"collect_all_candidates"`
	DefaultK             int           `koanf:"default_k"`
	MaxK                 int           `koanf:"max_k"`
	Weights              WeightsConfig `koanf:"weights"`
	Graph                GraphSettings `koanf:"graph"`
}

// WeightsConfig holds the total score blend.
type WeightsConfig struct {
	Similarity   float64 `koanf:"similarity"`
	Productivity float64 `koanf:"productivity"`
	Diversity    float64 `koanf:"diversity"`
}

// GraphSettings holds knowledge graph settings.
type GraphSettings struct {
	MaxNodes         int           `koanf:"max_nodes"`
	EngineCandidates int           `koanf:"engine_candidates"`
	BreakerFailures  uint32        `koanf:"breaker_failures"`
	BreakerTimeout   time.Duration `koanf:"breaker_timeout"`
	BreakerInterval  time.Duration `koanf:"breaker_interval"`
}

// TrainingConfig holds offline training settings used by cmd/train.
//
// Environment Variables:
//   - TRAINING_CSV_PATH: authors_scientific_interests.csv location
//   - TRAINING_MIN_DF, TRAINING_MAX_DF, TRAINING_MAX_FEATURES: Vectorizer limits
//   - TRAINING_TIMEOUT: Maximum run duration (default: 30m)
type TrainingConfig struct {
	CSVPath     string        `koanf:"csv_path"`
	MinDF       int           `koanf:"min_df"`
	MaxDF       float64       `koanf:"max_df"`
	MaxFeatures int           `koanf:"max_features"`
	Timeout     time.Duration `koanf:"timeout"`
}

// Load reads configuration with layered sources:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
