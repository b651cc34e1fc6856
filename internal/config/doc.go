// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

/*
Package config provides centralized configuration management for ScholarMatch.

Configuration is loaded with Koanf v2 in three layers, each overriding the
previous one:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, ./config.yaml or /etc/scholarmatch/config.yaml
 3. Environment variables, through an explicit mapping table

Unmapped environment variables are ignored.

# Environment Variables

Database:
  - DUCKDB_PATH: Database file path (default: /data/scholarmatch.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: Worker threads, 0 = NumCPU

Server:
  - HTTP_HOST, HTTP_PORT: Bind address (default: 0.0.0.0:8000)
  - HTTP_TIMEOUT: Per-request timeout (default: 30s)
  - ENVIRONMENT: development, staging or production

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: Per-IP limit (default: 100/1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off

Recommendation:
  - RECOMMEND_ENABLED, RECOMMEND_MODEL_PATH
  - RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_SIZE, RECOMMEND_CLEANUP_INTERVAL
  - RECOMMEND_MIN_SIMILARITY, RECOMMEND_OVER_FETCH_FACTOR, RECOMMEND_COLLECT_ALL
  - RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K
  - RECOMMEND_WEIGHT_SIMILARITY, RECOMMEND_WEIGHT_PRODUCTIVITY, RECOMMEND_WEIGHT_DIVERSITY
  - GRAPH_MAX_NODES, GRAPH_ENGINE_CANDIDATES
  - GRAPH_BREAKER_FAILURES, GRAPH_BREAKER_TIMEOUT, GRAPH_BREAKER_INTERVAL

Training (cmd/train):
  - TRAINING_CSV_PATH, TRAINING_TIMEOUT
  - TRAINING_MIN_DF, TRAINING_MAX_DF, TRAINING_MAX_FEATURES

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line

# Example config.yaml

	server:
	  port: 8000
	recommend:
	  model_path: /data/model
	  weights:
	    similarity: 0.6
	    productivity: 0.25
	    diversity: 0.15
	training:
	  csv_path: /data/authors_scientific_interests.csv

# Validation

Load returns an error naming the offending environment variable when a value
is out of range. Validate is split into one helper per section.
*/
package config
