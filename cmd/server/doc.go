// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package main is the entry point for the ScholarMatch API server.
//
// ScholarMatch recommends potential research collaborators. Author profiles
// are vectorized offline with TF-IDF by cmd/train; this server loads the
// resulting artifact set once at startup and answers nearest-neighbor
// queries over it, alongside search, profile and knowledge graph endpoints
// backed by DuckDB.
//
// # Startup
//
//  1. Configuration: Koanf v2 (defaults, optional config.yaml, environment)
//  2. Logging: zerolog, JSON or console
//  3. Database: DuckDB with schema migrations
//  4. Model: artifact set from RECOMMEND_MODEL_PATH; a missing or invalid
//     set leaves the engine unavailable and /recommend answers 503
//  5. HTTP: Chi router with CORS, rate limiting and security headers
//  6. Supervisor tree: suture v4 runs the checkpoint service, the response
//     cache janitor and the HTTP server
//
// # Shutdown
//
// SIGINT or SIGTERM cancels the root context. The HTTP server drains for up
// to 10 seconds, the checkpoint service writes a final checkpoint and the
// database is closed.
//
// # Usage
//
//	HTTP_PORT=8000 DUCKDB_PATH=/data/scholarmatch.duckdb \
//	RECOMMEND_MODEL_PATH=/data/model ./scholarmatch
package main
