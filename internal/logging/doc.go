// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package logging provides centralized zerolog-based structured logging for ScholarMatch.
//
// JSON output is the default for production; console output is available for
// development. Components receive a zerolog.Logger from their constructor and
// derive a component logger from it:
//
//	logger := base.With().Str("component", "recommend").Logger()
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("authors", n).Msg("Model loaded")
//	logging.Error().Err(err).Str("path", dir).Msg("Model load failed")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Context-Aware Logging
//
// The request ID middleware stores a request ID in the context; Ctx adds it
// (and any correlation ID) to every event:
//
//	logging.Ctx(ctx).Info().Str("author_id", id).Msg("Profile requested")
//
// # slog Adapter
//
// Suture reports supervisor events through sutureslog, which needs an
// slog.Logger. NewSlogLogger returns one backed by the global zerolog logger.
//
// # Output Formats
//
// JSON Format (Production):
//
//	{"level":"info","time":"2026-01-03T10:30:00Z","message":"Server starting","port":8000}
//
// Console Format (Development):
//
//	10:30:00 INF Server starting port=8000
//
// # Testing
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
package logging
