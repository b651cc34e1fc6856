// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Checkpointer flushes the DuckDB WAL into the database file.
// Satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// maxCheckpointFailures is how many consecutive failed checkpoints are
// tolerated before Serve returns and the supervisor restarts the service.
const maxCheckpointFailures = 3

// CheckpointService runs CHECKPOINT on an interval and once more on
// shutdown, so interest updates written through the API reach the
// database file.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCheckpointService creates the checkpoint loop. interval must be
// positive.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCheckpointService(db Checkpointer, interval time.Duration, logger zerolog.Logger) *CheckpointService {
	return &CheckpointService{
		db:       db,
		interval: interval,
		logger:   logger.With().Str("service", "checkpoint").Logger(),
		name:     "duckdb-checkpoint",
	}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("checkpoint interval must be positive, got %v", s.interval)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			// The serve context is gone; the final flush gets a short one.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.db.Checkpoint(flushCtx); err != nil {
				s.logger.Warn().Err(err).Msg("final checkpoint failed")
			}
			cancel()
			return ctx.Err()

		case <-ticker.C:
			if err := s.db.Checkpoint(ctx); err != nil {
				failures++
				s.logger.Warn().Err(err).Int("consecutive_failures", failures).Msg("checkpoint failed")
				if failures >= maxCheckpointFailures {
					return fmt.Errorf("checkpoint failed %d times in a row: %w", failures, err)
				}
				continue
			}
			failures = 0
			s.logger.Debug().Msg("checkpoint complete")
		}
	}
}

// String returns the service name for logging.
func (s *CheckpointService) String() string {
	return s.name
}
