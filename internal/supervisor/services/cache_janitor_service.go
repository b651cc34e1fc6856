// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/scholarmatch/internal/cache"
	"github.com/tomtom215/scholarmatch/internal/metrics"
)

// defaultCleanupInterval applies when the configured interval is not positive.
const defaultCleanupInterval = time.Minute

// CacheJanitorService periodically purges expired entries from a cache.
// Entries also expire lazily on read; the sweep bounds the memory held by
// keys that are never requested again.
type CacheJanitorService struct {
	cacheName string
	cache     cache.Expirer
	interval  time.Duration
	logger    zerolog.Logger
	name      string
}

// NewCacheJanitorService creates a janitor for c. cacheName labels the
// cache_expired_entries_total metric.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(cacheName string, c cache.Expirer, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	return &CacheJanitorService{
		cacheName: cacheName,
		cache:     c,
		interval:  interval,
		logger:    logger.With().Str("service", "cache-janitor").Str("cache", cacheName).Logger(),
		name:      "cache-janitor-" + cacheName,
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cache janitor starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache janitor shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes expired entries once.
func (s *CacheJanitorService) sweep() int {
	removed := s.cache.CleanupExpired()
	metrics.RecordCacheExpired(s.cacheName, removed)
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("expired cache entries purged")
	}
	return removed
}

// String returns the service name for logging.
func (s *CacheJanitorService) String() string {
	return s.name
}
