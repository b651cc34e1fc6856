// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sample is one observed request.
type Sample struct {
	Route      string        `json:"route"`
	Method     string        `json:"method"`
	Duration   time.Duration `json:"duration"`
	StatusCode int           `json:"status_code"`
	Timestamp  time.Time     `json:"timestamp"`
}

// RouteStats aggregates the retained samples of one route.
type RouteStats struct {
	Route        string  `json:"route"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        int64   `json:"p50_ms"`
	P95MS        int64   `json:"p95_ms"`
	P99MS        int64   `json:"p99_ms"`
	MaxMS        int64   `json:"max_ms"`
}

// LatencyTracker keeps a ring of recent request samples keyed by chi route
// pattern and reports per-route percentiles. Safe for concurrent use.
type LatencyTracker struct {
	mu      sync.RWMutex
	samples []Sample
	next    int
	full    bool

	slow   time.Duration
	logger zerolog.Logger
}

// NewLatencyTracker retains up to capacity samples and warns about requests
// slower than slow. A zero slow disables the warning.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLatencyTracker(capacity int, slow time.Duration, logger zerolog.Logger) *LatencyTracker {
	if capacity < 1 {
		capacity = 1
	}
	return &LatencyTracker{
		samples: make([]Sample, capacity),
		slow:    slow,
		logger:  logger.With().Str("component", "latency").Logger(),
	}
}

// Record adds one sample, evicting the oldest when full.
func (t *LatencyTracker) Record(s Sample) {
	t.mu.Lock()
	t.samples[t.next] = s
	t.next = (t.next + 1) % len(t.samples)
	if t.next == 0 {
		t.full = true
	}
	t.mu.Unlock()

	if t.slow > 0 && s.Duration > t.slow {
		t.logger.Warn().
			Str("method", s.Method).
			Str("route", s.Route).
			Int64("duration_ms", s.Duration.Milliseconds()).
			Msg("slow request")
	}
}

// Len returns the number of retained samples.
func (t *LatencyTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.full {
		return len(t.samples)
	}
	return t.next
}

// Recent returns up to n samples, oldest first.
func (t *LatencyTracker) Recent(n int) []Sample {
	t.mu.RLock()
	defer t.mu.RUnlock()

	all := t.ordered()
	if n > len(all) {
		n = len(all)
	}
	out := make([]Sample, n)
	copy(out, all[len(all)-n:])
	return out
}

// ordered returns retained samples oldest first. Caller holds mu.
func (t *LatencyTracker) ordered() []Sample {
	if !t.full {
		return t.samples[:t.next]
	}
	out := make([]Sample, 0, len(t.samples))
	out = append(out, t.samples[t.next:]...)
	return append(out, t.samples[:t.next]...)
}

// Stats returns per-route statistics, busiest route first.
func (t *LatencyTracker) Stats() []RouteStats {
	t.mu.RLock()
	byRoute := make(map[string][]Sample)
	for _, s := range t.ordered() {
		key := s.Method + " " + s.Route
		byRoute[key] = append(byRoute[key], s)
	}
	t.mu.RUnlock()

	stats := make([]RouteStats, 0, len(byRoute))
	for route, samples := range byRoute {
		ms := make([]int64, len(samples))
		var sum, errs int64
		for i, s := range samples {
			ms[i] = s.Duration.Milliseconds()
			sum += ms[i]
			if s.StatusCode >= http.StatusInternalServerError {
				errs++
			}
		}
		sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })

		stats = append(stats, RouteStats{
			Route:        route,
			RequestCount: int64(len(ms)),
			ErrorCount:   errs,
			AvgMS:        float64(sum) / float64(len(ms)),
			P50MS:        percentile(ms, 0.50),
			P95MS:        percentile(ms, 0.95),
			P99MS:        percentile(ms, 0.99),
			MaxMS:        ms[len(ms)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Route < stats[j].Route
	})
	return stats
}

// Middleware records a sample for every request.
func (t *LatencyTracker) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(sw, r)

		t.Record(Sample{
			Route:      RoutePattern(r),
			Method:     r.Method,
			Duration:   time.Since(start),
			StatusCode: sw.statusCode,
			Timestamp:  start,
		})
	}
}

// percentile picks the nearest-rank value from an ascending slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
