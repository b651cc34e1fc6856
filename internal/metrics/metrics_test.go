// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantError bool
	}{
		{"successful search", "SELECT", "author_interests", nil, false},
		{"successful import", "INSERT", "authors", nil, false},
		{"failed update", "UPDATE", "users", errors.New("connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errType := ""
			if tt.err != nil {
				errType = tt.err.Error()
			}
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, errType))

			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)

			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, errType))
			if tt.wantError && after-before != 1 {
				t.Errorf("error counter delta = %v, want 1", after-before)
			}
		})
	}
}

// TestRecordDBQuery_ErrorTruncation verifies error labels are truncated at 50 chars
func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	long := strings.Repeat("x", 120)
	RecordDBQuery("SELECT", "truncation_test", time.Millisecond, errors.New(long))

	got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "truncation_test", long[:50]))
	if got != 1 {
		t.Errorf("truncated label counter = %v, want 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("POST", "/recommend", "200")
	before := testutil.ToFloat64(c)

	RecordAPIRequest("POST", "/recommend", "200", 12*time.Millisecond)
	RecordAPIRequest("POST", "/recommend", "200", 8*time.Millisecond)

	if got := testutil.ToFloat64(c) - before; got != 2 {
		t.Errorf("request counter delta = %v, want 2", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	for i := 0; i < 10; i++ {
		TrackActiveRequest(true)
	}
	for i := 0; i < 4; i++ {
		TrackActiveRequest(false)
	}
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 6 {
		t.Errorf("active delta = %v, want 6", got)
	}
	for i := 0; i < 6; i++ {
		TrackActiveRequest(false)
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	c := APIRateLimitHits.WithLabelValues("/recommend")
	before := testutil.ToFloat64(c)
	RecordRateLimitHit("/recommend")
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("rate limit delta = %v, want 1", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		outcome      string
		filtered     int
		wantFiltered float64
	}{
		{OutcomeSuccess, 7, 7},
		{OutcomeCacheHit, 3, 3},
		{OutcomeInvalidInput, 5, 0},
		{OutcomeUnavailable, 5, 0},
		{OutcomeError, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			requests := RecommendRequests.WithLabelValues(tt.outcome)
			beforeReq := testutil.ToFloat64(requests)
			beforeFiltered := testutil.ToFloat64(RecommendCandidatesFiltered)

			RecordRecommendation(tt.outcome, 3*time.Millisecond, tt.filtered, 10)

			if got := testutil.ToFloat64(requests) - beforeReq; got != 1 {
				t.Errorf("requests delta = %v, want 1", got)
			}
			if got := testutil.ToFloat64(RecommendCandidatesFiltered) - beforeFiltered; got != tt.wantFiltered {
				t.Errorf("filtered delta = %v, want %v", got, tt.wantFiltered)
			}
		})
	}
}

func TestSetModelInfo(t *testing.T) {
	SetModelInfo(true, 1200, 1000)
	if testutil.ToFloat64(ModelLoaded) != 1 ||
		testutil.ToFloat64(ModelCorpusSize) != 1200 ||
		testutil.ToFloat64(ModelVocabularySize) != 1000 {
		t.Error("loaded model gauges not set")
	}

	SetModelInfo(false, 1200, 1000)
	if testutil.ToFloat64(ModelLoaded) != 0 || testutil.ToFloat64(ModelCorpusSize) != 0 {
		t.Error("unloaded model must reset gauges")
	}
}

func TestRecordTrainingRun(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("empty vocabulary"), "failure"},
		{"timeout", fmt.Errorf("fit: %w", context.DeadlineExceeded), "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := TrainingRuns.WithLabelValues(tt.status)
			before := testutil.ToFloat64(c)
			RecordTrainingRun(2*time.Second, tt.err)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("%s delta = %v, want 1", tt.status, got)
			}
		})
	}

	if testutil.ToFloat64(TrainingLastSuccess) == 0 {
		t.Error("last success timestamp not set")
	}
}

func TestRecordImport(t *testing.T) {
	imported := ImportRows.WithLabelValues("author_interests", "imported")
	skipped := ImportRows.WithLabelValues("author_interests", "skipped")
	dup := ImportRows.WithLabelValues("author_interests", "duplicate")
	bi, bs, bd := testutil.ToFloat64(imported), testutil.ToFloat64(skipped), testutil.ToFloat64(dup)

	RecordImport("author_interests", 40, 2, 1)

	if testutil.ToFloat64(imported)-bi != 40 || testutil.ToFloat64(skipped)-bs != 2 || testutil.ToFloat64(dup)-bd != 1 {
		t.Error("import row counters not updated")
	}
}

func TestRecordCacheExpired(t *testing.T) {
	c := CacheExpired.WithLabelValues("recommend")
	before := testutil.ToFloat64(c)
	RecordCacheExpired("recommend", 0)
	RecordCacheExpired("recommend", 4)
	if got := testutil.ToFloat64(c) - before; got != 4 {
		t.Errorf("expired delta = %v, want 4", got)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	const name = "breaker-test"
	InitBreaker(name)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(name)); got != 0 {
		t.Errorf("initial state = %v, want 0", got)
	}

	steps := []struct {
		from, to string
		want     float64
	}{
		{"closed", "open", 2},
		{"open", "half-open", 1},
		{"half-open", "closed", 0},
	}
	for _, s := range steps {
		RecordBreakerTransition(name, s.from, s.to)
		if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(name)); got != s.want {
			t.Errorf("after %s->%s state = %v, want %v", s.from, s.to, got, s.want)
		}
		if got := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues(name, s.from, s.to)); got != 1 {
			t.Errorf("%s->%s transitions = %v, want 1", s.from, s.to, got)
		}
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	const goroutines = 50

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				RecordDBQuery("SELECT", "concurrent", time.Millisecond, nil)
				RecordAPIRequest("GET", "/health", "200", time.Millisecond)
				RecordRecommendation(OutcomeSuccess, time.Millisecond, 1, 10)
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}
	wg.Wait()
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		DBQueryDuration,
		DBQueryErrors,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		RecommendRequests,
		RecommendDuration,
		RecommendCandidatesFiltered,
		RecommendResults,
		ModelLoaded,
		ModelCorpusSize,
		ModelVocabularySize,
		GraphBuildDuration,
		TrainingDuration,
		TrainingRuns,
		TrainingLastSuccess,
		ImportRows,
		CacheExpired,
		CircuitBreakerState,
		CircuitBreakerTransitions,
		AppInfo,
		AppUptime,
	}

	for _, m := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordDBQuery("TEST", "test_table", time.Millisecond, nil)
	RecordGraphBuild(time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/search/authors", "200", 25*time.Millisecond)
	}
}

func BenchmarkRecordRecommendation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordRecommendation(OutcomeSuccess, 2*time.Millisecond, 3, 10)
	}
}
