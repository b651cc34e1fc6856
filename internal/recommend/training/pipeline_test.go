// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package training

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/scholarmatch/internal/recommend"
	"github.com/tomtom215/scholarmatch/internal/recommend/algorithms"
	"github.com/tomtom215/scholarmatch/internal/recommend/storage"
)

// sliceSource serves a fixed corpus.
type sliceSource struct {
	corpus []recommend.AuthorRecord
	err    error
}

func (s *sliceSource) LoadCorpus(context.Context) ([]recommend.AuthorRecord, error) {
	return s.corpus, s.err
}

func (s *sliceSource) Name() string { return "slice" }

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Vectorizer.MinDF = 1
	cfg.Vectorizer.MaxDF = 1.0
	return cfg
}

func newTestPipeline(t *testing.T, cfg Config) *Pipeline {
	t.Helper()
	p, err := NewPipeline(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return p
}

func strPtr(s string) *string { return &s }

func trainingCorpus() []recommend.AuthorRecord {
	return []recommend.AuthorRecord{
		{ID: "A1", Interests: []string{"machine learning", "bioinformatics"}, ArticlesCount: intPtr(50), InterestsCount: intPtr(2)},
		{ID: "A2", Interests: []string{"protein folding"}, MainInterest: strPtr("structural biology")},
		{ID: "A3", Interests: []string{"astronomy"}, Keywords: []string{"galaxies", "dark matter"}},
	}
}

func TestNewPipeline_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero min_df", func(c *Config) { c.Vectorizer.MinDF = 0 }},
		{"bad ngram range", func(c *Config) { c.Vectorizer.NGramMax = 0 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if _, err := NewPipeline(cfg, zerolog.Nop()); err == nil {
				t.Error("NewPipeline() = nil error, want error")
			}
		})
	}
}

func TestAuthorProfiles(t *testing.T) {
	got := AuthorProfiles(trainingCorpus())
	want := []string{
		"machine learning bioinformatics",
		"protein folding structural biology",
		"astronomy galaxies dark matter",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("profile %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPipeline_Run(t *testing.T) {
	p := newTestPipeline(t, smallConfig())
	ctx := context.Background()

	model, err := p.Run(ctx, trainingCorpus())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if model.Size() != 3 {
		t.Errorf("Size() = %d, want 3", model.Size())
	}
	if rows, cols := model.Matrix.Shape(); rows != 3 || cols != model.Vectorizer.Dim() {
		t.Errorf("matrix shape = %dx%d", rows, cols)
	}
	if model.TrainedAt.IsZero() {
		t.Error("TrainedAt not set")
	}

	// Each author's own profile is its nearest neighbor.
	for i, pr := range AuthorProfiles(trainingCorpus()) {
		q, err := model.Vectorizer.Transform(pr)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		nb, err := model.Index.Query(ctx, q, 1)
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if nb[0].Index != i {
			t.Errorf("nearest to author %d = %d", i, nb[0].Index)
		}
	}
}

func TestPipeline_RunErrors(t *testing.T) {
	t.Run("empty corpus", func(t *testing.T) {
		p := newTestPipeline(t, smallConfig())
		if _, err := p.Run(context.Background(), nil); !errors.Is(err, algorithms.ErrEmptyCorpus) {
			t.Errorf("Run(nil) error = %v, want ErrEmptyCorpus", err)
		}
	})

	t.Run("production min_df on tiny corpus", func(t *testing.T) {
		p := newTestPipeline(t, DefaultConfig())
		_, err := p.Run(context.Background(), trainingCorpus())
		if !errors.Is(err, algorithms.ErrInvalidDFRange) && !errors.Is(err, algorithms.ErrEmptyVocabulary) {
			t.Errorf("Run() error = %v, want a document-frequency error", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		p := newTestPipeline(t, smallConfig())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := p.Run(ctx, trainingCorpus()); !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	})
}

func TestPipeline_RunInProgress(t *testing.T) {
	p := newTestPipeline(t, smallConfig())
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.Run(context.Background(), trainingCorpus()); !errors.Is(err, ErrTrainingInProgress) {
		t.Errorf("Run() error = %v, want ErrTrainingInProgress", err)
	}
}

func TestPipeline_RunAndSave(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "authors_scientific_interests.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	store := storage.NewArtifactStore(filepath.Join(dir, "model"))
	p := newTestPipeline(t, smallConfig())
	ctx := context.Background()

	result, err := p.RunAndSave(ctx, &CSVSource{Path: csvPath}, store)
	if err != nil {
		t.Fatalf("RunAndSave() error = %v", err)
	}
	if result.Model.Version == "" || result.Model.Version != result.Manifest.ModelVersion {
		t.Errorf("model version = %q, manifest = %q", result.Model.Version, result.Manifest.ModelVersion)
	}
	if !strings.HasPrefix(result.Source, "csv:") {
		t.Errorf("Source = %q", result.Source)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Size() != 3 || loaded.Version != result.Manifest.ModelVersion {
		t.Errorf("loaded model = %d authors, version %q", loaded.Size(), loaded.Version)
	}

	engine, err := recommend.NewEngine(loaded, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	resp, err := engine.Recommend(ctx, recommend.Request{Interests: []string{"cosmology"}, TopK: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].AuthorID != "A3" {
		t.Errorf("Recommend() = %+v, want A3", resp.Recommendations)
	}
}

func TestPipeline_RunAndSave_SourceError(t *testing.T) {
	p := newTestPipeline(t, smallConfig())
	store := storage.NewArtifactStore(filepath.Join(t.TempDir(), "model"))
	boom := errors.New("database unavailable")

	_, err := p.RunAndSave(context.Background(), &sliceSource{err: boom}, store)
	if !errors.Is(err, boom) {
		t.Errorf("RunAndSave() error = %v, want source error", err)
	}
	if store.Exists() {
		t.Error("artifact set written despite source failure")
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout != 30*time.Minute || cfg.Vectorizer.MaxFeatures != 1000 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
