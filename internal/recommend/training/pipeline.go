// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package training

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/scholarmatch/internal/metrics"
	"github.com/tomtom215/scholarmatch/internal/recommend"
	"github.com/tomtom215/scholarmatch/internal/recommend/algorithms"
	"github.com/tomtom215/scholarmatch/internal/recommend/profile"
	"github.com/tomtom215/scholarmatch/internal/recommend/storage"
)

// ErrTrainingInProgress is returned when Run is called while another run of
// the same pipeline is active.
var ErrTrainingInProgress = errors.New("training already in progress")

// CorpusSource provides the author corpus to train on.
type CorpusSource interface {
	LoadCorpus(ctx context.Context) ([]recommend.AuthorRecord, error)
	Name() string
}

// Config contains training parameters.
type Config struct {
	// Vectorizer configures the TF-IDF fit.
	Vectorizer algorithms.VectorizerConfig `json:"vectorizer"`

	// Timeout bounds a whole run.
	// Default: 30m.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the production training configuration.
func DefaultConfig() Config {
	return Config{
		Vectorizer: algorithms.DefaultVectorizerConfig(),
		Timeout:    30 * time.Minute,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) Validate() error {
	if err := c.Vectorizer.Validate(); err != nil {
		return fmt.Errorf("vectorizer: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// Result describes a completed RunAndSave.
type Result struct {
	Model    *recommend.Model
	Manifest *storage.Manifest
	Source   string
	Duration time.Duration
}

// Pipeline fits the vector space and neighbor index over an author corpus.
type Pipeline struct {
	config Config
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewPipeline creates a training pipeline.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPipeline(cfg Config, logger zerolog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid training config: %w", err)
	}
	return &Pipeline{
		config: cfg,
		logger: logger.With().Str("component", "training").Logger(),
	}, nil
}

// Run builds one profile per author, fits the vectorizer and builds the
// index. The returned model has no version until it is saved.
func (p *Pipeline) Run(ctx context.Context, corpus []recommend.AuthorRecord) (*recommend.Model, error) {
	if !p.mu.TryLock() {
		return nil, ErrTrainingInProgress
	}
	defer p.mu.Unlock()

	start := time.Now()
	model, err := p.run(ctx, corpus)
	metrics.RecordTrainingRun(time.Since(start), err)
	return model, err
}

func (p *Pipeline) run(ctx context.Context, corpus []recommend.AuthorRecord) (*recommend.Model, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	p.logger.Info().Int("authors", len(corpus)).Msg("starting model training")

	profiles := AuthorProfiles(corpus)
	empty := 0
	for _, pr := range profiles {
		if pr == "" {
			empty++
		}
	}
	if empty > 0 {
		p.logger.Warn().Int("authors", empty).Msg("authors with empty profiles")
	}

	vec := algorithms.NewVectorizer(p.config.Vectorizer)
	matrix, err := vec.Fit(profiles)
	if err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, cols := matrix.Shape()
	p.logger.Info().
		Int("rows", rows).
		Int("cols", cols).
		Msg("TF-IDF vectors created")

	index := algorithms.NewIndex()
	if err := index.Build(matrix); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.logger.Info().Int("size", index.Len()).Msg("neighbor index built")

	model, err := recommend.NewModel(corpus, vec, matrix, index)
	if err != nil {
		return nil, fmt.Errorf("assemble model: %w", err)
	}
	model.TrainedAt = time.Now().UTC()
	return model, nil
}

// RunAndSave loads the corpus from source, trains and persists the artifact
// set to store.
func (p *Pipeline) RunAndSave(ctx context.Context, source CorpusSource, store *storage.ArtifactStore) (*Result, error) {
	start := time.Now()

	corpus, err := source.LoadCorpus(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus from %s: %w", source.Name(), err)
	}
	p.logger.Info().
		Str("source", source.Name()).
		Int("authors", len(corpus)).
		Msg("loaded training data")

	model, err := p.Run(ctx, corpus)
	if err != nil {
		return nil, err
	}

	manifest, err := store.Save(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("save artifacts: %w", err)
	}
	model.Version = manifest.ModelVersion

	result := &Result{
		Model:    model,
		Manifest: manifest,
		Source:   source.Name(),
		Duration: time.Since(start),
	}
	p.logger.Info().
		Str("version", manifest.ModelVersion).
		Str("path", store.Dir()).
		Int64("duration_ms", result.Duration.Milliseconds()).
		Msg("model training complete")
	return result, nil
}

// AuthorProfiles builds the offline profile string for every author, in
// corpus order.
func AuthorProfiles(corpus []recommend.AuthorRecord) []string {
	profiles := make([]string, len(corpus))
	for i := range corpus {
		a := &corpus[i]
		main := ""
		if a.MainInterest != nil {
			main = *a.MainInterest
		}
		profiles[i] = profile.BuildAuthor(
			strings.Join(a.Interests, "|"),
			strings.Join(a.Keywords, "|"),
			main,
		)
	}
	return profiles
}
