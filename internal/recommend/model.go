// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/scholarmatch/internal/recommend/algorithms"
)

// Model is a loaded model artifact set. It is immutable after NewModel and
// safe to share between goroutines.
type Model struct {
	// Corpus is the author table in matrix row order.
	Corpus []AuthorRecord

	// Vectorizer is the fitted TF-IDF vectorizer.
	Vectorizer *algorithms.Vectorizer

	// Matrix holds one TF-IDF row per corpus author.
	Matrix *algorithms.Matrix

	// Index answers nearest-neighbor queries over Matrix.
	Index algorithms.NeighborSearcher

	// Version identifies the artifact set.
	Version string

	// TrainedAt is when the artifact set was produced.
	TrainedAt time.Time

	maxArticles  int
	maxInterests int
}

// NewModel checks that the four artifacts agree with each other and
// precomputes the corpus maxima used for score normalization.
func NewModel(corpus []AuthorRecord, vec *algorithms.Vectorizer, matrix *algorithms.Matrix, index algorithms.NeighborSearcher) (*Model, error) {
	if !vec.IsFitted() {
		return nil, fmt.Errorf("vectorizer: %w", ErrModelNotLoaded)
	}
	if matrix == nil {
		return nil, fmt.Errorf("matrix: %w", ErrModelNotLoaded)
	}
	if index == nil || !index.IsBuilt() {
		return nil, fmt.Errorf("index: %w", ErrModelNotLoaded)
	}

	if matrix.Len() != len(corpus) {
		return nil, fmt.Errorf("%w: matrix has %d rows, corpus has %d authors",
			algorithms.ErrDimensionMismatch, matrix.Len(), len(corpus))
	}
	if matrix.Dim != vec.Dim() {
		return nil, fmt.Errorf("%w: matrix dim %d, vocabulary size %d",
			algorithms.ErrDimensionMismatch, matrix.Dim, vec.Dim())
	}
	if index.Dim() != vec.Dim() || index.Len() != len(corpus) {
		return nil, fmt.Errorf("%w: index is %dx%d, expected %dx%d",
			algorithms.ErrDimensionMismatch, index.Len(), index.Dim(), len(corpus), vec.Dim())
	}

	m := &Model{
		Corpus:     corpus,
		Vectorizer: vec,
		Matrix:     matrix,
		Index:      index,
	}
	for i := range corpus {
		if a := corpus[i].Articles(); a > m.maxArticles {
			m.maxArticles = a
		}
		if n := corpus[i].InterestCount(); n > m.maxInterests {
			m.maxInterests = n
		}
	}
	return m, nil
}

// Size returns the number of corpus authors.
func (m *Model) Size() int {
	if m == nil {
		return 0
	}
	return len(m.Corpus)
}

// MaxArticles returns the corpus-wide maximum article count.
func (m *Model) MaxArticles() int {
	return m.maxArticles
}

// MaxInterests returns the corpus-wide maximum interest count.
func (m *Model) MaxInterests() int {
	return m.maxInterests
}
