// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors shared with the recommend package.
var (
	// ErrModelNotLoaded is returned when a transform or query is attempted
	// before the vectorizer was fitted or the index was built.
	ErrModelNotLoaded = errors.New("model not loaded")

	// ErrEmptyCorpus is returned when fitting on zero profiles.
	ErrEmptyCorpus = errors.New("cannot fit on an empty profile collection")

	// ErrEmptyVocabulary is returned when document-frequency pruning leaves no terms.
	ErrEmptyVocabulary = errors.New("no terms remain after pruning")

	// ErrInvalidDFRange is returned when max_df resolves to fewer documents than min_df.
	ErrInvalidDFRange = errors.New("max_df corresponds to fewer documents than min_df")

	// ErrInvalidK is returned for a non-positive neighbor count.
	ErrInvalidK = errors.New("k must be positive")

	// ErrDimensionMismatch is returned when a vector's dimensionality does
	// not match the vocabulary it is compared against.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// SparseVector is a feature vector with strictly increasing Indices.
type SparseVector struct {
	// Indices are vocabulary positions with non-zero weight.
	Indices []int32

	// Values holds the weight for the index at the same position.
	Values []float64

	// Dim is the vocabulary size of the vectorizer that produced the vector.
	Dim int
}

// NNZ returns the number of stored (non-zero) entries.
func (v SparseVector) NNZ() int {
	return len(v.Indices)
}

// Norm returns the Euclidean norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two sparse vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// validate checks the layout Dot relies on: one value per index and
// strictly increasing indices below Dim.
func (v SparseVector) validate() error {
	if len(v.Indices) != len(v.Values) {
		return fmt.Errorf("%d indices and %d values", len(v.Indices), len(v.Values))
	}
	prev := int32(-1)
	for _, idx := range v.Indices {
		if idx <= prev || int(idx) >= v.Dim {
			return fmt.Errorf("out-of-order or out-of-range index %d", idx)
		}
		prev = idx
	}
	return nil
}

// Matrix is the row-major result of fitting a vectorizer over a corpus.
type Matrix struct {
	// Rows holds one vector per profile, in corpus order.
	Rows []SparseVector

	// Dim is the shared vocabulary size.
	Dim int
}

// Len returns the number of rows.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

// Shape returns rows x columns, matching the way training logs the matrix.
func (m *Matrix) Shape() (rows, cols int) {
	if m == nil {
		return 0, 0
	}
	return len(m.Rows), m.Dim
}

// Validate checks that every row agrees with the matrix dimension and has
// sorted, in-range indices.
func (m *Matrix) Validate() error {
	for r, row := range m.Rows {
		if row.Dim != m.Dim {
			return errorf(ErrDimensionMismatch, "row %d has dim %d, matrix dim %d", r, row.Dim, m.Dim)
		}
		if err := row.validate(); err != nil {
			return errorf(ErrDimensionMismatch, "row %d: %v", r, err)
		}
	}
	return nil
}

// Neighbor is one entry of a NeighborResult.
type Neighbor struct {
	// Index is the corpus row position.
	Index int

	// Distance is the cosine distance in [0, 2].
	Distance float64
}

// NeighborSearcher is the contract the ranking engine and the artifact
// store hold a nearest-neighbor index by. The exact Index implements it; an
// approximate index may replace it.
type NeighborSearcher interface {
	// Query returns up to k neighbors ordered by ascending distance.
	Query(ctx context.Context, v SparseVector, k int) ([]Neighbor, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Dim returns the dimensionality of the indexed vectors.
	Dim() int

	// IsBuilt reports whether the index can answer queries.
	IsBuilt() bool

	// State describes the index for persistence.
	State() IndexState
}

// Jaccard computes |A ∩ B| / |A ∪ B| over the distinct members of a and b.
// Returns 0 when the union is empty.
func Jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Compile-time interface assertion.
var _ NeighborSearcher = (*Index)(nil)
