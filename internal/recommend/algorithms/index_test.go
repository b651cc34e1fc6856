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
	"reflect"
	"testing"
)

func buildTestIndex(t *testing.T, profiles []string) (*Vectorizer, *Index) {
	t.Helper()

	v := NewVectorizer(smallCorpusConfig())
	m, err := v.Fit(profiles)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	ix := NewIndex()
	if err := ix.Build(m); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return v, ix
}

func TestIndex_Query(t *testing.T) {
	t.Parallel()

	profiles := []string{
		"genomics sequencing",
		"machine learning bioinformatics genomics",
		"protein folding",
		"machine learning",
	}
	v, ix := buildTestIndex(t, profiles)
	ctx := context.Background()

	q, err := v.Transform("machine learning bioinformatics genomics")
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	neighbors, err := ix.Query(ctx, q, 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(neighbors) != len(profiles) {
		t.Fatalf("Query() returned %d neighbors, want %d (k clamped to corpus)", len(neighbors), len(profiles))
	}
	if neighbors[0].Index != 1 {
		t.Errorf("nearest = %d, want 1", neighbors[0].Index)
	}
	if neighbors[0].Distance > 1e-9 {
		t.Errorf("self distance = %g, want ~0", neighbors[0].Distance)
	}
	for i := 1; i < len(neighbors); i++ {
		if neighbors[i].Distance < neighbors[i-1].Distance {
			t.Errorf("neighbors not ascending at %d: %v", i, neighbors)
		}
	}
	// "protein folding" shares nothing with the query.
	last := neighbors[len(neighbors)-1]
	if last.Index != 2 || math.Abs(last.Distance-1) > 1e-12 {
		t.Errorf("farthest = %+v, want {2 1}", last)
	}
}

func TestIndex_QueryErrors(t *testing.T) {
	t.Parallel()

	v, ix := buildTestIndex(t, []string{"alpha beta", "gamma delta"})
	q, _ := v.Transform("alpha")
	ctx := context.Background()

	if _, err := ix.Query(ctx, q, 0); !errors.Is(err, ErrInvalidK) {
		t.Errorf("k=0 error = %v, want ErrInvalidK", err)
	}
	if _, err := ix.Query(ctx, q, -3); !errors.Is(err, ErrInvalidK) {
		t.Errorf("k<0 error = %v, want ErrInvalidK", err)
	}
	if _, err := NewIndex().Query(ctx, q, 1); !errors.Is(err, ErrModelNotLoaded) {
		t.Errorf("unbuilt error = %v, want ErrModelNotLoaded", err)
	}

	wrongDim := SparseVector{Dim: q.Dim + 1}
	if _, err := ix.Query(ctx, wrongDim, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("dim mismatch error = %v, want ErrDimensionMismatch", err)
	}
}

func TestIndex_TopKOne(t *testing.T) {
	t.Parallel()

	v, ix := buildTestIndex(t, []string{"alpha beta", "gamma delta", "alpha gamma"})
	q, _ := v.Transform("gamma delta")

	neighbors, err := ix.Query(context.Background(), q, 1)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(neighbors) != 1 || neighbors[0].Index != 1 {
		t.Errorf("Query(k=1) = %v, want [{1 ~0}]", neighbors)
	}
}

func TestIndex_EmptyMatrix(t *testing.T) {
	t.Parallel()

	ix := NewIndex()
	if err := ix.Build(&Matrix{Dim: 4}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	neighbors, err := ix.Query(context.Background(), SparseVector{Dim: 4}, 5)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(neighbors) != 0 {
		t.Errorf("Query() = %v, want empty", neighbors)
	}
}

func TestIndex_TiesOrderedByPosition(t *testing.T) {
	t.Parallel()

	v, ix := buildTestIndex(t, []string{"alpha beta", "gamma", "alpha beta", "alpha beta"})
	q, _ := v.Transform("alpha beta")

	neighbors, err := ix.Query(context.Background(), q, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	got := []int{neighbors[0].Index, neighbors[1].Index, neighbors[2].Index}
	if want := []int{0, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("tie order = %v, want %v", got, want)
	}
}

func TestIndex_ParallelMatchesSerial(t *testing.T) {
	t.Parallel()

	profiles := make([]string, 3000)
	for i := range profiles {
		profiles[i] = fmt.Sprintf("topic%d topic%d shared", i%37, i%11)
	}

	v := NewVectorizer(smallCorpusConfig())
	m, err := v.Fit(profiles)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	parallel := NewIndex()
	parallel.numWorkers = 4
	serial := NewIndex()
	serial.numWorkers = 1
	if err := parallel.Build(m); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := serial.Build(m); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	q, _ := v.Transform("topic5 topic3")
	a, err := parallel.Query(context.Background(), q, 25)
	if err != nil {
		t.Fatalf("parallel Query() error = %v", err)
	}
	b, err := serial.Query(context.Background(), q, 25)
	if err != nil {
		t.Fatalf("serial Query() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("parallel and serial results differ:\n%v\n%v", a, b)
	}
}

func TestIndex_CancelledContext(t *testing.T) {
	t.Parallel()

	v, ix := buildTestIndex(t, []string{"alpha beta", "gamma delta"})
	q, _ := v.Transform("alpha")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ix.Query(ctx, q, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Query() error = %v, want context.Canceled", err)
	}
}

func TestMatrix_Validate(t *testing.T) {
	tests := []struct {
		name    string
		matrix  *Matrix
		wantErr bool
	}{
		{
			name:   "valid",
			matrix: &Matrix{Dim: 3, Rows: []SparseVector{{Indices: []int32{0, 2}, Values: []float64{0.6, 0.8}, Dim: 3}}},
		},
		{
			name:    "row dim differs",
			matrix:  &Matrix{Dim: 3, Rows: []SparseVector{{Dim: 2}}},
			wantErr: true,
		},
		{
			name:    "unsorted indices",
			matrix:  &Matrix{Dim: 3, Rows: []SparseVector{{Indices: []int32{2, 0}, Values: []float64{1, 1}, Dim: 3}}},
			wantErr: true,
		},
		{
			name:    "index out of range",
			matrix:  &Matrix{Dim: 3, Rows: []SparseVector{{Indices: []int32{3}, Values: []float64{1}, Dim: 3}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.matrix.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrDimensionMismatch) {
				t.Errorf("Validate() error = %v, want ErrDimensionMismatch", err)
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{name: "both empty", a: nil, b: nil, want: 0},
		{name: "identical", a: []string{"x", "y"}, b: []string{"y", "x"}, want: 1},
		{name: "two of four", a: []string{"a", "b", "c"}, b: []string{"b", "c", "d"}, want: 0.5},
		{name: "disjoint", a: []string{"a"}, b: []string{"b"}, want: 0},
		{name: "duplicates ignored", a: []string{"a", "a", "b"}, b: []string{"a"}, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); got != tt.want {
				t.Errorf("Jaccard(a, b) = %v, want %v", got, tt.want)
			}
			if got := Jaccard(tt.b, tt.a); got != tt.want {
				t.Errorf("Jaccard(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSparseVector_Dot(t *testing.T) {
	a := SparseVector{Indices: []int32{0, 2, 5}, Values: []float64{1, 2, 3}, Dim: 6}
	b := SparseVector{Indices: []int32{2, 3, 5}, Values: []float64{4, 7, 0.5}, Dim: 6}

	if got := a.Dot(b); got != 9.5 {
		t.Errorf("a.Dot(b) = %v, want 9.5", got)
	}
	if got := b.Dot(a); got != 9.5 {
		t.Errorf("b.Dot(a) = %v, want 9.5", got)
	}
	if got := a.Dot(SparseVector{Dim: 6}); got != 0 {
		t.Errorf("dot with empty vector = %v, want 0", got)
	}
}

func TestIndex_DistanceIsOneMinusCosine(t *testing.T) {
	t.Parallel()

	profiles := []string{
		"genomics sequencing",
		"machine learning bioinformatics genomics",
		"protein folding genomics",
		"machine learning",
	}
	v, ix := buildTestIndex(t, profiles)
	q, err := v.Transform("machine learning genomics")
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	neighbors, err := ix.Query(context.Background(), q, len(profiles))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	for _, nb := range neighbors {
		row := ix.rows[nb.Index]
		want := 1.0
		if row.Norm() > 0 && q.Norm() > 0 {
			want = 1 - row.Dot(q)/(row.Norm()*q.Norm())
		}
		if math.Abs(nb.Distance-want) > 1e-12 {
			t.Errorf("row %d distance = %v, want %v", nb.Index, nb.Distance, want)
		}
	}
}

func TestIndex_QueryRejectsMalformedVector(t *testing.T) {
	t.Parallel()

	v, ix := buildTestIndex(t, []string{"alpha beta", "gamma delta", "alpha gamma"})
	dim := v.Dim()
	if dim < 2 {
		t.Fatalf("fixture vocabulary size = %d, want >= 2", dim)
	}

	tests := []struct {
		name string
		vec  SparseVector
	}{
		{"unsorted indices", SparseVector{Indices: []int32{1, 0}, Values: []float64{1, 1}, Dim: dim}},
		{"index out of range", SparseVector{Indices: []int32{int32(dim)}, Values: []float64{1}, Dim: dim}},
		{"values shorter than indices", SparseVector{Indices: []int32{0, 1}, Values: []float64{1}, Dim: dim}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ix.Query(context.Background(), tt.vec, 1); !errors.Is(err, ErrDimensionMismatch) {
				t.Errorf("Query() error = %v, want ErrDimensionMismatch", err)
			}
		})
	}
}
