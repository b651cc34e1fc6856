// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package algorithms

import (
	"container/heap"
	"context"
	"runtime"
	"sort"
	"sync"
)

// minParallelRows is the corpus size below which scoring stays on one goroutine.
const minParallelRows = 2048

// Values of IndexState for the exact index.
const (
	MetricCosine   = "cosine"
	AlgorithmBrute = "brute"
)

// IndexState is the serializable description of a built index. The vectors
// themselves live in the matrix artifact.
type IndexState struct {
	Metric    string
	Algorithm string
	Dim       int
	Size      int
}

// Index is an exact cosine-distance nearest-neighbor index.
type Index struct {
	rows       []SparseVector
	norms      []float64
	dim        int
	numWorkers int
	built      bool
}

// NewIndex creates an empty index. Scoring uses runtime.NumCPU() workers.
func NewIndex() *Index {
	return &Index{numWorkers: runtime.NumCPU()}
}

// Build indexes every row of the matrix. An empty matrix is valid and
// produces an index that answers every query with no neighbors.
func (ix *Index) Build(m *Matrix) error {
	if m == nil {
		return ErrEmptyCorpus
	}
	if err := m.Validate(); err != nil {
		return err
	}

	ix.rows = m.Rows
	ix.dim = m.Dim
	ix.norms = make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		ix.norms[i] = row.Norm()
	}
	ix.built = true
	return nil
}

// State describes the built index for persistence and load-time checks.
func (ix *Index) State() IndexState {
	return IndexState{
		Metric:    MetricCosine,
		Algorithm: AlgorithmBrute,
		Dim:       ix.dim,
		Size:      len(ix.rows),
	}
}

// IsBuilt reports whether Build has completed.
func (ix *Index) IsBuilt() bool {
	return ix != nil && ix.built
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.rows)
}

// Dim returns the vector dimensionality the index was built with.
func (ix *Index) Dim() int {
	if ix == nil {
		return 0
	}
	return ix.dim
}

// Query returns the min(k, Len()) nearest rows to v by cosine distance,
// ascending, ties broken by row position.
func (ix *Index) Query(ctx context.Context, v SparseVector, k int) ([]Neighbor, error) {
	if !ix.IsBuilt() {
		return nil, ErrModelNotLoaded
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if v.Dim != ix.dim {
		return nil, errorf(ErrDimensionMismatch, "query dim %d, index dim %d", v.Dim, ix.dim)
	}
	if err := v.validate(); err != nil {
		return nil, errorf(ErrDimensionMismatch, "query: %v", err)
	}
	if k > len(ix.rows) {
		k = len(ix.rows)
	}
	if k == 0 {
		return []Neighbor{}, nil
	}

	distances, err := ix.distances(ctx, v)
	if err != nil {
		return nil, err
	}
	return selectNearest(distances, k), nil
}

// distances scores every row against the query in parallel chunks.
func (ix *Index) distances(ctx context.Context, v SparseVector) ([]float64, error) {
	qNorm := v.Norm()

	out := make([]float64, len(ix.rows))
	score := func(start, end int) {
		for r := start; r < end; r++ {
			out[r] = ix.distance(r, v, qNorm)
		}
	}

	workers := ix.numWorkers
	if workers < 1 || len(ix.rows) < minParallelRows {
		workers = 1
	}
	if workers == 1 {
		score(0, len(ix.rows))
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		return out, nil
	}

	chunkSize := (len(ix.rows) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(ix.rows) {
			end = len(ix.rows)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			if ContextCancelled(ctx) {
				return
			}
			score(start, end)
		}(start, end)
	}
	wg.Wait()

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}
	return out, nil
}

// distance returns 1 - cos(row, query), clipped to [0, 2]. A zero vector on
// either side is at distance 1 from everything.
func (ix *Index) distance(r int, v SparseVector, qNorm float64) float64 {
	rNorm := ix.norms[r]
	if rNorm == 0 || qNorm == 0 {
		return 1
	}

	d := 1 - ix.rows[r].Dot(v)/(rNorm*qNorm)
	switch {
	case d < 0:
		return 0
	case d > 2:
		return 2
	default:
		return d
	}
}

// neighborHeap is a max-heap on (distance, index) keeping the k best.
type neighborHeap []Neighbor

func (h neighborHeap) Len() int { return len(h) }
func (h neighborHeap) Less(i, j int) bool {
	return farther(h[i], h[j])
}
func (h neighborHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}
func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// farther orders neighbors by descending distance, then descending index.
func farther(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.Index > b.Index
}

func selectNearest(distances []float64, k int) []Neighbor {
	h := make(neighborHeap, 0, k)
	for i, d := range distances {
		n := Neighbor{Index: i, Distance: d}
		if len(h) < k {
			heap.Push(&h, n)
			continue
		}
		if farther(h[0], n) {
			h[0] = n
			heap.Fix(&h, 0)
		}
	}

	result := []Neighbor(h)
	sort.Slice(result, func(i, j int) bool {
		return farther(result[j], result[i])
	})
	return result
}
