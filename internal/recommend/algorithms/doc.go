// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package algorithms implements the vector space and neighbor search used by
// the collaborator recommendation engine.
//
// The package has two halves that are always used together:
//
//   - Vectorizer: a TF-IDF term-weighting transform with unigram and bigram
//     support, fit once over all author profiles and then used as a pure
//     function to turn any profile string into a SparseVector.
//   - Index: an exact (exhaustive) cosine-distance nearest-neighbor index
//     built over the matrix produced by Vectorizer.Fit.
//
// # Usage
//
//	vec := algorithms.NewVectorizer(algorithms.DefaultVectorizerConfig())
//	matrix, err := vec.Fit(profiles)
//	if err != nil {
//	    return err
//	}
//
//	idx := algorithms.NewIndex()
//	if err := idx.Build(matrix); err != nil {
//	    return err
//	}
//
//	q, err := vec.Transform("machine learning genomics")
//	neighbors, err := idx.Query(ctx, q, 50)
//
// # Vector Space
//
// Fitting follows the classic document-frequency pruning rules: a term must
// occur in at least MinDF profiles and in at most MaxDF of them (a proportion
// when MaxDF <= 1, an absolute count otherwise). The MaxFeatures terms with the
// highest corpus frequency survive. Vocabulary indices are assigned in lexical
// order, IDF is smoothed (ln((1+N)/(1+df)) + 1) and every vector is
// L2-normalized.
//
// # Neighbor Search
//
// Index.Query returns neighbors ordered by ascending cosine distance, ties
// broken by corpus position. Distances are computed in parallel chunks; the
// result is the true k nearest neighbors. Callers that need to substitute an
// approximate structure depend on the NeighborSearcher interface instead.
//
// # Thread Safety
//
// A fitted Vectorizer and a built Index are immutable and safe for concurrent
// use. Fit and Build must not race with Transform or Query on the same value.
package algorithms
