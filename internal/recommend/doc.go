// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package recommend ranks corpus authors as potential research collaborators.
//
// # Architecture
//
// A Model bundles the four artifacts produced by offline training: the author
// corpus, a fitted TF-IDF vectorizer, the corpus matrix and an exact cosine
// index over it. The Engine holds one immutable Model for the life of the
// process and answers requests in four steps:
//
//   - build a profile string from interests and publication keywords
//   - transform it into a sparse TF-IDF vector
//   - fetch top_k * OverFetchFactor nearest authors from the index
//   - blend similarity, productivity and diversity into a total score
//
// Candidates below MinSimilarity are dropped before scoring. Productivity and
// diversity are normalized by corpus maxima computed when the model is built.
//
// # Knowledge Graph
//
// GraphBuilder ranks users and authors by Jaccard overlap of their interest
// sets. When the engine is available its total score can raise, never lower,
// an author's graph score. Engine calls go through a circuit breaker so a
// failing engine degrades the graph to overlap-only scoring.
//
// # Usage
//
//	model, err := store.Load()
//	engine, err := recommend.NewEngine(model, recommend.DefaultConfig(), logger)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Interests: []string{"machine learning", "bioinformatics"},
//	    TopK:      10,
//	})
//
// # Errors
//
// Callers branch on ErrModelNotLoaded (no artifact set loaded),
// ErrInvalidInput (request can never succeed) and ErrArtifactLoad.
//
// # Thread Safety
//
// The engine is safe for concurrent use. The model is never mutated after
// load, counters are atomic and the response cache has its own lock.
package recommend
