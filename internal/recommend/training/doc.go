// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package training builds a recommendation model from an author corpus.
//
// A run builds one profile string per author (interests, keywords and main
// interest), fits the TF-IDF vectorizer over all profiles and indexes the
// resulting rows for cosine neighbor search. RunAndSave then persists the
// result through a storage.ArtifactStore so the server can load it on start.
//
// Corpora come from a CorpusSource. CSVSource reads the
// authors_scientific_interests.csv export directly; the database package
// provides a source backed by the author_interests table.
//
//	p, err := training.NewPipeline(training.DefaultConfig(), logger)
//	result, err := p.RunAndSave(ctx, &training.CSVSource{Path: path}, store)
//
// Only one run per Pipeline may be active at a time; a concurrent call
// returns ErrTrainingInProgress.
package training
