// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package storage persists the model artifact set produced by training.
//
// An artifact set is one directory holding four artifacts and a manifest:
//
//	model/
//	  corpus.json.gz     author records
//	  vectorizer.gob.gz  vocabulary, IDF weights and vectorizer config
//	  matrix.gob.gz      one sparse TF-IDF row per author
//	  index.gob.gz       index description used to verify the rebuilt index
//	  manifest.json      model version and per-artifact checksums
//
// Every artifact file is a gob-encoded envelope of ArtifactMetadata plus a
// gzip-compressed payload; the file extension names the payload encoding. The metadata carries a SHA-256 checksum of the
// uncompressed payload, which must also match the manifest entry.
//
// The corpus payload is JSON rather than gob because gob drops pointers to
// zero values, and a zero article count is not the same as an absent one.
//
// Load rebuilds the exact cosine index from the matrix, so an index artifact
// describing any other kind of index fails with ErrUnsupportedIndex.
//
// # Atomicity
//
// Save writes into a temporary sibling directory and renames it over the
// previous set. Load either returns a fully consistent *recommend.Model or a
// *recommend.ArtifactLoadError, never a partial model.
//
// # Usage
//
//	store := storage.NewArtifactStore(cfg.Recommend.ModelPath)
//	model, err := store.Load(ctx)
//	if errors.Is(err, recommend.ErrArtifactLoad) {
//	    // serve without /recommend
//	}
package storage
