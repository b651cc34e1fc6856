// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package database provides DuckDB-backed storage for registered users,
// external authors and their curated interests.
//
// # Architecture
//
// The package is organized into several files:
//   - database.go: connection lifecycle (open, initialize, close)
//   - database_schema.go: base tables, sequences and indexes
//   - migrations.go: versioned schema migrations tracked in schema_migrations
//   - database_connection.go: pool sizing and error classification
//   - database_utils.go: context defaults, checkpoints and record counts
//   - query_helpers.go: filter builder and generic row scanning
//   - users.go: user lookup, search and interest updates
//   - authors.go: author search, interest rows and publications
//   - import.go: CSV imports of author interests and publications
//   - corpus.go: training corpus source and knowledge graph entity pool
//
// # Tables
//
//   - users: registered users; interests_list holds a comma-separated list
//   - authors: one row per publication of an external author
//   - author_interests: curated interest profile per author, unique author_id
//   - user_publications: publications attached to registered users
//
// # Usage Example
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	users, err := db.SearchUsers(ctx, "ivan", 10)
//
// # Thread Safety
//
// DB is safe for concurrent use. database/sql manages the connection pool
// and DuckDB serializes writers internally.
//
// # Errors
//
// Lookups return ErrNotFound, wrapped with the missing key. Inserts that
// violate a unique column return ErrDuplicate.
package database
