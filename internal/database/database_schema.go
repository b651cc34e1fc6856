// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

/*
database_schema.go - Database Schema Management

Tables:
  - users: registered users; interests_list is added by migration 1
  - authors: one row per publication of an unregistered author
  - author_interests: curated interest profile per author, unique author_id
  - user_publications: publications of registered users, created by migration 2

Ids come from sequences so rows keep their import order.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// Table names, also used as metric labels.
const (
	TableUsers            = "users"
	TableAuthors          = "authors"
	TableAuthorInterests  = "author_interests"
	TableUserPublications = "user_publications"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the base tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY DEFAULT nextval('users_id_seq'),
			login VARCHAR NOT NULL UNIQUE,
			email VARCHAR NOT NULL UNIQUE,
			first_name VARCHAR NOT NULL,
			last_name VARCHAR NOT NULL,
			google_scholar_id VARCHAR,
			scopus_id VARCHAR,
			wos_id VARCHAR,
			rsci_id VARCHAR,
			orcid_id VARCHAR,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE SEQUENCE IF NOT EXISTS authors_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY DEFAULT nextval('authors_id_seq'),
			pmid VARCHAR,
			title VARCHAR,
			authors_original VARCHAR,
			citation VARCHAR,
			journal_book VARCHAR,
			publication_year VARCHAR,
			create_date VARCHAR,
			pmcid VARCHAR,
			nihms_id VARCHAR,
			doi VARCHAR,
			author_name VARCHAR,
			author_id VARCHAR
		)`,

		`CREATE SEQUENCE IF NOT EXISTS author_interests_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS author_interests (
			id INTEGER PRIMARY KEY DEFAULT nextval('author_interests_id_seq'),
			author_id VARCHAR NOT NULL UNIQUE,
			author_name VARCHAR,
			interests_list VARCHAR,
			keywords_list VARCHAR,
			interests_count INTEGER,
			articles_count INTEGER,
			main_interest VARCHAR,
			cluster INTEGER
		)`,
	}
}

// createIndexes creates lookup indexes. author_interests.author_id is
// already indexed by its UNIQUE constraint.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range []string{
		`CREATE INDEX IF NOT EXISTS idx_authors_author_id ON authors(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_user_publications_user_id ON user_publications(user_id)`,
	} {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}
