// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/scholarmatch/internal/models"
)

const authorColumns = `id, pmid, title, authors_original, citation, journal_book,
	publication_year, create_date, pmcid, nihms_id, doi, author_name, author_id`

const authorInterestColumns = `id, author_id, author_name, interests_list, keywords_list,
	interests_count, articles_count, main_interest, cluster`

func scanAuthor(row rowScanner) (models.Author, error) {
	var a models.Author
	err := row.Scan(&a.ID, &a.PMID, &a.Title, &a.AuthorsOriginal, &a.Citation, &a.JournalBook,
		&a.PublicationYear, &a.CreateDate, &a.PMCID, &a.NIHMSID, &a.DOI, &a.AuthorName, &a.AuthorID)
	return a, err
}

func scanAuthorInterest(row rowScanner) (models.AuthorInterest, error) {
	var ai models.AuthorInterest
	err := row.Scan(&ai.ID, &ai.AuthorID, &ai.AuthorName, &ai.InterestsList, &ai.KeywordsList,
		&ai.InterestsCount, &ai.ArticlesCount, &ai.MainInterest, &ai.Cluster)
	return ai, err
}

// SearchAuthors returns up to limit publication rows whose author_name
// contains query, ignoring case.
func (db *DB) SearchAuthors(ctx context.Context, query string, limit int) (authors []models.Author, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("search", TableAuthors, start, err) }()

	q, args := newQueryBuilder(`SELECT ` + authorColumns + ` FROM authors`).
		addContains(query, "author_name").
		addLimit(limit).
		build("ORDER BY id LIMIT ?")

	authors, err = queryAndScan(ctx, db.conn, q, args, func(rows *sql.Rows) (models.Author, error) {
		return scanAuthor(rows)
	})
	if err != nil {
		return nil, db.queryError("search authors", err)
	}
	return authors, nil
}

// AuthorInterestsByIDs returns the interest rows for the given author ids.
// Unknown ids are ignored.
func (db *DB) AuthorInterestsByIDs(ctx context.Context, authorIDs []string) (interests []models.AuthorInterest, err error) {
	if len(authorIDs) == 0 {
		return []models.AuthorInterest{}, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("list", TableAuthorInterests, start, err) }()

	q, args := newQueryBuilder(`SELECT ` + authorInterestColumns + ` FROM author_interests`).
		addIn("author_id", authorIDs).
		build("ORDER BY id")

	interests, err = queryAndScan(ctx, db.conn, q, args, func(rows *sql.Rows) (models.AuthorInterest, error) {
		return scanAuthorInterest(rows)
	})
	if err != nil {
		return nil, db.queryError("author interests by ids", err)
	}
	return interests, nil
}

// GetAuthorInterest returns the interest row of one author or ErrNotFound.
func (db *DB) GetAuthorInterest(ctx context.Context, authorID string) (interest *models.AuthorInterest, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("get", TableAuthorInterests, start, err) }()

	ai, err := scanAuthorInterest(db.conn.QueryRowContext(ctx,
		`SELECT `+authorInterestColumns+` FROM author_interests WHERE author_id = ?`, authorID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("author %q: %w", authorID, ErrNotFound)
	}
	if err != nil {
		return nil, db.queryError("get author interest", err)
	}
	return &ai, nil
}

// AuthorPublications returns every publication row of an author in import
// order.
func (db *DB) AuthorPublications(ctx context.Context, authorID string) (pubs []models.Author, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("list", TableAuthors, start, err) }()

	pubs, err = queryAndScan(ctx, db.conn,
		`SELECT `+authorColumns+` FROM authors WHERE author_id = ? ORDER BY id`,
		[]interface{}{authorID},
		func(rows *sql.Rows) (models.Author, error) {
			return scanAuthor(rows)
		})
	if err != nil {
		return nil, db.queryError("author publications", err)
	}
	return pubs, nil
}
