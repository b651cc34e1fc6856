// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package database

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/tomtom215/scholarmatch/internal/models"
	"github.com/tomtom215/scholarmatch/internal/recommend"
	"github.com/tomtom215/scholarmatch/internal/recommend/profile"
)

// LoadCorpus reads every author_interests row as a training record, in id
// order. DB satisfies training.CorpusSource.
func (db *DB) LoadCorpus(ctx context.Context) (corpus []recommend.AuthorRecord, err error) {
	start := time.Now()
	defer func() { observe("load_corpus", TableAuthorInterests, start, err) }()

	rows, err := queryAndScan(ctx, db.conn,
		`SELECT `+authorInterestColumns+` FROM author_interests ORDER BY id`, nil,
		func(rows *sql.Rows) (models.AuthorInterest, error) {
			return scanAuthorInterest(rows)
		})
	if err != nil {
		return nil, db.queryError("load corpus", err)
	}

	corpus = make([]recommend.AuthorRecord, len(rows))
	for i := range rows {
		corpus[i] = authorRecord(&rows[i])
	}
	return corpus, nil
}

// Name identifies the corpus source in logs.
func (db *DB) Name() string {
	return "duckdb:" + TableAuthorInterests
}

func authorRecord(ai *models.AuthorInterest) recommend.AuthorRecord {
	return recommend.AuthorRecord{
		ID:             ai.AuthorID,
		Name:           ai.AuthorName,
		Interests:      profile.SplitList(deref(ai.InterestsList), "|"),
		Keywords:       profile.SplitList(deref(ai.KeywordsList), "|"),
		InterestsCount: ai.InterestsCount,
		ArticlesCount:  ai.ArticlesCount,
		MainInterest:   ai.MainInterest,
		Cluster:        ai.Cluster,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// UserEntity returns the graph entity of a registered user or ErrNotFound.
func (db *DB) UserEntity(ctx context.Context, login string) (recommend.Entity, error) {
	u, err := db.GetUserByLogin(ctx, login)
	if err != nil {
		return recommend.Entity{}, err
	}
	return userEntity(u), nil
}

// AuthorEntity returns the graph entity of a corpus author or ErrNotFound.
func (db *DB) AuthorEntity(ctx context.Context, authorID string) (recommend.Entity, error) {
	ai, err := db.GetAuthorInterest(ctx, authorID)
	if err != nil {
		return recommend.Entity{}, err
	}
	return authorEntity(ai), nil
}

// GraphEntities returns every user and author as graph entities, users
// first, each group in id order.
func (db *DB) GraphEntities(ctx context.Context) (entities []recommend.Entity, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("graph_pool", TableUsers, start, err) }()

	users, err := queryAndScan(ctx, db.conn, `SELECT `+userColumns+` FROM users ORDER BY id`, nil,
		func(rows *sql.Rows) (models.User, error) {
			return scanUser(rows)
		})
	if err != nil {
		return nil, db.queryError("graph users", err)
	}
	authors, err := queryAndScan(ctx, db.conn,
		`SELECT `+authorInterestColumns+` FROM author_interests ORDER BY id`, nil,
		func(rows *sql.Rows) (models.AuthorInterest, error) {
			return scanAuthorInterest(rows)
		})
	if err != nil {
		return nil, db.queryError("graph authors", err)
	}

	entities = make([]recommend.Entity, 0, len(users)+len(authors))
	for i := range users {
		entities = append(entities, userEntity(&users[i]))
	}
	for i := range authors {
		entities = append(entities, authorEntity(&authors[i]))
	}
	return entities, nil
}

func userEntity(u *models.User) recommend.Entity {
	return recommend.Entity{
		Key:       "user:" + strconv.Itoa(u.ID),
		Kind:      recommend.EntityUser,
		ID:        u.ID,
		Name:      u.FullName(),
		Username:  u.Login,
		Interests: recommend.ParseInterests(deref(u.InterestsList)),
	}
}

func authorEntity(ai *models.AuthorInterest) recommend.Entity {
	name := deref(ai.AuthorName)
	if name == "" {
		name = "Unknown"
	}
	return recommend.Entity{
		Key:       "author:" + strconv.Itoa(ai.ID),
		Kind:      recommend.EntityAuthor,
		ID:        ai.ID,
		Name:      name,
		Username:  recommend.DeriveUsername(deref(ai.AuthorName)),
		AuthorID:  ai.AuthorID,
		Interests: recommend.ParseInterests(deref(ai.InterestsList)),
	}
}
