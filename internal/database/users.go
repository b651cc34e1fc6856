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
	"strings"
	"time"

	"github.com/tomtom215/scholarmatch/internal/models"
)

const userColumns = `id, login, email, first_name, last_name, google_scholar_id,
	scopus_id, wos_id, rsci_id, orcid_id, interests_list`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Login, &u.Email, &u.FirstName, &u.LastName,
		&u.GoogleScholarID, &u.ScopusID, &u.WosID, &u.RsciID, &u.OrcidID, &u.InterestsList)
	return u, err
}

// InsertUser creates a user and returns its id. A taken login or email
// yields ErrDuplicate.
func (db *DB) InsertUser(ctx context.Context, u *models.User) (id int, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("insert", TableUsers, start, err) }()

	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO users (login, email, first_name, last_name, google_scholar_id,
			scopus_id, wos_id, rsci_id, orcid_id, interests_list)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		u.Login, u.Email, u.FirstName, u.LastName, u.GoogleScholarID,
		u.ScopusID, u.WosID, u.RsciID, u.OrcidID, u.InterestsList,
	).Scan(&id)
	if err != nil {
		if isConstraintError(err) {
			return 0, fmt.Errorf("user %q: %w", u.Login, ErrDuplicate)
		}
		return 0, db.queryError("insert user", err)
	}
	return id, nil
}

// GetUserByLogin returns the user with the given login or ErrNotFound.
func (db *DB) GetUserByLogin(ctx context.Context, login string) (user *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("get", TableUsers, start, err) }()

	u, err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE login = ?`, login))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", login, ErrNotFound)
	}
	if err != nil {
		return nil, db.queryError("get user", err)
	}
	return &u, nil
}

// FindUserByExternalID returns the first user whose ORCID, Google Scholar,
// Scopus, WoS or RSCI id equals externalID. A nil user and nil error mean
// no match.
func (db *DB) FindUserByExternalID(ctx context.Context, externalID string) (user *models.User, err error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("find_external", TableUsers, start, err) }()

	u, err := scanUser(db.conn.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE orcid_id = ? OR google_scholar_id = ? OR scopus_id = ? OR wos_id = ? OR rsci_id = ?
		ORDER BY id
		LIMIT 1`,
		externalID, externalID, externalID, externalID, externalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, db.queryError("find user by external id", err)
	}
	return &u, nil
}

// UpdateUserInterests stores interests as a ", "-joined string, or NULL
// when the list is empty, and returns the updated user.
func (db *DB) UpdateUserInterests(ctx context.Context, login string, interests []string) (user *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("update", TableUsers, start, err) }()

	cleaned := make([]string, 0, len(interests))
	for _, in := range interests {
		if in = strings.TrimSpace(in); in != "" {
			cleaned = append(cleaned, in)
		}
	}
	var value *string
	if len(cleaned) > 0 {
		joined := strings.Join(cleaned, ", ")
		value = &joined
	}

	res, err := db.conn.ExecContext(ctx, `UPDATE users SET interests_list = ? WHERE login = ?`, value, login)
	if err != nil {
		return nil, db.queryError("update user interests", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, db.queryError("update user interests", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("user %q: %w", login, ErrNotFound)
	}
	return db.GetUserByLogin(ctx, login)
}

// SearchUsers returns up to limit users whose login contains query,
// ignoring case.
func (db *DB) SearchUsers(ctx context.Context, query string, limit int) (users []models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("search", TableUsers, start, err) }()

	q, args := newQueryBuilder(`SELECT ` + userColumns + ` FROM users`).
		addContains(query, "login").
		addLimit(limit).
		build("ORDER BY id LIMIT ?")

	users, err = queryAndScan(ctx, db.conn, q, args, func(rows *sql.Rows) (models.User, error) {
		return scanUser(rows)
	})
	if err != nil {
		return nil, db.queryError("search users", err)
	}
	return users, nil
}

// InsertUserPublication attaches a publication to a user and returns its id.
func (db *DB) InsertUserPublication(ctx context.Context, p *models.UserPublication) (id int, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("insert", TableUserPublications, start, err) }()

	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO user_publications (user_id, title, coauthors, citations, journal, publication_year, author_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		p.UserID, p.Title, p.Coauthors, p.Citations, p.Journal, p.PublicationYear, p.AuthorName,
	).Scan(&id)
	if err != nil {
		return 0, db.queryError("insert user publication", err)
	}
	return id, nil
}

// ListUserPublications returns the publications of a user in insertion
// order.
func (db *DB) ListUserPublications(ctx context.Context, userID int) (pubs []models.UserPublication, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("list", TableUserPublications, start, err) }()

	pubs, err = queryAndScan(ctx, db.conn, `
		SELECT id, user_id, title, coauthors, citations, journal, publication_year, author_name
		FROM user_publications WHERE user_id = ? ORDER BY id`,
		[]interface{}{userID},
		func(rows *sql.Rows) (models.UserPublication, error) {
			var p models.UserPublication
			err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Coauthors, &p.Citations,
				&p.Journal, &p.PublicationYear, &p.AuthorName)
			return p, err
		})
	if err != nil {
		return nil, db.queryError("list user publications", err)
	}
	return pubs, nil
}
