// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package database

import (
	"context"
	"fmt"
	"time"
)

// RecordCounts holds row counts of the main tables.
type RecordCounts struct {
	Users            int64 `json:"users"`
	Authors          int64 `json:"authors"`
	AuthorInterests  int64 `json:"author_interests"`
	UserPublications int64 `json:"user_publications"`
}

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, "CHECKPOINT")
	if err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// GetDatabasePath returns the path to the database file
func (db *DB) GetDatabasePath() string {
	return db.cfg.Path
}

// CountAuthorInterests returns the number of author_interests rows.
func (db *DB) CountAuthorInterests(ctx context.Context) (count int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("count", TableAuthorInterests, start, err) }()

	err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM author_interests").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count author interests: %w", err)
	}
	return count, nil
}

// GetRecordCounts returns the count of records in main tables
func (db *DB) GetRecordCounts(ctx context.Context) (RecordCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var counts RecordCounts
	for _, c := range []struct {
		table string
		dest  *int64
	}{
		{TableUsers, &counts.Users},
		{TableAuthors, &counts.Authors},
		{TableAuthorInterests, &counts.AuthorInterests},
		{TableUserPublications, &counts.UserPublications},
	} {
		//nolint:gosec // table names are constants
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dest); err != nil {
			return counts, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}
	return counts, nil
}
