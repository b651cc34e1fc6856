// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tomtom215/scholarmatch/internal/metrics"
	"github.com/tomtom215/scholarmatch/internal/models"
	"github.com/tomtom215/scholarmatch/internal/recommend"
)

// ImportAuthorInterests inserts author interest records in one
// transaction. Records whose author_id already exists in the table, or
// repeats an earlier record, are counted as duplicates and skipped. Records
// without an id are counted as skipped.
func (db *DB) ImportAuthorInterests(ctx context.Context, records []recommend.AuthorRecord) (result models.ImportResult, err error) {
	start := time.Now()
	result = models.ImportResult{Table: TableAuthorInterests, Rows: len(records)}
	defer func() {
		observe("import", TableAuthorInterests, start, err)
		result.DurationMS = time.Since(start).Milliseconds()
	}()

	existing, err := db.existingAuthorInterestIDs(ctx)
	if err != nil {
		return result, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return result, db.queryError("begin import", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback() //nolint:errcheck // rollback after failure is best-effort
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO author_interests (author_id, author_name, interests_list, keywords_list,
			interests_count, articles_count, main_interest, cluster)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return result, db.queryError("prepare import", err)
	}
	defer closeWithLog(stmt, db.logger, "statement")

	for i := range records {
		rec := &records[i]
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			result.Skipped++
			continue
		}
		if _, dup := existing[id]; dup {
			result.Duplicates++
			continue
		}
		existing[id] = struct{}{}

		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}

		if _, err := stmt.ExecContext(ctx,
			id, rec.Name, joinList(rec.Interests), joinList(rec.Keywords),
			rec.InterestsCount, rec.ArticlesCount, rec.MainInterest, rec.Cluster,
		); err != nil {
			return result, db.queryError(fmt.Sprintf("insert author %q", id), err)
		}
		result.Imported++
	}

	if err := tx.Commit(); err != nil {
		return result, db.queryError("commit import", err)
	}
	committed = true

	metrics.RecordImport(TableAuthorInterests, result.Imported, result.Skipped, result.Duplicates)
	db.logger.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("duplicates", result.Duplicates).
		Msg("author interests imported")
	return result, nil
}

func (db *DB) existingAuthorInterestIDs(ctx context.Context) (map[string]struct{}, error) {
	ids, err := queryAndScan(ctx, db.conn, `SELECT author_id FROM author_interests`, nil,
		func(rows *sql.Rows) (string, error) {
			var id string
			err := rows.Scan(&id)
			return id, err
		})
	if err != nil {
		return nil, db.queryError("load existing author ids", err)
	}
	existing := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		existing[id] = struct{}{}
	}
	return existing, nil
}

// joinList stores a list the way the source CSV does, pipe separated.
func joinList(items []string) *string {
	if len(items) == 0 {
		return nil
	}
	s := strings.Join(items, "|")
	return &s
}

// authorsCSVColumns maps authors columns to the headers of
// authors_expanded_with_ids.csv.
var authorsCSVColumns = []struct {
	column string
	header string
}{
	{"pmid", "PMID"},
	{"title", "Title"},
	{"authors_original", "Authors_Original"},
	{"citation", "Citation"},
	{"journal_book", "Journal/Book"},
	{"publication_year", "Publication Year"},
	{"create_date", "Create Date"},
	{"pmcid", "PMCID"},
	{"nihms_id", "NIHMS ID"},
	{"doi", "DOI"},
	{"author_name", "Author_Name"},
	{"author_id", "Author_ID"},
}

// ImportAuthorsCSV loads publication rows from an
// authors_expanded_with_ids.csv file with DuckDB's CSV reader. Empty cells
// become NULL.
func (db *DB) ImportAuthorsCSV(ctx context.Context, path string) (result models.ImportResult, err error) {
	start := time.Now()
	result = models.ImportResult{Table: TableAuthors}
	defer func() {
		observe("import", TableAuthors, start, err)
		result.DurationMS = time.Since(start).Milliseconds()
	}()

	if _, err := os.Stat(path); err != nil {
		return result, fmt.Errorf("authors csv: %w", err)
	}

	res, err := db.conn.ExecContext(ctx, buildAuthorsImportQuery(path))
	if err != nil {
		return result, db.queryError("import authors csv", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return result, db.queryError("import authors csv", err)
	}

	result.Rows = int(n)
	result.Imported = int(n)
	metrics.RecordImport(TableAuthors, result.Imported, 0, 0)
	db.logger.Info().Str("path", path).Int64("imported", n).Msg("authors imported")
	return result, nil
}

func buildAuthorsImportQuery(path string) string {
	cols := make([]string, len(authorsCSVColumns))
	exprs := make([]string, len(authorsCSVColumns))
	for i, c := range authorsCSVColumns {
		cols[i] = c.column
		exprs[i] = fmt.Sprintf(`NULLIF("%s", '')`, c.header)
	}
	return fmt.Sprintf(
		`INSERT INTO authors (%s) SELECT %s FROM read_csv('%s', header = true, all_varchar = true)`,
		strings.Join(cols, ", "), strings.Join(exprs, ", "), escapeSQLString(path))
}

// escapeSQLString doubles single quotes for use inside a SQL literal.
func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
