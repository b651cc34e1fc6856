// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/scholarmatch/internal/database"
	"github.com/tomtom215/scholarmatch/internal/logging"
	"github.com/tomtom215/scholarmatch/internal/models"
	"github.com/tomtom215/scholarmatch/internal/recommend"
	"github.com/tomtom215/scholarmatch/internal/recommend/training"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the source CSV files into DuckDB",
	Long: `Import loads authors_scientific_interests.csv into the author_interests
table and authors_expanded_with_ids.csv into the authors table.

Interest rows without an Author_ID are skipped. Rows whose Author_ID is
already in the table, or repeats an earlier row, are counted as duplicates.
Count columns that are not plain digits are stored as NULL.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("interests", "", "authors_scientific_interests.csv path")
	importCmd.Flags().String("authors", "", "authors_expanded_with_ids.csv path")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interestsPath, _ := cmd.Flags().GetString("interests")
	authorsPath, _ := cmd.Flags().GetString("authors")
	if interestsPath == "" && authorsPath == "" {
		return fmt.Errorf("nothing to import: pass --interests and/or --authors")
	}

	logger := logging.Logger()
	db, err := database.New(&appConfig.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing database")
		}
	}()

	if interestsPath != "" {
		result, err := importInterests(ctx, db, interestsPath)
		if err != nil {
			return err
		}
		printImportResult(cmd.OutOrStdout(), &result)
	}

	if authorsPath != "" {
		result, err := db.ImportAuthorsCSV(ctx, authorsPath)
		if err != nil {
			return err
		}
		printImportResult(cmd.OutOrStdout(), &result)
	}

	return db.Checkpoint(ctx)
}

// interestImporter is the part of *database.DB used by importInterests.
type interestImporter interface {
	ImportAuthorInterests(ctx context.Context, records []recommend.AuthorRecord) (models.ImportResult, error)
}

// importInterests parses the CSV in Go, so rows are normalized exactly like
// the training corpus, then inserts them. Rows the parser drops are added to
// the table-level counts.
func importInterests(ctx context.Context, db interestImporter, path string) (models.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("open interests csv: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	records, stats, err := training.ReadAuthorsCSV(ctx, f)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("read %s: %w", path, err)
	}

	result, err := db.ImportAuthorInterests(ctx, records)
	if err != nil {
		return result, err
	}
	result.Rows = stats.Rows
	result.Skipped += stats.Skipped
	result.Duplicates += stats.Duplicates
	return result, nil
}

func printImportResult(w io.Writer, r *models.ImportResult) {
	fmt.Fprintf(w, "%s: %d rows, %d imported, %d skipped, %d duplicates (%d ms)\n",
		r.Table, r.Rows, r.Imported, r.Skipped, r.Duplicates, r.DurationMS)
}
