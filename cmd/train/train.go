// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/scholarmatch/internal/config"
	"github.com/tomtom215/scholarmatch/internal/database"
	"github.com/tomtom215/scholarmatch/internal/logging"
	"github.com/tomtom215/scholarmatch/internal/recommend/storage"
	"github.com/tomtom215/scholarmatch/internal/recommend/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the TF-IDF model and write the artifact set",
	Long: `Train reads the author corpus, either from an
authors_scientific_interests.csv file or from the author_interests table,
fits the vectorizer and neighbor index and writes the four artifacts plus
manifest.json to the output directory. An existing artifact set is replaced
atomically.`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().String("csv", "", "corpus CSV (default: TRAINING_CSV_PATH)")
	trainCmd.Flags().Bool("from-db", false, "read the corpus from the author_interests table instead of a CSV")
	trainCmd.Flags().String("out", "", "artifact set directory (default: RECOMMEND_MODEL_PATH)")
	trainCmd.Flags().Int("min-df", 0, "minimum document frequency (default: TRAINING_MIN_DF)")
	trainCmd.Flags().Float64("max-df", 0, "maximum document frequency (default: TRAINING_MAX_DF)")
	trainCmd.Flags().Int("max-features", 0, "vocabulary cap (default: TRAINING_MAX_FEATURES)")
	trainCmd.Flags().Bool("json", false, "print the manifest as JSON")

	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flags := cmd.Flags()
	csvPath, _ := flags.GetString("csv")
	fromDB, _ := flags.GetBool("from-db")
	outDir, _ := flags.GetString("out")
	asJSON, _ := flags.GetBool("json")
	minDF, _ := flags.GetInt("min-df")
	maxDF, _ := flags.GetFloat64("max-df")
	maxFeat, _ := flags.GetInt("max-features")

	cfg := appConfig
	if outDir == "" {
		outDir = cfg.Recommend.ModelPath
	}
	if fromDB && csvPath != "" {
		return fmt.Errorf("--csv and --from-db are mutually exclusive")
	}
	if !fromDB && csvPath == "" {
		csvPath = cfg.Training.CSVPath
	}
	if !fromDB && csvPath == "" {
		return fmt.Errorf("no corpus: pass --csv, set TRAINING_CSV_PATH or use --from-db")
	}

	trainCfg := buildTrainingConfig(&cfg.Training)
	if minDF > 0 {
		trainCfg.Vectorizer.MinDF = minDF
	}
	if maxDF > 0 {
		trainCfg.Vectorizer.MaxDF = maxDF
	}
	if maxFeat > 0 {
		trainCfg.Vectorizer.MaxFeatures = maxFeat
	}

	logger := logging.Logger()
	pipeline, err := training.NewPipeline(trainCfg, logger)
	if err != nil {
		return err
	}

	var source training.CorpusSource
	if fromDB {
		db, err := database.New(&cfg.Database)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing database")
			}
		}()
		source = db
	} else {
		csvSource := &training.CSVSource{Path: csvPath}
		defer func() {
			logger.Info().
				Int("rows", csvSource.Stats.Rows).
				Int("skipped", csvSource.Stats.Skipped).
				Int("duplicates", csvSource.Stats.Duplicates).
				Msg("Corpus CSV read")
		}()
		source = csvSource
	}

	result, err := pipeline.RunAndSave(ctx, source, storage.NewArtifactStore(outDir))
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.Manifest)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "model %s: %d authors, %d terms, written to %s in %s\n",
		result.Manifest.ModelVersion,
		result.Manifest.CorpusSize,
		result.Manifest.VocabularySize,
		outDir,
		result.Duration.Round(time.Millisecond),
	)
	return nil
}

// buildTrainingConfig overlays configured vectorizer limits on the
// defaults. Zero values keep the default.
func buildTrainingConfig(tc *config.TrainingConfig) training.Config {
	out := training.DefaultConfig()
	if tc.MinDF > 0 {
		out.Vectorizer.MinDF = tc.MinDF
	}
	if tc.MaxDF > 0 {
		out.Vectorizer.MaxDF = tc.MaxDF
	}
	if tc.MaxFeatures > 0 {
		out.Vectorizer.MaxFeatures = tc.MaxFeatures
	}
	if tc.Timeout > 0 {
		out.Timeout = tc.Timeout
	}
	return out
}

// commandContext returns cmd's context, or Background when the command is
// run outside Execute (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
