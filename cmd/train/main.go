// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package main is the offline command line for ScholarMatch.
//
// It imports the source CSV files into DuckDB and trains the TF-IDF model
// that the API server loads at startup:
//
//	scholarmatch-train import --interests authors_scientific_interests.csv \
//	    --authors authors_expanded_with_ids.csv
//	scholarmatch-train train --from-db --out /data/model
//
// Settings not given as flags come from the same configuration as the
// server (config.yaml and environment variables).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/scholarmatch/internal/config"
	"github.com/tomtom215/scholarmatch/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// appConfig is loaded once before any subcommand runs.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "scholarmatch-train",
	Short: "Import author data and train the ScholarMatch recommendation model",
	Long: `scholarmatch-train prepares everything the ScholarMatch API server reads.

The import subcommand loads the source CSV files into DuckDB. The train
subcommand builds one profile per author, fits the TF-IDF vectorizer and the
cosine neighbor index, and writes the artifact set the server loads from
RECOMMEND_MODEL_PATH.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		level, _ := cmd.Flags().GetString("log-level") //nolint:errcheck // flag is registered on the root command
		if level == "" {
			level = cfg.Logging.Level
		}
		logging.Init(logging.Config{
			Level:  level,
			Format: "console",
			Caller: cfg.Logging.Caller,
		})
		appConfig = cfg
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of scholarmatch-train",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "scholarmatch-train %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level override (trace, debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
