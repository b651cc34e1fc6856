// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/scholarmatch/internal/api"
	"github.com/tomtom215/scholarmatch/internal/config"
	"github.com/tomtom215/scholarmatch/internal/database"
	"github.com/tomtom215/scholarmatch/internal/logging"
	"github.com/tomtom215/scholarmatch/internal/middleware"
	"github.com/tomtom215/scholarmatch/internal/supervisor"
	"github.com/tomtom215/scholarmatch/internal/supervisor/services"
)

const (
	// latencySamples is the ring buffer size behind GET /status.
	latencySamples = 1000

	// slowRequestThreshold logs requests slower than this at warn level.
	slowRequestThreshold = time.Second

	httpShutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("model_path", cfg.Recommend.ModelPath).
		Str("environment", cfg.Server.Environment).
		Msg("Starting ScholarMatch with supervisor tree")

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if counts, err := db.GetRecordCounts(ctx); err == nil {
		logging.Info().
			Int64("users", counts.Users).
			Int64("authors", counts.Authors).
			Int64("author_interests", counts.AuthorInterests).
			Msg("Database contents")
	}

	logger := logging.Logger()
	rec, err := initRecommend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize recommendation engine: %w", err)
	}

	latency := middleware.NewLatencyTracker(latencySamples, slowRequestThreshold, logger)
	handler := api.NewHandler(db, rec.Engine, rec.Graph, cfg, latency, logger)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security), latency)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// Suture logs through slog; bridge it onto the zerolog root logger.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	if cfg.Database.CheckpointInterval > 0 {
		tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval, logger))
		logging.Info().Dur("interval", cfg.Database.CheckpointInterval).Msg("DuckDB checkpoint service added")
	}

	if expirer := rec.Engine.CacheExpirer(); expirer != nil {
		tree.AddEngineService(services.NewCacheJanitorService("recommend", expirer, cfg.Recommend.CleanupInterval, logger))
		logging.Info().Msg("Recommendation cache janitor added")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownTimeout, logger))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
		// The tree sends exactly one result once every layer has stopped.
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // report is best effort after shutdown
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	return nil
}
