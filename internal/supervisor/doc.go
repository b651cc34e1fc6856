// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

/*
Package supervisor runs the long-lived parts of the ScholarMatch server
under a suture v4 supervisor tree.

# Overview

	RootSupervisor ("scholarmatch")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (when DUCKDB_CHECKPOINT_INTERVAL > 0)
	├── EngineSupervisor ("engine-layer")
	│   └── CacheJanitorService (when the response cache is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts its own failures, so a crashing checkpoint loop backs
off on its own while the HTTP server keeps answering.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCheckpointService(db, time.Minute, logger))
	tree.AddEngineService(services.NewCacheJanitorService("recommend", engine.CacheExpirer(), time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := tree.ServeBackground(ctx)

# Failure Handling

suture keeps a failure counter per supervisor that decays over
FailureDecay seconds. Above FailureThreshold restarts wait FailureBackoff.
A service that returns nil is not restarted.

# What Is NOT Supervised

The model is loaded once before the tree starts; it is immutable and has
no background work. DuckDB is an embedded library whose connection pool
lives in the database package.

# Debugging Shutdown Issues

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logger.Warn().Str("service", svc.Name).Msg("service did not stop")
	}
*/
package supervisor
