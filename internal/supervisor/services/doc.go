// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

/*
Package services provides suture.Service wrappers for ScholarMatch
components.

Each wrapper implements

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer, which suture uses to name the service in its events.

# Available Services

HTTPServerService:
  - Runs *http.Server and shuts it down gracefully on cancellation.
  - Listen failures are returned so the api layer restarts the server.

CacheJanitorService:
  - Sweeps a cache.Expirer on an interval and records
    cache_expired_entries_total.
  - Used for the recommendation response cache.

CheckpointService:
  - Runs DuckDB CHECKPOINT on an interval and once at shutdown.
  - Returns after three consecutive failures so the data layer backs off.

# Return Values

  - ctx.Err() after cancellation: normal shutdown.
  - Any other error: the supervisor restarts the service.
*/
package services
