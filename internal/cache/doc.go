// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

/*
Package cache provides the bounded TTL cache behind recommendation
responses.

LRU[V] is a typed least recently used cache. The recommendation engine
keeps one LRU[*recommend.Response] keyed by GenerateKey over the normalized
request. Entries expire lazily on read; LRU also implements Expirer so the
cache janitor service can purge them periodically.

# Usage Example

	import "github.com/tomtom215/scholarmatch/internal/cache"

	responses := cache.NewLRU[*Response](10000, 5*time.Minute)
	key := cache.GenerateKey("recommend", req)
	if resp, ok := responses.Get(key); ok {
	    return resp
	}

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
