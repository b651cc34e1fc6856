// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
)

// Expirer is implemented by caches whose expired entries can be purged on
// demand. The cache janitor service sweeps any Expirer on a ticker.
type Expirer interface {
	CleanupExpired() int
}

var _ Expirer = (*LRU[int])(nil)

// GenerateKey returns "<namespace>:<hash>" where hash is the first 16 bytes
// of the SHA-256 of params' JSON encoding. Params that cannot be encoded
// fall back to their %v form.
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}
	sum := sha256.Sum256(data)
	return namespace + ":" + hex.EncodeToString(sum[:16])
}
