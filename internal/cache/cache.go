// Package cache stores encoded simulations so repeated reads and identical
// projection requests skip the database and the engine.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Get returns apperrors.ErrCacheMiss when the key is absent or expired.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// SimulationKey is the key of a stored simulation.
func SimulationKey(id string) string {
	return "simulation:id:" + id
}

// ProjectionKey fingerprints a projection request. Identical parameters of
// the same type always map to the same key.
func ProjectionKey(t simulation.SimulationType, encodedParams []byte) string {
	return "simulation:projection:" + string(t) + ":" + strconv.FormatUint(xxhash.Sum64(encodedParams), 16)
}
