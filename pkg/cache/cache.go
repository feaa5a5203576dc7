package cache

import "time"

// Cache stores values of one payload type keyed by instance fingerprint,
// so batches with repeated scenarios skip recomputation. Typing the
// payload keeps type assertions out of the trial loop.
type Cache[V any] interface {
	// Get retrieves a value from the cache.
	// Returns (value, true) if found, (zero, false) if not found.
	Get(key string) (V, bool)

	// Set stores a value in the cache with a TTL.
	Set(key string, value V, ttl time.Duration) bool

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all values from the cache.
	Clear()

	// Close closes the cache and releases resources.
	Close()
}
