package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

// RistrettoCache is a typed cache backed by Ristretto. The underlying
// store is untyped, so Get narrows back to V at the boundary.
type RistrettoCache[V any] struct {
	cache  *ristretto.Cache
	logger *zap.Logger
}

// RistrettoConfig holds configuration for Ristretto cache.
type RistrettoConfig struct {
	NumCounters int64 // Number of keys to track frequency (10x max items)
	MaxCost     int64 // Maximum cost of cache (in items)
	BufferItems int64 // Number of keys per Get buffer
	Logger      *zap.Logger
}

// NewRistrettoCache creates a new Ristretto-backed cache for payload type V.
func NewRistrettoCache[V any](cfg *RistrettoConfig) (*RistrettoCache[V], error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCache[V]{
		cache:  cache,
		logger: cfg.Logger,
	}, nil
}

// Get retrieves a value from the cache.
func (r *RistrettoCache[V]) Get(key string) (V, bool) {
	var zero V

	value, found := r.cache.Get(key)
	if !found {
		CacheMissesTotal.Inc()
		r.logger.Debug("cache-miss", zap.String("key", key))
		return zero, false
	}

	typed, ok := value.(V)
	if !ok {
		CacheMissesTotal.Inc()
		r.logger.Warn("cache-type-mismatch", zap.String("key", key))
		return zero, false
	}

	CacheHitsTotal.Inc()
	r.logger.Debug("cache-hit", zap.String("key", key))

	return typed, true
}

// Set stores a value in the cache with a TTL.
func (r *RistrettoCache[V]) Set(key string, value V, ttl time.Duration) bool {
	// Cost = 1: we count cached outcomes, not bytes.
	success := r.cache.SetWithTTL(key, value, 1, ttl)
	if success {
		CacheSetsTotal.Inc()
		r.logger.Debug("cache-set",
			zap.String("key", key),
			zap.Duration("ttl", ttl))
	}
	return success
}

// Delete removes a value from the cache.
func (r *RistrettoCache[V]) Delete(key string) {
	r.cache.Del(key)
	r.logger.Debug("cache-delete", zap.String("key", key))
}

// Clear removes all values from the cache.
func (r *RistrettoCache[V]) Clear() {
	r.cache.Clear()
	r.logger.Info("cache-cleared")
}

// Close closes the cache and releases resources.
func (r *RistrettoCache[V]) Close() {
	r.cache.Close()
	r.logger.Info("cache-closed")
}

// Wait blocks until pending writes are applied. Used by tests; batch
// callers treat a buffered miss as a normal recompute.
func (r *RistrettoCache[V]) Wait() {
	r.cache.Wait()
}
