package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHitsTotal tracks result-cache hits.
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clocksim_cache_hits_total",
		Help: "Total number of result cache hits",
	})

	// CacheMissesTotal tracks result-cache misses.
	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clocksim_cache_misses_total",
		Help: "Total number of result cache misses",
	})

	// CacheSetsTotal tracks result-cache inserts.
	CacheSetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clocksim_cache_sets_total",
		Help: "Total number of result cache inserts",
	})
)
