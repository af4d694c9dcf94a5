package pagecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks pages served from Redis.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apikit_pagecache_hits_total",
			Help: "Total number of pages served from cache",
		},
	)

	// CacheMisses tracks pages that had to be fetched from the inner source.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apikit_pagecache_misses_total",
			Help: "Total number of page cache misses",
		},
	)

	// CacheStores tracks pages written to Redis.
	CacheStores = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apikit_pagecache_stores_total",
			Help: "Total number of pages written to cache",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apikit_pagecache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "invalidate"
	)
)
