// Package pagecache provides a Redis-backed page cache for paginated
// sources.
//
// The cache wraps any paginate.Source and keys pages by item offset, so
// repeated walks over the same collection are served from Redis instead
// of the upstream API:
//
// - Pages are cached per keyspace with a configurable TTL
// - A remembered advisory total lets fully cached walks terminate
// - Cache failures degrade to the inner source, never fail a fetch
// - Prometheus metrics for observability
// - Deterministic cache key generation
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Wrap an existing source
//	cached, err := pagecache.New(redisClient, src, pagecache.Config{
//		Keyspace: "github:issues:golang",
//		TTL:      10 * time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//
//	// Iterate as usual; repeated walks hit Redis
//	it := paginate.New(cached)
//
// # Invalidation
//
//	// Drop every cached page in the keyspace
//	deleted, err := cached.Invalidate(ctx)
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - apikit_pagecache_hits_total - Pages served from cache
//   - apikit_pagecache_misses_total - Page cache misses
//   - apikit_pagecache_stores_total - Pages written to cache
//   - apikit_pagecache_errors_total{operation} - Cache operation errors
//
// # Consistency
//
// A page is cached as fetched, together with the advisory total the
// source reported at that moment. If the upstream collection changes
// while pages are cached, a walk can mix old and new pages until the
// TTL expires or Invalidate is called. Choose the TTL accordingly.
package pagecache
