package pagecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quellwerk/go-apikit/pkg/paginate"
)

var (
	// ErrCacheMiss indicates no cached page exists at the offset
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the cache entry is invalid or corrupted
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// defaultTTL applies when the configuration leaves TTL unset.
const defaultTTL = 5 * time.Minute

// Source wraps a paginate.Source so fetched pages are served from Redis
// when possible. Offset bookkeeping stays on the inner source, which
// keeps the wrapper transparent to the iterator.
//
// Cache failures never fail a fetch: the wrapper logs them, counts them,
// and falls through to the inner source.
type Source[T any] struct {
	redis      *redis.Client
	inner      paginate.Source[T]
	config     Config
	logger     zerolog.Logger
	total      int
	totalKnown bool
}

// Config holds the cache configuration.
type Config struct {
	// Keyspace isolates this collection's pages from other collections
	// sharing the Redis instance.
	Keyspace string

	// TTL is how long cached pages live. Defaults to 5 minutes.
	TTL time.Duration
}

// DefaultConfig returns a safe default configuration for the keyspace.
func DefaultConfig(keyspace string) Config {
	return Config{
		Keyspace: keyspace,
		TTL:      defaultTTL,
	}
}

// New wraps inner with a Redis page cache.
func New[T any](redisClient *redis.Client, inner paginate.Source[T], cfg Config) (*Source[T], error) {
	if redisClient == nil {
		return nil, fmt.Errorf("redis client is required")
	}

	if inner == nil {
		return nil, fmt.Errorf("inner source is required")
	}

	if cfg.Keyspace == "" {
		return nil, fmt.Errorf("keyspace is required")
	}

	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}

	logger := log.With().
		Str("component", "pagecache").
		Str("keyspace", cfg.Keyspace).
		Logger()

	return &Source[T]{
		redis:  redisClient,
		inner:  inner,
		config: cfg,
		logger: logger,
	}, nil
}

// NextPage serves the page at the inner source's current offset from
// Redis, falling back to the inner source on a miss. Pages fetched from
// the inner source are stored for the configured TTL.
func (s *Source[T]) NextPage(ctx context.Context) ([]T, error) {
	key := Key{Keyspace: s.config.Keyspace, Offset: s.inner.Offset()}

	if items, ok := s.lookup(ctx, key); ok {
		return items, nil
	}

	items, err := s.inner.NextPage(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, items)
	return items, nil
}

// Offset reports the inner source's offset.
func (s *Source[T]) Offset() int {
	return s.inner.Offset()
}

// SetOffset forwards to the inner source.
func (s *Source[T]) SetOffset(offset int) {
	s.inner.SetOffset(offset)
}

// TotalItems prefers the live total from the inner source and falls
// back to the total remembered from cached pages, so a fully cached
// walk still terminates by total.
func (s *Source[T]) TotalItems() (int, bool) {
	if total, ok := s.inner.TotalItems(); ok {
		return total, ok
	}
	if s.totalKnown {
		return s.total, true
	}
	return 0, false
}

// Peek returns the cached entry at offset without consulting the inner
// source. Returns ErrCacheMiss if no page is cached there.
func (s *Source[T]) Peek(ctx context.Context, offset int) (*Entry, error) {
	key := Key{Keyspace: s.config.Keyspace, Offset: offset}

	data, err := s.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	return &entry, nil
}

// Invalidate removes every cached page in the source's keyspace and
// returns how many were deleted.
func (s *Source[T]) Invalidate(ctx context.Context) (int, error) {
	var keys []string
	iter := s.redis.Scan(ctx, 0, KeyspacePattern(s.config.Keyspace), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		CacheErrors.WithLabelValues("invalidate").Inc()
		return 0, fmt.Errorf("redis scan: %w", err)
	}

	if len(keys) == 0 {
		return 0, nil
	}

	deleted, err := s.redis.Del(ctx, keys...).Result()
	if err != nil {
		CacheErrors.WithLabelValues("invalidate").Inc()
		return 0, fmt.Errorf("redis del: %w", err)
	}

	s.logger.Info().Int64("pages", deleted).Msg("Cache invalidated")
	return int(deleted), nil
}

// lookup serves a page from Redis. ok is false on a miss and on any
// cache failure, in which case the caller fetches from the inner source.
func (s *Source[T]) lookup(ctx context.Context, key Key) ([]T, bool) {
	entry, err := s.Peek(ctx, key.Offset)
	switch {
	case errors.Is(err, ErrCacheMiss):
		CacheMisses.Inc()
		return nil, false
	case errors.Is(err, ErrInvalidEntry):
		CacheErrors.WithLabelValues("get").Inc()
		s.logger.Warn().Err(err).Int("offset", key.Offset).Msg("Dropping corrupted cache entry")
		_ = s.redis.Del(ctx, key.String()).Err()
		return nil, false
	case err != nil:
		CacheErrors.WithLabelValues("get").Inc()
		s.logger.Warn().Err(err).Int("offset", key.Offset).Msg("Cache read failed")
		return nil, false
	}

	var items []T
	if err := json.Unmarshal(entry.Items, &items); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		s.logger.Warn().Err(err).Int("offset", key.Offset).Msg("Dropping corrupted cache entry")
		_ = s.redis.Del(ctx, key.String()).Err()
		return nil, false
	}

	if entry.Total != nil {
		s.total = *entry.Total
		s.totalKnown = true
	}

	CacheHits.Inc()
	s.logger.Debug().
		Int("offset", key.Offset).
		Int("items", len(items)).
		Dur("age", entry.Age()).
		Msg("Page served from cache")

	return items, true
}

// store writes a fetched page to Redis. Failures are logged and counted
// but never surfaced.
func (s *Source[T]) store(ctx context.Context, key Key, items []T) {
	data, err := json.Marshal(items)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		s.logger.Warn().Err(err).Int("offset", key.Offset).Msg("Cache encode failed")
		return
	}

	entry := Entry{
		Items:    data,
		CachedAt: time.Now().UTC(),
	}
	if total, ok := s.inner.TotalItems(); ok {
		entry.Total = &total
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		s.logger.Warn().Err(err).Int("offset", key.Offset).Msg("Cache encode failed")
		return
	}

	if err := s.redis.Set(ctx, key.String(), payload, s.config.TTL).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		s.logger.Warn().Err(err).Int("offset", key.Offset).Msg("Cache write failed")
		return
	}

	CacheStores.Inc()
	s.logger.Debug().Int("offset", key.Offset).Int("items", len(items)).Msg("Page cached")
}
