// Package rediscache provides a Redis read-through cache for the job and coach
// candidate pools. Cache failures never fail a read; the wrapped store is used instead.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	obs "github.com/fairyhunter13/career-match/internal/adapter/observability"
	"github.com/fairyhunter13/career-match/internal/domain"
)

const keyPrefix = "career-match:pool:"

// Cache holds the Redis client, TTL and breaker shared by the store wrappers.
type Cache struct {
	rdb     redis.UniversalClient
	ttl     time.Duration
	breaker *obs.CircuitBreaker
}

// New returns a Cache. A nil client yields nil, which the wrappers treat as disabled.
func New(rdb redis.UniversalClient, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{
		rdb:     rdb,
		ttl:     ttl,
		breaker: obs.NewCircuitBreaker("redis_pool_cache", 3, 30*time.Second),
	}
}

// Invalidate drops every cached pool.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	var keys []string
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("op=rediscache.invalidate: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("op=rediscache.invalidate: %w", err)
	}
	return nil
}

// readThrough returns the cached value under key, or loads, stores and returns it.
func readThrough[T any](ctx context.Context, c *Cache, pool, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		obs.RecordPoolCache(pool, "bypass")
		return load(ctx)
	}

	var raw []byte
	err := c.breaker.Do(func() error {
		b, err := c.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		raw = b
		return err
	})
	if err == nil && raw != nil {
		var v T
		if uerr := json.Unmarshal(raw, &v); uerr == nil {
			obs.RecordPoolCache(pool, "hit")
			return v, nil
		}
		slog.Warn("discarding undecodable pool cache entry", slog.String("key", key))
	}
	if err != nil {
		obs.RecordPoolCache(pool, "error")
		slog.Warn("pool cache read failed", slog.String("pool", pool), slog.Any("error", err))
	} else {
		obs.RecordPoolCache(pool, "miss")
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	b, merr := json.Marshal(v)
	if merr != nil {
		return v, nil
	}
	if werr := c.breaker.Do(func() error { return c.rdb.Set(ctx, key, b, c.ttl).Err() }); werr != nil {
		slog.Warn("pool cache write failed", slog.String("pool", pool), slog.Any("error", werr))
	}
	return v, nil
}

// JobStore caches ListRecentJobs; GetJob always reads the wrapped store.
type JobStore struct {
	Next  domain.JobStore
	Cache *Cache
}

// NewJobStore wraps next with the pool cache.
func NewJobStore(next domain.JobStore, c *Cache) *JobStore { return &JobStore{Next: next, Cache: c} }

// GetJob reads the wrapped store.
func (s *JobStore) GetJob(ctx domain.Context, id string) (domain.JobPosting, error) {
	return s.Next.GetJob(ctx, id)
}

// ListRecentJobs returns the cached pool for limit or loads it.
func (s *JobStore) ListRecentJobs(ctx domain.Context, limit int) ([]domain.JobPosting, error) {
	key := fmt.Sprintf("%sjobs:%d", keyPrefix, limit)
	return readThrough(ctx, s.Cache, "jobs", key, func(ctx context.Context) ([]domain.JobPosting, error) {
		return s.Next.ListRecentJobs(ctx, limit)
	})
}

// CoachStore caches ListCoachesByRating.
type CoachStore struct {
	Next  domain.CoachStore
	Cache *Cache
}

// NewCoachStore wraps next with the pool cache.
func NewCoachStore(next domain.CoachStore, c *Cache) *CoachStore {
	return &CoachStore{Next: next, Cache: c}
}

// ListCoachesByRating returns the cached coach pool or loads it.
func (s *CoachStore) ListCoachesByRating(ctx domain.Context) ([]domain.CoachProfile, error) {
	return readThrough(ctx, s.Cache, "coaches", keyPrefix+"coaches", s.Next.ListCoachesByRating)
}
