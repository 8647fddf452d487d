package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/career-match/internal/adapter/cache/rediscache"
	"github.com/fairyhunter13/career-match/internal/config"
)

// invalidatePools drops the cached job and coach pools so the server reads the
// freshly seeded rows. It is a no-op when the cache is disabled.
func invalidatePools(ctx context.Context, cfg config.Config) error {
	if !cfg.CacheEnabled() {
		return nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("op=seed.invalidate_pools: %w", err)
	}
	rdb := redis.NewClient(opts)
	defer func() { _ = rdb.Close() }()
	return rediscache.New(rdb, cfg.PoolCacheTTL).Invalidate(ctx)
}
