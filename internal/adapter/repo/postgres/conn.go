package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/career-match/internal/config"
)

// NewPool creates a pgx connection pool from the provided DSN and returns it.
// Queries are traced through otelpgx.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("op=postgres.NewPool: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.ConnConfig.Tracer = otelpgx.NewTracer()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("op=postgres.NewPool: %w", err)
	}
	return pool, nil
}

// ConnectWithRetry opens a pool and pings it under exponential backoff. It is
// meant for startup only; request paths never retry.
func ConnectWithRetry(ctx context.Context, dsn string, rc config.ConnectRetryConfig) (*pgxpool.Pool, error) {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = rc.InitialInterval
	expo.MaxInterval = rc.MaxInterval
	expo.MaxElapsedTime = rc.MaxElapsed
	if rc.Multiplier > 0 {
		expo.Multiplier = rc.Multiplier
	}

	var pool *pgxpool.Pool
	attempt := 0
	op := func() error {
		attempt++
		p, err := NewPool(ctx, dsn)
		if err != nil {
			// a malformed DSN will not fix itself
			return backoff.Permanent(err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			slog.Warn("database not ready", slog.Int("attempt", attempt), slog.Any("error", err))
			return err
		}
		pool = p
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		return nil, fmt.Errorf("op=postgres.ConnectWithRetry: %w", err)
	}
	slog.Info("database connected", slog.Int("attempts", attempt))
	return pool, nil
}
