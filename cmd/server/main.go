// Command server starts the career-match HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/career-match/internal/adapter/cache/rediscache"
	"github.com/fairyhunter13/career-match/internal/adapter/events/redpanda"
	httpserver "github.com/fairyhunter13/career-match/internal/adapter/httpserver"
	"github.com/fairyhunter13/career-match/internal/adapter/observability"
	"github.com/fairyhunter13/career-match/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/career-match/internal/app"
	"github.com/fairyhunter13/career-match/internal/config"
	"github.com/fairyhunter13/career-match/internal/domain"
	"github.com/fairyhunter13/career-match/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.ConnectWithRetry(ctx, cfg.DBURL, cfg.GetConnectRetryConfig())
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	var (
		candidates domain.CandidateStore = postgres.NewCandidateRepo(pool)
		jobs       domain.JobStore       = postgres.NewJobRepo(pool)
		coaches    domain.CoachStore     = postgres.NewCoachRepo(pool)
		matches    domain.MatchStore     = postgres.NewMatchRepo(pool)
	)

	// Pool cache, optional
	var rdb *redis.Client
	if cfg.CacheEnabled() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL, pool cache disabled", slog.Any("error", err))
		} else {
			rdb = redis.NewClient(opts)
			defer func() { _ = rdb.Close() }()
			cache := rediscache.New(rdb, cfg.PoolCacheTTL)
			jobs = rediscache.NewJobStore(jobs, cache)
			coaches = rediscache.NewCoachStore(coaches, cache)
			slog.Info("pool cache enabled", slog.Duration("ttl", cfg.PoolCacheTTL))
		}
	}

	// Match events, optional
	var events domain.MatchEvents
	if cfg.EventsEnabled() {
		pub, err := redpanda.NewPublisher(ctx, cfg.KafkaBrokers, cfg.MatchEventsTopic)
		if err != nil {
			slog.Error("match event publisher disabled", slog.Any("error", err))
		} else {
			events = pub
			defer func() { _ = pub.Close() }()
		}
	}

	if cfg.DataRetentionDays > 0 {
		cleanupSvc := postgres.NewCleanupService(postgres.PoolBeginner{Pool: pool}, cfg.DataRetentionDays)
		go cleanupSvc.RunPeriodic(ctx, cfg.CleanupInterval)
		slog.Info("cleanup service started", slog.Int("retention_days", cfg.DataRetentionDays), slog.Duration("interval", cfg.CleanupInterval))
	}

	obs := observability.NewMatchObserver(observability.NewScoreDriftMonitor(cfg.ScoreDriftWindow, cfg.ScoreDriftThreshold))
	matchSvc := usecase.NewMatchService(candidates, jobs, coaches, obs)
	recorderSvc := usecase.NewRecorderService(matches, events, obs)

	var redisPing app.RedisClient
	if rdb != nil {
		redisPing = app.GoRedis{Client: rdb}
	}
	dbCheck, redisCheck := app.BuildReadinessChecks(pool, redisPing)

	srv := httpserver.NewServer(cfg, matchSvc, recorderSvc, dbCheck, redisCheck)
	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.BuildRouter(cfg, srv),
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	if err := srvHTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
