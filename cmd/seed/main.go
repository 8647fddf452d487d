// Command seed loads demo candidates, job postings and coaches from the YAML
// fixture at SEED_FILE into Postgres.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/fairyhunter13/career-match/internal/adapter/observability"
	"github.com/fairyhunter13/career-match/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/career-match/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	slog.SetDefault(observability.SetupLogger(cfg))

	doc, err := loadSeed(cfg.SeedFile)
	if err != nil {
		slog.Error("seed load failed", slog.String("file", cfg.SeedFile), slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.ConnectWithRetry(ctx, cfg.DBURL, cfg.GetConnectRetryConfig())
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := apply(ctx, pool, doc); err != nil {
		slog.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := invalidatePools(ctx, cfg); err != nil {
		// rows are in; cached pools expire after POOL_CACHE_TTL
		slog.Warn("pool cache not invalidated", slog.Any("error", err))
	}
	slog.Info("seed applied",
		slog.String("file", cfg.SeedFile),
		slog.Int("candidates", len(doc.Candidates)),
		slog.Int("jobs", len(doc.Jobs)),
		slog.Int("coaches", len(doc.Coaches)))
}
