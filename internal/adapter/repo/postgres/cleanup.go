package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/career-match/internal/domain"
)

// Tx is the subset of pgx.Tx used by the cleanup service.
type Tx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Beginner starts a transaction.
type Beginner interface {
	Begin(ctx context.Context) (Tx, error)
}

// PoolBeginner adapts a pgxpool.Pool to Beginner.
type PoolBeginner struct{ Pool *pgxpool.Pool }

// Begin starts a transaction on the pool.
func (b PoolBeginner) Begin(ctx context.Context) (Tx, error) {
	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// CleanupService removes persisted matches nobody acted on within the retention period.
type CleanupService struct {
	DB            Beginner
	RetentionDays int
	Now           func() time.Time
}

// NewCleanupService creates a new cleanup service.
func NewCleanupService(db Beginner, retentionDays int) *CleanupService {
	if retentionDays <= 0 {
		retentionDays = 180
	}
	return &CleanupService{DB: db, RetentionDays: retentionDays, Now: time.Now}
}

// CleanupOldData deletes matches still in status "new" that are older than
// the retention period and returns how many were removed.
func (s *CleanupService) CleanupOldData(ctx context.Context) (int64, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	cutoff := now().UTC().AddDate(0, 0, -s.RetentionDays)

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("op=cleanup.begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var deleted int64
	err = tx.QueryRow(ctx, `
		WITH gone AS (
			DELETE FROM matches WHERE status = $1 AND created_at < $2 RETURNING 1
		)
		SELECT count(*) FROM gone
	`, string(domain.MatchStatusNew), cutoff).Scan(&deleted)
	if err != nil {
		return 0, fmt.Errorf("op=cleanup.delete_matches: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("op=cleanup.commit: %w", err)
	}

	slog.Info("match retention cleanup completed",
		slog.Int64("deleted_matches", deleted),
		slog.Time("cutoff", cutoff),
	)
	return deleted, nil
}

// RunPeriodic runs CleanupOldData immediately and then every interval until ctx is done.
func (s *CleanupService) RunPeriodic(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := s.CleanupOldData(ctx); err != nil {
		slog.Error("initial cleanup failed", slog.Any("error", err))
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup service stopping")
			return
		case <-ticker.C:
			if _, err := s.CleanupOldData(ctx); err != nil {
				slog.Error("periodic cleanup failed", slog.Any("error", err))
			}
		}
	}
}
