//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fairyhunter13/career-match/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/career-match/internal/config"
	"github.com/fairyhunter13/career-match/internal/domain"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "app"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(90 * time.Second),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/app?sslmode=disable", host, port.Port())

	pool, err := postgres.ConnectWithRetry(ctx, dsn, config.Config{AppEnv: "dev", DBConnectInitialInterval: 200 * time.Millisecond, DBConnectMaxInterval: time.Second, DBConnectMaxElapsed: 30 * time.Second}.GetConnectRetryConfig())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "deploy", "migrations", "0001_init.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	return pool
}

func TestIntegration_Repos(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO users (id, name, email, role, sector, languages, superpowers, goals, created_at) VALUES
		('u1', 'Ada', 'ada@example.com', 'user', 'Fintech', '{English}', '{Go}', '["Career change", {"label":"Leadership"}]', now() - interval '1 hour'),
		('u2', NULL, 'bo@example.com', NULL, 'Health', NULL, NULL, NULL, now()),
		('admin', 'Root', NULL, 'admin', NULL, NULL, NULL, NULL, now())`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO company_posts (post_id, sector, position, skills) VALUES ('j1', 'Fintech', 'Backend Engineer', '{Go}')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO coaches (id, name, rating) VALUES ('k1', 'Lena', 4.9), ('k2', 'Tom', NULL), ('k3', 'Mia', 4.1)`)
	require.NoError(t, err)

	cands := postgres.NewCandidateRepo(pool)
	ada, err := cands.GetCandidate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Career change", "Leadership"}, domain.GoalLabels(ada.Goals))

	_, err = cands.GetCandidate(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := cands.ListCandidates(ctx, []string{domain.RoleUser}, true, 200)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "u2", list[0].ID)

	job, err := postgres.NewJobRepo(pool).GetJob(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, job.Skills)

	coaches, err := postgres.NewCoachRepo(pool).ListCoachesByRating(ctx)
	require.NoError(t, err)
	require.Len(t, coaches, 3)
	assert.Equal(t, []string{"k1", "k3", "k2"}, []string{coaches[0].ID, coaches[1].ID, coaches[2].ID})

	matches := postgres.NewMatchRepo(pool)
	_, err = matches.InsertMatch(ctx, domain.PersistedMatch{UserID: "u1", TargetID: "j1", MatchType: domain.MatchTypeJob, Score: 70, Reasons: []string{"Same sector"}})
	require.NoError(t, err)
	_, err = matches.InsertMatch(ctx, domain.PersistedMatch{UserID: "u1", TargetID: "k1", MatchType: domain.MatchTypeCoach, Score: 90})
	require.NoError(t, err)
	_, err = matches.InsertMatch(ctx, domain.PersistedMatch{UserID: "u1", TargetID: "j1", MatchType: domain.MatchTypeJob, Score: 10})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := matches.ListMatchesForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 90, got[0].Score)
	assert.Equal(t, []string{"Same sector"}, got[1].Reasons)

	_, err = pool.Exec(ctx, `UPDATE matches SET created_at = now() - interval '400 days' WHERE target_id = 'k1'`)
	require.NoError(t, err)
	n, err := postgres.NewCleanupService(postgres.PoolBeginner{Pool: pool}, 180).CleanupOldData(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
