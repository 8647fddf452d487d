package app

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPing struct{}

func (okPing) Err() error { return nil }

type errPing struct{ err error }

func (e errPing) Err() error { return e.err }

type fakeRedis struct {
	ok  bool
	err error
}

func (f fakeRedis) Ping(_ context.Context) RedisPingResult {
	if f.ok {
		return okPing{}
	}
	return errPing{err: f.err}
}

type fakePool struct{ err error }

func (f fakePool) Ping(context.Context) error { return f.err }

func TestBuildReadinessChecks_Redis_Success(t *testing.T) {
	db, red := BuildReadinessChecks(nil, fakeRedis{ok: true})
	require.NotNil(t, red)
	assert.NoError(t, red(context.Background()))
	assert.Error(t, db(context.Background()), "nil pool is not ready")
}

func TestBuildReadinessChecks_Redis_Error(t *testing.T) {
	_, red := BuildReadinessChecks(fakePool{}, fakeRedis{err: context.DeadlineExceeded})
	assert.ErrorIs(t, red(context.Background()), context.DeadlineExceeded)
}

func TestBuildReadinessChecks_NoRedis(t *testing.T) {
	db, red := BuildReadinessChecks(fakePool{}, nil)
	assert.Nil(t, red)
	assert.NoError(t, db(context.Background()))

	db, _ = BuildReadinessChecks(fakePool{err: errors.New("refused")}, nil)
	assert.Error(t, db(context.Background()))
}

func TestGoRedis_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	_, red := BuildReadinessChecks(nil, GoRedis{Client: rdb})
	assert.NoError(t, red(context.Background()))

	mr.Close()
	assert.Error(t, red(context.Background()))
}
