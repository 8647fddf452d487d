package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/career-match/internal/config"
)

func TestInvalidatePools_DropsCachedPools(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("career-match:pool:coaches", "[]"))
	require.NoError(t, mr.Set("career-match:pool:jobs:100", "[]"))
	require.NoError(t, mr.Set("session:abc", "keep"))

	err := invalidatePools(context.Background(), config.Config{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)

	assert.False(t, mr.Exists("career-match:pool:coaches"))
	assert.False(t, mr.Exists("career-match:pool:jobs:100"))
	assert.True(t, mr.Exists("session:abc"))
}

func TestInvalidatePools_CacheDisabled(t *testing.T) {
	assert.NoError(t, invalidatePools(context.Background(), config.Config{}))
}

func TestInvalidatePools_BadURL(t *testing.T) {
	err := invalidatePools(context.Background(), config.Config{RedisURL: "not-a-url://x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=seed.invalidate_pools")
}
