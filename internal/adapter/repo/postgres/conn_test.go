package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/career-match/internal/config"
	"github.com/fairyhunter13/career-match/internal/domain"
)

func TestNewPool_InvalidDSN(t *testing.T) {
	_, err := NewPool(context.Background(), "://bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=postgres.NewPool")
}

func TestConnectWithRetry_InvalidDSNIsPermanent(t *testing.T) {
	rc := config.ConnectRetryConfig{
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     20 * time.Millisecond,
		Multiplier:      2,
		MaxElapsed:      time.Second,
	}
	start := time.Now()
	_, err := ConnectWithRetry(context.Background(), "://bad", rc)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestMapErr(t *testing.T) {
	err := mapErr("things.get", assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "op=things.get")
}

func TestDecodeGoals(t *testing.T) {
	assert.Nil(t, decodeGoals(nil))
	assert.Nil(t, decodeGoals([]byte(`not json`)))
	goals := decodeGoals([]byte(`["a", {"name": "b"}, null]`))
	require.Len(t, goals, 3)
	assert.Equal(t, "a", goals[0].String())
	assert.Equal(t, "b", goals[1].String())
}

func TestDecodeGoals_SkipsMalformedEntries(t *testing.T) {
	goals := decodeGoals([]byte(`["Career change", 42, {"label": "Leadership"}, true, {"label": 7}]`))
	require.Len(t, goals, 2)
	assert.Equal(t, []string{"Career change", "Leadership"}, domain.GoalLabels(goals))
}
