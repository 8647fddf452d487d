package observability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/career-match/internal/adapter/observability"
)

func TestScoreDriftMonitor_BaselineFromFirstWindow(t *testing.T) {
	t.Parallel()

	sdm := observability.NewScoreDriftMonitor(3, 10)

	_, ok := sdm.Baseline("jobs")
	assert.False(t, ok)

	sdm.Observe("jobs", []int{60, 80})
	sdm.Observe("jobs", []int{70})
	_, ok = sdm.Baseline("jobs")
	assert.False(t, ok, "no baseline before the window fills")

	sdm.Observe("jobs", []int{70})
	base, ok := sdm.Baseline("jobs")
	assert.True(t, ok)
	assert.InDelta(t, 70, base, 1e-9)
	assert.Zero(t, sdm.Drift("jobs"))
}

func TestScoreDriftMonitor_DetectsDrift(t *testing.T) {
	t.Parallel()

	sdm := observability.NewScoreDriftMonitor(2, 5)
	sdm.Observe("coaches", []int{50})
	sdm.Observe("coaches", []int{50})

	sdm.Observe("coaches", []int{90})
	sdm.Observe("coaches", []int{90})
	assert.InDelta(t, 40, sdm.Drift("coaches"), 1e-9)

	// pipelines are tracked independently
	assert.Zero(t, sdm.Drift("jobs"))
}

func TestScoreDriftMonitor_IgnoresEmptyAndDisabled(t *testing.T) {
	t.Parallel()

	sdm := observability.NewScoreDriftMonitor(1, 5)
	sdm.Observe("jobs", nil)
	_, ok := sdm.Baseline("jobs")
	assert.False(t, ok)

	off := observability.NewScoreDriftMonitor(0, 5)
	off.Observe("jobs", []int{10})
	_, ok = off.Baseline("jobs")
	assert.False(t, ok)

	var nilMonitor *observability.ScoreDriftMonitor
	assert.NotPanics(t, func() { nilMonitor.Observe("jobs", []int{1}) })
}

func TestScoreDriftMonitor_Reset(t *testing.T) {
	t.Parallel()

	sdm := observability.NewScoreDriftMonitor(1, 5)
	sdm.Observe("jobs", []int{10})
	sdm.Reset()
	_, ok := sdm.Baseline("jobs")
	assert.False(t, ok)
}
