// Package observability provides logging, metrics, and tracing.
//
// It integrates with OpenTelemetry for tracing and Prometheus for metrics.
package observability

import (
	"log/slog"
	"math"
	"sync"
)

// ScoreDriftMonitor watches the average score each pipeline returns. The first
// full window becomes the baseline; later windows are compared against it and a
// warning is logged when the absolute difference exceeds the threshold.
type ScoreDriftMonitor struct {
	mu             sync.Mutex
	windowSize     int
	driftThreshold float64
	baseline       map[string]float64
	recent         map[string][]float64
}

// NewScoreDriftMonitor creates a monitor. A non-positive window disables it.
func NewScoreDriftMonitor(windowSize int, driftThreshold float64) *ScoreDriftMonitor {
	return &ScoreDriftMonitor{
		windowSize:     windowSize,
		driftThreshold: driftThreshold,
		baseline:       make(map[string]float64),
		recent:         make(map[string][]float64),
	}
}

// Observe records the average score of one pipeline call. Calls that returned
// nothing are ignored.
func (m *ScoreDriftMonitor) Observe(pipeline string, scores []int) {
	if m == nil || m.windowSize <= 0 || len(scores) == 0 {
		return
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))

	m.mu.Lock()
	defer m.mu.Unlock()

	window := append(m.recent[pipeline], avg)
	if len(window) > m.windowSize {
		window = window[len(window)-m.windowSize:]
	}
	m.recent[pipeline] = window
	if len(window) < m.windowSize {
		return
	}

	mean := average(window)
	base, ok := m.baseline[pipeline]
	if !ok {
		m.baseline[pipeline] = mean
		slog.Info("match score baseline established",
			slog.String("pipeline", pipeline),
			slog.Float64("baseline", mean))
		return
	}

	drift := math.Abs(mean - base)
	RecordScoreDrift(pipeline, drift)
	if drift > m.driftThreshold {
		slog.Warn("match score drift detected",
			slog.String("pipeline", pipeline),
			slog.Float64("drift", drift),
			slog.Float64("baseline", base),
			slog.Float64("threshold", m.driftThreshold))
	}
}

// Drift returns the current drift for a pipeline, or 0 before a baseline exists.
func (m *ScoreDriftMonitor) Drift(pipeline string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	base, ok := m.baseline[pipeline]
	if !ok || len(m.recent[pipeline]) == 0 {
		return 0
	}
	return math.Abs(average(m.recent[pipeline]) - base)
}

// Baseline returns the established baseline for a pipeline.
func (m *ScoreDriftMonitor) Baseline(pipeline string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.baseline[pipeline]
	return b, ok
}

// Reset drops every baseline and window.
func (m *ScoreDriftMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseline = make(map[string]float64)
	m.recent = make(map[string][]float64)
}

func average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
