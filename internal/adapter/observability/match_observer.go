package observability

import (
	"time"

	"github.com/fairyhunter13/career-match/internal/domain"
)

// MatchObserver exports pipeline and recorder outcomes to Prometheus and feeds
// the score drift monitor.
type MatchObserver struct {
	Drift *ScoreDriftMonitor
}

// NewMatchObserver constructs a MatchObserver. drift may be nil.
func NewMatchObserver(drift *ScoreDriftMonitor) MatchObserver {
	return MatchObserver{Drift: drift}
}

// PipelineDone records a completed pipeline call.
func (o MatchObserver) PipelineDone(pipeline string, dur time.Duration, scores []int) {
	ObservePipeline(pipeline, dur, scores)
	o.Drift.Observe(pipeline, scores)
}

// PipelineFailed records a pipeline call that degraded to an empty result.
func (o MatchObserver) PipelineFailed(pipeline string, reason domain.FailureReason) {
	MatchPipelineRequestsTotal.WithLabelValues(pipeline).Inc()
	RecordPipelineFailure(pipeline, string(reason))
}

// MatchSaved records a persisted match write.
func (o MatchObserver) MatchSaved(matchType domain.MatchType, ok bool) {
	RecordMatchSaved(string(matchType), ok)
}
