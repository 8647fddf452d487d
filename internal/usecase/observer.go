package usecase

import (
	"time"

	"github.com/fairyhunter13/career-match/internal/domain"
)

// Pipeline names used for logging and metrics labels.
const (
	PipelineCandidateJobs    = "candidate_jobs"
	PipelineJobCandidates    = "job_candidates"
	PipelineCandidateCoaches = "candidate_coaches"
)

// Observer receives pipeline and recorder outcomes for metrics. Implementations
// must be safe for concurrent use.
type Observer interface {
	PipelineDone(pipeline string, dur time.Duration, scores []int)
	PipelineFailed(pipeline string, reason domain.FailureReason)
	MatchSaved(matchType domain.MatchType, ok bool)
}

type nopObserver struct{}

func (nopObserver) PipelineDone(string, time.Duration, []int) {}
func (nopObserver) PipelineFailed(string, domain.FailureReason) {}
func (nopObserver) MatchSaved(domain.MatchType, bool) {}
