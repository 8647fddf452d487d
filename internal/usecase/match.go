// Package usecase contains application business logic services.
package usecase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/fairyhunter13/career-match/internal/domain"
	"github.com/fairyhunter13/career-match/internal/matching"
	intobs "github.com/fairyhunter13/career-match/internal/observability"
)

var errStoreUnconfigured = errors.New("record store not configured")

// MatchService runs the three matching pipelines. Every pipeline is fail soft:
// a missing store, a missing anchor or a read error yields an empty list.
type MatchService struct {
	Candidates domain.CandidateStore
	Jobs       domain.JobStore
	Coaches    domain.CoachStore
	Observer   Observer
	// Now is used for boost and feature expiry in Extra.
	Now func() time.Time
}

// NewMatchService constructs a MatchService. Any store may be nil; pipelines
// that need it then return empty results.
func NewMatchService(c domain.CandidateStore, j domain.JobStore, co domain.CoachStore, obs Observer) MatchService {
	if obs == nil {
		obs = nopObserver{}
	}
	return MatchService{Candidates: c, Jobs: j, Coaches: co, Observer: obs, Now: time.Now}
}

// CandidateJobs ranks recent job postings for a candidate.
func (s MatchService) CandidateJobs(ctx domain.Context, candidateID string, f *domain.MatchFilters) []domain.MatchResult {
	out, _ := s.CandidateJobsWithOutcome(ctx, candidateID, f)
	return out
}

// JobCandidates ranks candidate accounts for a job posting.
func (s MatchService) JobCandidates(ctx domain.Context, jobID string, f *domain.MatchFilters) []domain.MatchResult {
	out, _ := s.JobCandidatesWithOutcome(ctx, jobID, f)
	return out
}

// CandidateCoaches ranks coaches for a candidate.
func (s MatchService) CandidateCoaches(ctx domain.Context, candidateID string, f *domain.MatchFilters) []domain.MatchResult {
	out, _ := s.CandidateCoachesWithOutcome(ctx, candidateID, f)
	return out
}

// CandidateJobsWithOutcome is CandidateJobs that also reports why a result is empty.
func (s MatchService) CandidateJobsWithOutcome(ctx domain.Context, candidateID string, f *domain.MatchFilters) ([]domain.MatchResult, domain.Outcome) {
	start := time.Now()
	ctx = intobs.ContextWithLogAttrs(ctx, slog.String("pipeline", PipelineCandidateJobs), slog.String("anchor_id", candidateID))
	if s.Candidates == nil || s.Jobs == nil {
		return s.fail(ctx, PipelineCandidateJobs, domain.Failed(domain.FailureStoreUnconfigured, errStoreUnconfigured))
	}
	cand, err := s.Candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return s.fail(ctx, PipelineCandidateJobs, domain.ReadFailure(err))
	}
	jobs, err := s.Jobs.ListRecentJobs(ctx, matching.JobPoolSize)
	if err != nil {
		return s.fail(ctx, PipelineCandidateJobs, domain.Failed(domain.FailureReadFailed, err))
	}

	now := s.now()
	results := make([]domain.MatchResult, 0, len(jobs))
	for _, j := range jobs {
		if !matching.SameSector(j.Sector, f.SectorFilter()) {
			continue
		}
		ex := matching.ScoreCandidateJob(cand, j, matching.DefaultJobWeights)
		results = append(results, jobResult(cand.ID, j, ex, now))
	}
	results = matching.FilterMinScore(results, f.EffectiveMinScore())
	results = matching.Rank(results, matching.MaxJobResults)
	return s.done(ctx, PipelineCandidateJobs, start, results)
}

// JobCandidatesWithOutcome is JobCandidates that also reports why a result is empty.
func (s MatchService) JobCandidatesWithOutcome(ctx domain.Context, jobID string, f *domain.MatchFilters) ([]domain.MatchResult, domain.Outcome) {
	start := time.Now()
	ctx = intobs.ContextWithLogAttrs(ctx, slog.String("pipeline", PipelineJobCandidates), slog.String("anchor_id", jobID))
	if s.Candidates == nil || s.Jobs == nil {
		return s.fail(ctx, PipelineJobCandidates, domain.Failed(domain.FailureStoreUnconfigured, errStoreUnconfigured))
	}
	job, err := s.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return s.fail(ctx, PipelineJobCandidates, domain.ReadFailure(err))
	}
	pool, err := s.Candidates.ListCandidates(ctx, []string{domain.RoleUser}, true, matching.CandidatePoolSize)
	if err != nil {
		return s.fail(ctx, PipelineJobCandidates, domain.Failed(domain.FailureReadFailed, err))
	}

	results := make([]domain.MatchResult, 0, len(pool))
	for _, c := range pool {
		if !c.Contactable() || !matching.SameSector(c.Sector, f.SectorFilter()) {
			continue
		}
		ex := matching.ScoreCandidateJob(c, job, matching.DefaultJobWeights)
		results = append(results, candidateResult(job.PostID, c, ex))
	}
	results = matching.FilterMinScore(results, f.EffectiveMinScore())
	results = matching.Rank(results, matching.MaxCandidateResults)
	return s.done(ctx, PipelineJobCandidates, start, results)
}

// CandidateCoachesWithOutcome is CandidateCoaches that also reports why a result is empty.
// No minimum score applies to coaches.
func (s MatchService) CandidateCoachesWithOutcome(ctx domain.Context, candidateID string, _ *domain.MatchFilters) ([]domain.MatchResult, domain.Outcome) {
	start := time.Now()
	ctx = intobs.ContextWithLogAttrs(ctx, slog.String("pipeline", PipelineCandidateCoaches), slog.String("anchor_id", candidateID))
	if s.Candidates == nil || s.Coaches == nil {
		return s.fail(ctx, PipelineCandidateCoaches, domain.Failed(domain.FailureStoreUnconfigured, errStoreUnconfigured))
	}
	cand, err := s.Candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return s.fail(ctx, PipelineCandidateCoaches, domain.ReadFailure(err))
	}
	coaches, err := s.Coaches.ListCoachesByRating(ctx)
	if err != nil {
		return s.fail(ctx, PipelineCandidateCoaches, domain.Failed(domain.FailureReadFailed, err))
	}

	now := s.now()
	results := make([]domain.MatchResult, 0, len(coaches))
	for _, co := range coaches {
		ex := matching.ScoreCandidateCoach(cand, co, matching.DefaultCoachWeights)
		results = append(results, coachResult(cand.ID, co, ex, now))
	}
	results = matching.Rank(results, matching.MaxCoachResults)
	return s.done(ctx, PipelineCandidateCoaches, start, results)
}

func (s MatchService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s MatchService) observer() Observer {
	if s.Observer == nil {
		return nopObserver{}
	}
	return s.Observer
}

func (s MatchService) fail(ctx domain.Context, pipeline string, o domain.Outcome) ([]domain.MatchResult, domain.Outcome) {
	lg := intobs.LoggerFromContext(ctx)
	attrs := []any{
		slog.String("reason", string(o.Reason)),
		slog.Any("error", o.Err),
	}
	if o.Reason == domain.FailureAnchorNotFound {
		lg.Info("match pipeline anchor not found", attrs...)
	} else {
		lg.Error("match pipeline degraded to empty result", attrs...)
	}
	s.observer().PipelineFailed(pipeline, o.Reason)
	return []domain.MatchResult{}, o
}

func (s MatchService) done(ctx domain.Context, pipeline string, start time.Time, results []domain.MatchResult) ([]domain.MatchResult, domain.Outcome) {
	dur := time.Since(start)
	scores := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.MatchScore
	}
	s.observer().PipelineDone(pipeline, dur, scores)
	intobs.LoggerFromContext(ctx).Debug("match pipeline completed",
		slog.Int("results", len(results)),
		slog.Duration("duration", dur))
	return results, domain.Outcome{}
}

func jobResult(candidateID string, j domain.JobPosting, ex matching.Explained, now time.Time) domain.MatchResult {
	extra := map[string]any{
		"location":   j.Location,
		"company_id": j.CompanyID,
		"work_type":  j.WorkType,
		"boosted":    j.BoostActive(now),
	}
	if j.SalaryMin != nil {
		extra["salary_min"] = *j.SalaryMin
	}
	if j.SalaryMax != nil {
		extra["salary_max"] = *j.SalaryMax
	}
	return domain.MatchResult{
		ID:              domain.MatchID(candidateID, j.PostID),
		Type:            domain.MatchTypeJob,
		TargetID:        j.PostID,
		Name:            j.Position,
		Title:           j.Sector,
		MatchScore:      ex.Score,
		MatchReasons:    ex.Reasons,
		MatchWeaknesses: ex.Weaknesses,
		Extra:           extra,
	}
}

func candidateResult(jobID string, c domain.CandidateProfile, ex matching.Explained) domain.MatchResult {
	return domain.MatchResult{
		ID:              domain.MatchID(jobID, c.ID),
		Type:            domain.MatchTypeCandidate,
		TargetID:        c.ID,
		Name:            c.DisplayName(),
		Title:           c.Title,
		MatchScore:      ex.Score,
		MatchReasons:    ex.Reasons,
		MatchWeaknesses: ex.Weaknesses,
		Avatar:          c.AvatarURL,
		Extra: map[string]any{
			"city":  c.City,
			"level": c.ExperienceLevel,
			"email": c.Email,
		},
	}
}

func coachResult(candidateID string, co domain.CoachProfile, ex matching.Explained, now time.Time) domain.MatchResult {
	return domain.MatchResult{
		ID:              domain.MatchID(candidateID, co.ID),
		Type:            domain.MatchTypeCoach,
		TargetID:        co.ID,
		Name:            co.Name,
		Title:           co.Title,
		MatchScore:      ex.Score,
		MatchReasons:    ex.Reasons,
		MatchWeaknesses: ex.Weaknesses,
		Avatar:          co.AvatarURL,
		Extra: map[string]any{
			"rating":           co.Rating,
			"hourly_rate":      co.HourlyRate,
			"review_count":     co.ReviewCount,
			"experience_years": co.ExperienceYears,
			"location":         co.Location,
			"featured":         co.FeatureActive(now),
		},
	}
}
