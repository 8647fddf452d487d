package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/career-match/internal/domain"
)

func fintechCandidate() domain.CandidateProfile {
	return domain.CandidateProfile{
		ID:              "cand-1",
		Name:            "Ada",
		Sector:          "Fintech",
		Title:           "Backend Engineer",
		City:            "Berlin",
		ExperienceLevel: "senior",
		Languages:       []string{"English"},
		Skills:          []string{"Go", "SQL"},
		Goals:           []domain.Goal{{Label: "Backend Engineer"}},
	}
}

func fintechJob() domain.JobPosting {
	return domain.JobPosting{
		PostID:    "job-1",
		Sector:    "Fintech",
		Position:  "Backend Engineer",
		Level:     "Senior",
		Location:  "berlin",
		WorkType:  "remote",
		Languages: []string{"english"},
		Skills:    []string{"go", "sql"},
	}
}

func TestScoreCandidateJob_FullFit(t *testing.T) {
	t.Parallel()

	got := ScoreCandidateJob(fintechCandidate(), fintechJob(), DefaultJobWeights)

	// every signal at 100 except goals at 50 (one of two job context entries)
	assert.Equal(t, 98, got.Score)
	assert.Equal(t, []string{ReasonSector, ReasonTitle, ReasonLevel, ReasonLocation, ReasonSkills}, got.Reasons)
	assert.Empty(t, got.Weaknesses)
	require.Len(t, got.Signals, 7)
}

func TestScoreCandidateJob_SectorDominates(t *testing.T) {
	t.Parallel()

	other := fintechJob()
	other.Sector = "Logistics"

	same := ScoreCandidateJob(fintechCandidate(), fintechJob(), DefaultJobWeights)
	diff := ScoreCandidateJob(fintechCandidate(), other, DefaultJobWeights)

	assert.Greater(t, same.Score, diff.Score)
	assert.Contains(t, diff.Weaknesses, WeaknessSector)
	assert.NotContains(t, diff.Reasons, ReasonSector)
}

func TestScoreCandidateJob_MissingSkills(t *testing.T) {
	t.Parallel()

	job := fintechJob()
	job.Skills = []string{"rust", "kotlin", "swift"}

	got := ScoreCandidateJob(fintechCandidate(), job, DefaultJobWeights)
	assert.Contains(t, got.Weaknesses, WeaknessSkills)
	assert.NotContains(t, got.Reasons, ReasonSkills)
}

func TestScoreCandidateJob_EmptyProfiles(t *testing.T) {
	t.Parallel()

	got := ScoreCandidateJob(domain.CandidateProfile{}, domain.JobPosting{}, DefaultJobWeights)
	assert.Zero(t, got.Score)
	assert.Empty(t, got.Reasons)
	assert.Equal(t, []string{WeaknessSector, WeaknessSkills}, got.Weaknesses)
}

func TestScoreCandidateCoach(t *testing.T) {
	t.Parallel()

	cand := fintechCandidate()
	cand.Sector = "fintech"
	cand.Goals = []domain.Goal{{Label: "Career change"}}
	coach := domain.CoachProfile{
		ID:              "coach-1",
		Title:           "Fintech coach",
		Languages:       "English, German",
		Location:        "Berlin",
		Specializations: []string{"career change"},
		Rating:          4.5,
		ExperienceYears: 8,
	}

	got := ScoreCandidateCoach(cand, coach, DefaultCoachWeights)

	// 30*100 + 15*50 + 15*50 + 20*90 + 10*80 + 10*100 over 100
	assert.Equal(t, 81, got.Score)
	assert.Equal(t, []string{ReasonCoachGoals, ReasonCoachSector, ReasonCoachRating, ReasonCoachExperience}, got.Reasons)
	assert.Empty(t, got.Weaknesses)
}

func TestScoreCandidateCoach_BonusesCapped(t *testing.T) {
	t.Parallel()

	coach := domain.CoachProfile{Rating: 9, ExperienceYears: 40, Specialization: "leadership"}
	got := ScoreCandidateCoach(domain.CandidateProfile{}, coach, DefaultCoachWeights)

	require.Len(t, got.Signals, 6)
	assert.Equal(t, 100.0, got.Signals[3].Score)
	assert.Equal(t, 100.0, got.Signals[4].Score)
	// rating and experience only: (20*100 + 10*100) / 100
	assert.Equal(t, 30, got.Score)
}
