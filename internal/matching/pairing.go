package matching

import (
	"math"
	"strings"

	"github.com/fairyhunter13/career-match/internal/domain"
)

// Explained is a scored pairing with its explanation.
type Explained struct {
	Score      int
	Signals    []Signal
	Reasons    []string
	Weaknesses []string
}

// ScoreCandidateJob scores a candidate against a job posting. The candidate is
// always the left operand of the text signals so a pair scores the same from
// either side.
func ScoreCandidateJob(c domain.CandidateProfile, j domain.JobPosting, w JobWeights) Explained {
	goals := domain.GoalLabels(c.Goals)
	var jobContext []string
	for _, s := range []string{j.WorkType, j.Position} {
		if strings.TrimSpace(s) != "" {
			jobContext = append(jobContext, s)
		}
	}

	sector := ExactMatch(c.Sector, j.Sector, pairingExactBonus)
	title := TextSimilarity(c.Title, j.Position)
	level := ExactMatch(c.ExperienceLevel, j.Level, pairingExactBonus)
	location := ExactMatch(c.City, j.Location, pairingExactBonus)
	languages := StringSetSimilarity(c.Languages, j.Languages)
	skills := StringSetSimilarity(c.Skills, j.Skills)
	goalFit := StringSetSimilarity(goals, jobContext)

	signals := []Signal{
		{Name: "sector", Score: sector, Weight: w.Sector},
		{Name: "title", Score: title, Weight: w.Title},
		{Name: "level", Score: level, Weight: w.Level},
		{Name: "location", Score: location, Weight: w.Location},
		{Name: "languages", Score: languages, Weight: w.Languages},
		{Name: "skills", Score: skills, Weight: w.Skills},
		{Name: "goals", Score: goalFit, Weight: w.Goals},
	}

	out := Explained{
		Score:      WeightedScore(signals),
		Signals:    signals,
		Reasons:    []string{},
		Weaknesses: []string{},
	}
	if sector > sectorReasonMin {
		out.Reasons = append(out.Reasons, ReasonSector)
	} else if sector == 0 {
		out.Weaknesses = append(out.Weaknesses, WeaknessSector)
	}
	if title > titleReasonMin {
		out.Reasons = append(out.Reasons, ReasonTitle)
	}
	if level > levelReasonMin {
		out.Reasons = append(out.Reasons, ReasonLevel)
	}
	if location > locationReasonMin {
		out.Reasons = append(out.Reasons, ReasonLocation)
	}
	if skills > skillsReasonMin {
		out.Reasons = append(out.Reasons, ReasonSkills)
	} else {
		out.Weaknesses = append(out.Weaknesses, WeaknessSkills)
	}
	return out
}

// ScoreCandidateCoach scores a coach for a candidate. No weaknesses are produced.
func ScoreCandidateCoach(c domain.CandidateProfile, co domain.CoachProfile, w CoachWeights) Explained {
	goals := StringSetSimilarity(co.SpecializationList(), domain.GoalLabels(c.Goals))
	sector := TextSimilarity(co.Title, c.Sector)
	languages := TextSimilarity(co.Languages, strings.Join(c.Languages, " "))
	rating := math.Min(100, co.Rating*20)
	experience := math.Min(100, float64(co.ExperienceYears)*10)
	location := TextSimilarity(co.Location, c.City)

	signals := []Signal{
		{Name: "goals", Score: goals, Weight: w.Goals},
		{Name: "sector", Score: sector, Weight: w.Sector},
		{Name: "languages", Score: languages, Weight: w.Languages},
		{Name: "rating", Score: rating, Weight: w.Rating},
		{Name: "experience", Score: experience, Weight: w.Experience},
		{Name: "location", Score: location, Weight: w.Location},
	}

	out := Explained{
		Score:      WeightedScore(signals),
		Signals:    signals,
		Reasons:    []string{},
		Weaknesses: []string{},
	}
	if goals > coachGoalsReasonMin {
		out.Reasons = append(out.Reasons, ReasonCoachGoals)
	}
	if sector > coachSectorReasonMin {
		out.Reasons = append(out.Reasons, ReasonCoachSector)
	}
	if rating > coachRatingReasonMin {
		out.Reasons = append(out.Reasons, ReasonCoachRating)
	}
	if experience > coachExperienceReasonMin {
		out.Reasons = append(out.Reasons, ReasonCoachExperience)
	}
	return out
}
