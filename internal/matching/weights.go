package matching

// JobWeights is the weight table for candidate/job pairings, used in both directions.
type JobWeights struct {
	Sector    float64
	Title     float64
	Level     float64
	Location  float64
	Languages float64
	Skills    float64
	Goals     float64
}

// CoachWeights is the weight table for candidate/coach pairings.
type CoachWeights struct {
	Goals      float64
	Sector     float64
	Languages  float64
	Rating     float64
	Experience float64
	Location   float64
}

// DefaultJobWeights and DefaultCoachWeights are the production tables.
var (
	DefaultJobWeights = JobWeights{
		Sector:    25,
		Title:     20,
		Level:     15,
		Location:  10,
		Languages: 10,
		Skills:    15,
		Goals:     5,
	}
	DefaultCoachWeights = CoachWeights{
		Goals:      30,
		Sector:     15,
		Languages:  15,
		Rating:     20,
		Experience: 10,
		Location:   10,
	}
)

// Exact-match bonus used by the pairing signals.
const pairingExactBonus = 100

// Reason thresholds. A signal strictly above its threshold produces the reason.
const (
	sectorReasonMin   = 50
	titleReasonMin    = 40
	levelReasonMin    = 50
	locationReasonMin = 50
	skillsReasonMin   = 30

	coachGoalsReasonMin      = 30
	coachSectorReasonMin     = 30
	coachRatingReasonMin     = 80
	coachExperienceReasonMin = 50
)

// Reason and weakness labels.
const (
	ReasonSector   = "Same sector"
	ReasonTitle    = "Role matches title"
	ReasonLevel    = "Experience level matches"
	ReasonLocation = "Same location"
	ReasonSkills   = "Strong skills overlap"

	WeaknessSector = "different sector"
	WeaknessSkills = "missing skills"

	ReasonCoachGoals      = "Specializes in your goals"
	ReasonCoachSector     = "Experience in your sector"
	ReasonCoachRating     = "Highly rated"
	ReasonCoachExperience = "Experienced coach"
)

// Result limits per pipeline.
const (
	JobPoolSize       = 100
	CandidatePoolSize = 200

	MaxJobResults       = 20
	MaxCandidateResults = 30
	MaxCoachResults     = 10
)
