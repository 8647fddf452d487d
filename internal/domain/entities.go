package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrRateLimited     = errors.New("rate limited")
	ErrUnavailable     = errors.New("store unavailable")
	ErrInternal        = errors.New("internal error")
)

// Role values that mark a non-staff (candidate) account. A NULL role is also
// treated as a candidate account by the store.
const (
	RoleUser = "user"
)

// MatchType discriminates what a match points at.
type MatchType string

const (
	MatchTypeJob       MatchType = "job"
	MatchTypeCoach     MatchType = "coach"
	MatchTypeCandidate MatchType = "candidate"
)

// Valid reports whether t is one of the known match types.
func (t MatchType) Valid() bool {
	switch t {
	case MatchTypeJob, MatchTypeCoach, MatchTypeCandidate:
		return true
	}
	return false
}

// MatchStatus is the lifecycle state of a persisted match.
type MatchStatus string

// MatchStatusNew is the status every persisted match is created with.
const MatchStatusNew MatchStatus = "new"

// DefaultMinScore is applied when MatchFilters.MinScore is absent.
const DefaultMinScore = 20

// CandidateProfile is a candidate as read from the record store.
type CandidateProfile struct {
	ID              string
	Name            string
	Email           string
	Role            *string
	Sector          string
	Title           string
	City            string
	ExperienceLevel string
	Languages       []string
	Skills          []string
	Goals           []Goal
	AvatarURL       string
	CreatedAt       time.Time
}

// DisplayName returns the name, falling back to the email.
func (c CandidateProfile) DisplayName() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return c.Email
}

// Contactable reports whether the candidate has a name or an email.
func (c CandidateProfile) Contactable() bool {
	return strings.TrimSpace(c.Name) != "" || strings.TrimSpace(c.Email) != ""
}

// JobPosting is a company job post as read from the record store.
type JobPosting struct {
	PostID         string
	CompanyID      string
	Sector         string
	Position       string
	Level          string
	Location       string
	WorkType       string
	Languages      []string
	Skills         []string
	SalaryMin      *int
	SalaryMax      *int
	Boosted        bool
	BoostExpiresAt *time.Time
	CreatedAt      time.Time
}

// BoostActive reports whether the posting carries a boost that has not expired at now.
func (j JobPosting) BoostActive(now time.Time) bool {
	if !j.Boosted {
		return false
	}
	return j.BoostExpiresAt == nil || j.BoostExpiresAt.After(now)
}

// CoachProfile is a coach as read from the record store.
type CoachProfile struct {
	ID              string
	Name            string
	Title           string
	Languages       string
	Location        string
	Specializations []string
	Specialization  string
	Rating          float64
	ExperienceYears int
	HourlyRate      float64
	ReviewCount     int
	Featured        bool
	FeaturedUntil   *time.Time
	AvatarURL       string
}

// SpecializationList returns the specialization set, falling back to the single
// specialization field when the set is empty.
func (c CoachProfile) SpecializationList() []string {
	if len(c.Specializations) > 0 {
		return c.Specializations
	}
	if strings.TrimSpace(c.Specialization) != "" {
		return []string{c.Specialization}
	}
	return nil
}

// FeatureActive reports whether the coach is featured at now.
func (c CoachProfile) FeatureActive(now time.Time) bool {
	if !c.Featured {
		return false
	}
	return c.FeaturedUntil == nil || c.FeaturedUntil.After(now)
}

// MatchResult is one ranked entry produced by a matching pipeline.
// Invariants: MatchScore in [0,100]; never mutated after creation.
type MatchResult struct {
	ID              string         `json:"id"`
	Type            MatchType      `json:"type"`
	TargetID        string         `json:"targetId"`
	Name            string         `json:"name"`
	Title           string         `json:"title"`
	MatchScore      int            `json:"matchScore"`
	MatchReasons    []string       `json:"matchReasons"`
	MatchWeaknesses []string       `json:"matchWeaknesses"`
	Avatar          string         `json:"avatar,omitempty"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// MatchID builds the composite identity of a match.
func MatchID(sourceID, targetID string) string {
	return "match-" + sourceID + "-" + targetID
}

// MatchFilters are optional caller supplied constraints.
type MatchFilters struct {
	Goal     string
	Level    string
	Sector   string
	Language string
	Location string
	MinScore *int
}

// EffectiveMinScore returns MinScore or DefaultMinScore when unset. A nil
// receiver is valid.
func (f *MatchFilters) EffectiveMinScore() int {
	if f == nil || f.MinScore == nil {
		return DefaultMinScore
	}
	return *f.MinScore
}

// SectorFilter returns the sector post-filter, or "" when absent.
func (f *MatchFilters) SectorFilter() string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f.Sector)
}

// PersistedMatch is a match a user accepted and stored.
type PersistedMatch struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	TargetID  string      `json:"target_id"`
	MatchType MatchType   `json:"match_type"`
	Score     int         `json:"score"`
	Reasons   []string    `json:"reasons"`
	Status    MatchStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// MatchRecordedEvent is emitted after a match has been persisted, for the
// notification system to pick up.
type MatchRecordedEvent struct {
	MatchID   string    `json:"match_id"`
	UserID    string    `json:"user_id"`
	TargetID  string    `json:"target_id"`
	MatchType MatchType `json:"match_type"`
	Score     int       `json:"score"`
	At        time.Time `json:"at"`
}

// Repositories (ports)

// CandidateStore reads candidate profiles.
type CandidateStore interface {
	// GetCandidate returns ErrNotFound (wrapped) when the id is unknown.
	GetCandidate(ctx Context, id string) (CandidateProfile, error)
	// ListCandidates returns up to limit candidates whose role is in roles,
	// or NULL when includeNullRole is set.
	ListCandidates(ctx Context, roles []string, includeNullRole bool, limit int) ([]CandidateProfile, error)
}

// JobStore reads job postings.
type JobStore interface {
	GetJob(ctx Context, id string) (JobPosting, error)
	// ListRecentJobs returns up to limit postings, newest first.
	ListRecentJobs(ctx Context, limit int) ([]JobPosting, error)
}

// CoachStore reads coach profiles.
type CoachStore interface {
	ListCoachesByRating(ctx Context) ([]CoachProfile, error)
}

// MatchStore persists accepted matches.
type MatchStore interface {
	InsertMatch(ctx Context, m PersistedMatch) (string, error)
	// ListMatchesForUser returns matches ordered by score descending.
	ListMatchesForUser(ctx Context, userID string) ([]PersistedMatch, error)
}

// MatchEvents publishes match lifecycle events (port to the notification system).
type MatchEvents interface {
	PublishMatchRecorded(ctx Context, ev MatchRecordedEvent) error
}

// Context is an alias so the domain reads uniformly; adapters pass context.Context through.
type Context = context.Context
