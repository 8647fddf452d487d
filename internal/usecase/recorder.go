package usecase

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fairyhunter13/career-match/internal/domain"
	intobs "github.com/fairyhunter13/career-match/internal/observability"
)

// RecorderService persists accepted matches and lists them back. Both
// operations are fail soft: SaveMatch reports false and ExistingMatches an
// empty list instead of returning errors.
type RecorderService struct {
	Matches  domain.MatchStore
	Events   domain.MatchEvents
	Observer Observer
	Now      func() time.Time
}

// NewRecorderService constructs a RecorderService. events may be nil.
func NewRecorderService(m domain.MatchStore, events domain.MatchEvents, obs Observer) RecorderService {
	if obs == nil {
		obs = nopObserver{}
	}
	return RecorderService{Matches: m, Events: events, Observer: obs, Now: time.Now}
}

// SaveMatch stores a match with status "new" and reports whether it was written.
func (s RecorderService) SaveMatch(ctx domain.Context, userID, targetID string, matchType domain.MatchType, score int, reasons []string) bool {
	ok, _ := s.SaveMatchWithOutcome(ctx, userID, targetID, matchType, score, reasons)
	return ok
}

// SaveMatchWithOutcome is SaveMatch that also reports why a write did not happen.
func (s RecorderService) SaveMatchWithOutcome(ctx domain.Context, userID, targetID string, matchType domain.MatchType, score int, reasons []string) (bool, domain.Outcome) {
	lg := intobs.LoggerFromContext(ctx)
	obs := s.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	if s.Matches == nil {
		lg.Error("match not saved", slog.String("reason", string(domain.FailureStoreUnconfigured)))
		obs.MatchSaved(matchType, false)
		return false, domain.Failed(domain.FailureStoreUnconfigured, errStoreUnconfigured)
	}
	if err := validateMatch(userID, targetID, matchType, score); err != nil {
		lg.Warn("match not saved", slog.String("reason", string(domain.FailureInvalidInput)), slog.Any("error", err))
		obs.MatchSaved(matchType, false)
		return false, domain.Failed(domain.FailureInvalidInput, err)
	}
	if reasons == nil {
		reasons = []string{}
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	m := domain.PersistedMatch{
		UserID:    userID,
		TargetID:  targetID,
		MatchType: matchType,
		Score:     score,
		Reasons:   reasons,
		Status:    domain.MatchStatusNew,
		CreatedAt: now,
	}
	id, err := s.Matches.InsertMatch(ctx, m)
	if err != nil {
		lg.Error("match not saved",
			slog.String("reason", string(domain.FailureWriteFailed)),
			slog.String("user_id", userID),
			slog.String("target_id", targetID),
			slog.Any("error", err))
		obs.MatchSaved(matchType, false)
		return false, domain.Failed(domain.FailureWriteFailed, err)
	}
	obs.MatchSaved(matchType, true)
	lg.Info("match saved", slog.String("match_id", id), slog.String("user_id", userID), slog.String("match_type", string(matchType)))

	if s.Events != nil {
		ev := domain.MatchRecordedEvent{MatchID: id, UserID: userID, TargetID: targetID, MatchType: matchType, Score: score, At: now}
		if err := s.Events.PublishMatchRecorded(ctx, ev); err != nil {
			// a publish failure does not undo the saved row
			lg.Warn("match event not published", slog.String("match_id", id), slog.Any("error", err))
		}
	}
	return true, domain.Outcome{}
}

// ExistingMatches lists a user's persisted matches by score descending.
func (s RecorderService) ExistingMatches(ctx domain.Context, userID string) []domain.PersistedMatch {
	out, _ := s.ExistingMatchesWithOutcome(ctx, userID)
	return out
}

// ExistingMatchesWithOutcome is ExistingMatches that also reports why a result is empty.
func (s RecorderService) ExistingMatchesWithOutcome(ctx domain.Context, userID string) ([]domain.PersistedMatch, domain.Outcome) {
	lg := intobs.LoggerFromContext(ctx)
	if s.Matches == nil {
		lg.Error("existing matches unavailable", slog.String("reason", string(domain.FailureStoreUnconfigured)))
		return []domain.PersistedMatch{}, domain.Failed(domain.FailureStoreUnconfigured, errStoreUnconfigured)
	}
	if strings.TrimSpace(userID) == "" {
		lg.Warn("existing matches rejected", slog.String("reason", string(domain.FailureInvalidInput)))
		return []domain.PersistedMatch{}, domain.Failed(domain.FailureInvalidInput, fmt.Errorf("%w: user id required", domain.ErrInvalidArgument))
	}
	ms, err := s.Matches.ListMatchesForUser(ctx, userID)
	if err != nil {
		lg.Error("existing matches unavailable",
			slog.String("reason", string(domain.FailureReadFailed)),
			slog.String("user_id", userID),
			slog.Any("error", err))
		return []domain.PersistedMatch{}, domain.Failed(domain.FailureReadFailed, err)
	}
	if ms == nil {
		ms = []domain.PersistedMatch{}
	}
	return ms, domain.Outcome{}
}

func validateMatch(userID, targetID string, matchType domain.MatchType, score int) error {
	switch {
	case strings.TrimSpace(userID) == "":
		return fmt.Errorf("%w: user id required", domain.ErrInvalidArgument)
	case strings.TrimSpace(targetID) == "":
		return fmt.Errorf("%w: target id required", domain.ErrInvalidArgument)
	case !matchType.Valid():
		return fmt.Errorf("%w: unknown match type %q", domain.ErrInvalidArgument, matchType)
	case score < 0 || score > 100:
		return fmt.Errorf("%w: score %d out of range", domain.ErrInvalidArgument, score)
	}
	return nil
}
