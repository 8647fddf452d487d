package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/career-match/internal/domain"
)

// MatchRepo persists accepted matches.
type MatchRepo struct{ Pool PgxPool }

// NewMatchRepo constructs a MatchRepo with the given pool.
func NewMatchRepo(p PgxPool) *MatchRepo { return &MatchRepo{Pool: p} }

// InsertMatch stores m and returns its id (generates one if empty). A duplicate
// (user, target, type) maps to domain.ErrConflict.
func (r *MatchRepo) InsertMatch(ctx domain.Context, m domain.PersistedMatch) (string, error) {
	ctx, span := startSpan(ctx, "repo.matches", "matches.Insert", "INSERT", "matches")
	defer span.End()
	span.SetAttributes(attribute.String("match.type", string(m.MatchType)))
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = domain.MatchStatusNew
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	reasons := m.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	rb, err := json.Marshal(reasons)
	if err != nil {
		return "", fmt.Errorf("op=matches.insert: %w", err)
	}
	q := `INSERT INTO matches (id, user_id, target_id, match_type, score, reasons, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := r.Pool.Exec(ctx, q, id, m.UserID, m.TargetID, string(m.MatchType), m.Score, rb, string(m.Status), m.CreatedAt); err != nil {
		span.RecordError(err)
		return "", mapErr("matches.insert", err)
	}
	return id, nil
}

// ListMatchesForUser returns a user's matches, highest score first.
func (r *MatchRepo) ListMatchesForUser(ctx domain.Context, userID string) ([]domain.PersistedMatch, error) {
	ctx, span := startSpan(ctx, "repo.matches", "matches.ListForUser", "SELECT", "matches")
	defer span.End()
	q := `SELECT id, user_id, target_id, match_type, score, reasons, status, created_at
		FROM matches WHERE user_id=$1 ORDER BY score DESC, created_at DESC`
	rows, err := r.Pool.Query(ctx, q, userID)
	if err != nil {
		span.RecordError(err)
		return nil, mapErr("matches.list_for_user", err)
	}
	defer rows.Close()
	out := []domain.PersistedMatch{}
	for rows.Next() {
		var m domain.PersistedMatch
		var matchType, status string
		var reasons []byte
		if err := rows.Scan(&m.ID, &m.UserID, &m.TargetID, &matchType, &m.Score, &reasons, &status, &m.CreatedAt); err != nil {
			return nil, mapErr("matches.list_for_user", err)
		}
		m.MatchType = domain.MatchType(matchType)
		m.Status = domain.MatchStatus(status)
		m.Reasons = []string{}
		if len(reasons) > 0 {
			if err := json.Unmarshal(reasons, &m.Reasons); err != nil {
				return nil, fmt.Errorf("op=matches.list_for_user: decode reasons: %w", err)
			}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("matches.list_for_user", err)
	}
	return out, nil
}
