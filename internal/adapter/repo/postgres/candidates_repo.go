package postgres

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/career-match/internal/domain"
)

// CandidateRepo reads candidate profiles from the users table.
type CandidateRepo struct{ Pool PgxPool }

// NewCandidateRepo constructs a CandidateRepo with the given pool.
func NewCandidateRepo(p PgxPool) *CandidateRepo { return &CandidateRepo{Pool: p} }

const candidateColumns = `id, COALESCE(name,''), COALESCE(email,''), role, COALESCE(sector,''), COALESCE(title,''),
	COALESCE(city,''), COALESCE(experience_level,''), COALESCE(languages,'{}'), COALESCE(superpowers,'{}'),
	goals, COALESCE(avatar_url,''), created_at`

func scanCandidate(row interface{ Scan(dest ...any) error }) (domain.CandidateProfile, error) {
	var c domain.CandidateProfile
	var goals []byte
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Role, &c.Sector, &c.Title,
		&c.City, &c.ExperienceLevel, &c.Languages, &c.Skills,
		&goals, &c.AvatarURL, &c.CreatedAt)
	if err != nil {
		return domain.CandidateProfile{}, err
	}
	c.Goals = decodeGoals(goals)
	return c, nil
}

// GetCandidate loads a candidate by id.
func (r *CandidateRepo) GetCandidate(ctx domain.Context, id string) (domain.CandidateProfile, error) {
	ctx, span := startSpan(ctx, "repo.candidates", "candidates.Get", "SELECT", "users")
	defer span.End()
	q := `SELECT ` + candidateColumns + ` FROM users WHERE id=$1`
	c, err := scanCandidate(r.Pool.QueryRow(ctx, q, id))
	if err != nil {
		span.RecordError(err)
		return domain.CandidateProfile{}, mapErr("candidates.get", err)
	}
	return c, nil
}

// ListCandidates returns up to limit candidates whose role is in roles, or is
// NULL when includeNullRole is set. Newest first.
func (r *CandidateRepo) ListCandidates(ctx domain.Context, roles []string, includeNullRole bool, limit int) ([]domain.CandidateProfile, error) {
	ctx, span := startSpan(ctx, "repo.candidates", "candidates.List", "SELECT", "users")
	defer span.End()
	span.SetAttributes(attribute.Int("limit", limit), attribute.StringSlice("roles", roles))
	if roles == nil {
		roles = []string{}
	}
	q := `SELECT ` + candidateColumns + ` FROM users
		WHERE role = ANY($1) OR ($2 AND role IS NULL)
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.Pool.Query(ctx, q, roles, includeNullRole, limit)
	if err != nil {
		span.RecordError(err)
		return nil, mapErr("candidates.list", err)
	}
	defer rows.Close()
	out := make([]domain.CandidateProfile, 0, limit)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, mapErr("candidates.list", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("candidates.list", err)
	}
	return out, nil
}
