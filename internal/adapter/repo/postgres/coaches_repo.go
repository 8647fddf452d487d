package postgres

import (
	"github.com/fairyhunter13/career-match/internal/domain"
)

// CoachRepo reads coach profiles.
type CoachRepo struct{ Pool PgxPool }

// NewCoachRepo constructs a CoachRepo with the given pool.
func NewCoachRepo(p PgxPool) *CoachRepo { return &CoachRepo{Pool: p} }

// ListCoachesByRating returns every coach, highest rating first.
func (r *CoachRepo) ListCoachesByRating(ctx domain.Context) ([]domain.CoachProfile, error) {
	ctx, span := startSpan(ctx, "repo.coaches", "coaches.ListByRating", "SELECT", "coaches")
	defer span.End()
	q := `SELECT id, COALESCE(name,''), COALESCE(title,''), COALESCE(languages,''), COALESCE(location,''),
		COALESCE(specializations,'{}'), COALESCE(specialization,''), COALESCE(rating,0), COALESCE(experience_years,0),
		COALESCE(hourly_rate,0), COALESCE(review_count,0), is_featured, featured_until, COALESCE(avatar_url,'')
		FROM coaches ORDER BY rating DESC NULLS LAST, id`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		span.RecordError(err)
		return nil, mapErr("coaches.list_by_rating", err)
	}
	defer rows.Close()
	var out []domain.CoachProfile
	for rows.Next() {
		var c domain.CoachProfile
		if err := rows.Scan(&c.ID, &c.Name, &c.Title, &c.Languages, &c.Location,
			&c.Specializations, &c.Specialization, &c.Rating, &c.ExperienceYears,
			&c.HourlyRate, &c.ReviewCount, &c.Featured, &c.FeaturedUntil, &c.AvatarURL); err != nil {
			return nil, mapErr("coaches.list_by_rating", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("coaches.list_by_rating", err)
	}
	return out, nil
}
