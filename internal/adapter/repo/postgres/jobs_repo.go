package postgres

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/career-match/internal/domain"
)

// JobRepo reads company job postings.
type JobRepo struct{ Pool PgxPool }

// NewJobRepo constructs a JobRepo with the given pool.
func NewJobRepo(p PgxPool) *JobRepo { return &JobRepo{Pool: p} }

const jobColumns = `post_id, COALESCE(company_id,''), COALESCE(sector,''), COALESCE(position,''), COALESCE(level,''),
	COALESCE(location,''), COALESCE(work_type,''), COALESCE(languages,'{}'), COALESCE(skills,'{}'),
	salary_min, salary_max, is_boosted, boost_expires_at, created_at`

func scanJob(row interface{ Scan(dest ...any) error }) (domain.JobPosting, error) {
	var j domain.JobPosting
	err := row.Scan(&j.PostID, &j.CompanyID, &j.Sector, &j.Position, &j.Level,
		&j.Location, &j.WorkType, &j.Languages, &j.Skills,
		&j.SalaryMin, &j.SalaryMax, &j.Boosted, &j.BoostExpiresAt, &j.CreatedAt)
	return j, err
}

// GetJob loads a posting by post id.
func (r *JobRepo) GetJob(ctx domain.Context, id string) (domain.JobPosting, error) {
	ctx, span := startSpan(ctx, "repo.jobs", "jobs.Get", "SELECT", "company_posts")
	defer span.End()
	q := `SELECT ` + jobColumns + ` FROM company_posts WHERE post_id=$1`
	j, err := scanJob(r.Pool.QueryRow(ctx, q, id))
	if err != nil {
		span.RecordError(err)
		return domain.JobPosting{}, mapErr("jobs.get", err)
	}
	return j, nil
}

// ListRecentJobs returns up to limit postings, newest first.
func (r *JobRepo) ListRecentJobs(ctx domain.Context, limit int) ([]domain.JobPosting, error) {
	ctx, span := startSpan(ctx, "repo.jobs", "jobs.ListRecent", "SELECT", "company_posts")
	defer span.End()
	span.SetAttributes(attribute.Int("limit", limit))
	q := `SELECT ` + jobColumns + ` FROM company_posts ORDER BY created_at DESC LIMIT $1`
	rows, err := r.Pool.Query(ctx, q, limit)
	if err != nil {
		span.RecordError(err)
		return nil, mapErr("jobs.list_recent", err)
	}
	defer rows.Close()
	out := make([]domain.JobPosting, 0, limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, mapErr("jobs.list_recent", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("jobs.list_recent", err)
	}
	return out, nil
}
