package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/career-match/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/career-match/internal/domain"
)

type seedFile struct {
	Candidates []seedCandidate `yaml:"candidates"`
	Jobs       []seedJob       `yaml:"jobs"`
	Coaches    []seedCoach     `yaml:"coaches"`
}

type seedCandidate struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	Email           string     `yaml:"email"`
	Role            *string    `yaml:"role"`
	Sector          string     `yaml:"sector"`
	Title           string     `yaml:"title"`
	City            string     `yaml:"city"`
	ExperienceLevel string     `yaml:"experience_level"`
	Languages       []string   `yaml:"languages"`
	Skills          []string   `yaml:"skills"`
	Goals           []seedGoal `yaml:"goals"`
	AvatarURL       string     `yaml:"avatar_url"`
}

// seedGoal accepts a plain string or a {label|name} mapping.
type seedGoal struct{ domain.Goal }

func (g *seedGoal) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		g.Goal = domain.GoalFromString(n.Value)
		return nil
	case yaml.MappingNode:
		var obj struct {
			Label string `yaml:"label"`
			Name  string `yaml:"name"`
		}
		if err := n.Decode(&obj); err != nil {
			return err
		}
		g.Goal = domain.Goal{Label: obj.Label, Name: obj.Name}
		return nil
	}
	return fmt.Errorf("line %d: goal must be a string or a mapping", n.Line)
}

type seedJob struct {
	PostID    string   `yaml:"post_id"`
	CompanyID string   `yaml:"company_id"`
	Sector    string   `yaml:"sector"`
	Position  string   `yaml:"position"`
	Level     string   `yaml:"level"`
	Location  string   `yaml:"location"`
	WorkType  string   `yaml:"work_type"`
	Languages []string `yaml:"languages"`
	Skills    []string `yaml:"skills"`
	SalaryMin *int     `yaml:"salary_min"`
	SalaryMax *int     `yaml:"salary_max"`
	Boosted   bool     `yaml:"boosted"`
}

type seedCoach struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Title           string   `yaml:"title"`
	Languages       string   `yaml:"languages"`
	Location        string   `yaml:"location"`
	Specializations []string `yaml:"specializations"`
	Specialization  string   `yaml:"specialization"`
	Rating          float64  `yaml:"rating"`
	ExperienceYears int      `yaml:"experience_years"`
	HourlyRate      float64  `yaml:"hourly_rate"`
	ReviewCount     int      `yaml:"review_count"`
	Featured        bool     `yaml:"featured"`
	AvatarURL       string   `yaml:"avatar_url"`
}

func loadSeed(path string) (seedFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return seedFile{}, fmt.Errorf("seed file not found: %s", path)
		}
		return seedFile{}, err
	}
	var doc seedFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return seedFile{}, fmt.Errorf("yaml parse: %w", err)
	}
	if err := doc.validate(); err != nil {
		return seedFile{}, err
	}
	return doc, nil
}

func (d seedFile) validate() error {
	seen := map[string]bool{}
	check := func(kind, id string) error {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: %s without id", domain.ErrInvalidArgument, kind)
		}
		if seen[kind+"/"+id] {
			return fmt.Errorf("%w: duplicate %s %q", domain.ErrInvalidArgument, kind, id)
		}
		seen[kind+"/"+id] = true
		return nil
	}
	for _, c := range d.Candidates {
		if err := check("candidate", c.ID); err != nil {
			return err
		}
	}
	for _, j := range d.Jobs {
		if err := check("job", j.PostID); err != nil {
			return err
		}
	}
	for _, c := range d.Coaches {
		if err := check("coach", c.ID); err != nil {
			return err
		}
	}
	return nil
}

// apply upserts every record in doc. Later runs overwrite earlier values.
func apply(ctx context.Context, db postgres.PgxPool, doc seedFile) error {
	for _, c := range doc.Candidates {
		goals := make([]domain.Goal, 0, len(c.Goals))
		for _, g := range c.Goals {
			goals = append(goals, g.Goal)
		}
		gb, err := json.Marshal(goals)
		if err != nil {
			return fmt.Errorf("candidate %s goals: %w", c.ID, err)
		}
		_, err = db.Exec(ctx, `INSERT INTO users (id, name, email, role, sector, title, city, experience_level, languages, superpowers, goals, avatar_url)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, email=EXCLUDED.email, role=EXCLUDED.role, sector=EXCLUDED.sector,
				title=EXCLUDED.title, city=EXCLUDED.city, experience_level=EXCLUDED.experience_level, languages=EXCLUDED.languages,
				superpowers=EXCLUDED.superpowers, goals=EXCLUDED.goals, avatar_url=EXCLUDED.avatar_url`,
			c.ID, c.Name, c.Email, c.Role, c.Sector, c.Title, c.City, c.ExperienceLevel, nonNil(c.Languages), nonNil(c.Skills), gb, c.AvatarURL)
		if err != nil {
			return fmt.Errorf("candidate %s: %w", c.ID, err)
		}
	}
	for _, j := range doc.Jobs {
		_, err := db.Exec(ctx, `INSERT INTO company_posts (post_id, company_id, sector, position, level, location, work_type, languages, skills, salary_min, salary_max, is_boosted)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (post_id) DO UPDATE SET company_id=EXCLUDED.company_id, sector=EXCLUDED.sector, position=EXCLUDED.position,
				level=EXCLUDED.level, location=EXCLUDED.location, work_type=EXCLUDED.work_type, languages=EXCLUDED.languages,
				skills=EXCLUDED.skills, salary_min=EXCLUDED.salary_min, salary_max=EXCLUDED.salary_max, is_boosted=EXCLUDED.is_boosted`,
			j.PostID, j.CompanyID, j.Sector, j.Position, j.Level, j.Location, j.WorkType, nonNil(j.Languages), nonNil(j.Skills), j.SalaryMin, j.SalaryMax, j.Boosted)
		if err != nil {
			return fmt.Errorf("job %s: %w", j.PostID, err)
		}
	}
	for _, c := range doc.Coaches {
		_, err := db.Exec(ctx, `INSERT INTO coaches (id, name, title, languages, location, specializations, specialization, rating, experience_years, hourly_rate, review_count, is_featured, avatar_url)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
			ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, title=EXCLUDED.title, languages=EXCLUDED.languages, location=EXCLUDED.location,
				specializations=EXCLUDED.specializations, specialization=EXCLUDED.specialization, rating=EXCLUDED.rating,
				experience_years=EXCLUDED.experience_years, hourly_rate=EXCLUDED.hourly_rate, review_count=EXCLUDED.review_count,
				is_featured=EXCLUDED.is_featured, avatar_url=EXCLUDED.avatar_url`,
			c.ID, c.Name, c.Title, c.Languages, c.Location, nonNil(c.Specializations), c.Specialization, c.Rating, c.ExperienceYears, c.HourlyRate, c.ReviewCount, c.Featured, c.AvatarURL)
		if err != nil {
			return fmt.Errorf("coach %s: %w", c.ID, err)
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
