package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/career-match/internal/config"
	"github.com/fairyhunter13/career-match/internal/domain"
	"github.com/fairyhunter13/career-match/internal/usecase"
	"github.com/fairyhunter13/career-match/pkg/textx"
)

// OutcomeHeader carries the failure reason when a pipeline degraded to an
// empty list. Absent on success.
const OutcomeHeader = "X-Match-Outcome"

// Server aggregates handlers dependencies.
type Server struct {
	Cfg        config.Config
	Matches    usecase.MatchService
	Recorder   usecase.RecorderService
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, matches usecase.MatchService, recorder usecase.RecorderService, dbCheck, redisCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Matches: matches, Recorder: recorder, DBCheck: dbCheck, RedisCheck: redisCheck}
}

type matchesResponse struct {
	Matches []domain.MatchResult `json:"matches"`
	Total   int                  `json:"total"`
}

type pipelineFunc func(ctx domain.Context, anchorID string, f *domain.MatchFilters) ([]domain.MatchResult, domain.Outcome)

// pipelineHandler serves one matching pipeline anchored on the {id} path param.
func (s *Server) pipelineHandler(field string, run pipelineFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(r) {
			writeNotAcceptable(w, r)
			return
		}
		id := chi.URLParam(r, "id")
		if vr := ValidateID(field, id); !vr.Valid {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, vr.Errors[0].Message), vr.Errors)
			return
		}
		filters, details, err := parseFilters(r.URL.Query())
		if err != nil {
			writeError(w, r, err, details)
			return
		}
		results, outcome := run(r.Context(), id, filters)
		if !outcome.OK() {
			w.Header().Set(OutcomeHeader, string(outcome.Reason))
		}
		writeJSON(w, http.StatusOK, matchesResponse{Matches: results, Total: len(results)})
	}
}

// CandidateJobsHandler serves GET /v1/candidates/{id}/jobs.
func (s *Server) CandidateJobsHandler() http.HandlerFunc {
	return s.pipelineHandler("candidate_id", s.Matches.CandidateJobsWithOutcome)
}

// JobCandidatesHandler serves GET /v1/jobs/{id}/candidates.
func (s *Server) JobCandidatesHandler() http.HandlerFunc {
	return s.pipelineHandler("job_id", s.Matches.JobCandidatesWithOutcome)
}

// CandidateCoachesHandler serves GET /v1/candidates/{id}/coaches.
func (s *Server) CandidateCoachesHandler() http.HandlerFunc {
	return s.pipelineHandler("candidate_id", s.Matches.CandidateCoachesWithOutcome)
}

type saveMatchRequest struct {
	UserID    string   `json:"user_id" validate:"required,max=100"`
	TargetID  string   `json:"target_id" validate:"required,max=100"`
	MatchType string   `json:"match_type" validate:"required,oneof=job coach candidate"`
	Score     int      `json:"score" validate:"min=0,max=100"`
	Reasons   []string `json:"reasons" validate:"max=20,dive,max=200"`
}

// SaveMatchHandler serves POST /v1/matches.
func (s *Server) SaveMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(r) {
			writeNotAcceptable(w, r)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
		var req saveMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if verrs := validationDetails(getValidator().Struct(req)); verrs != nil {
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
			return
		}
		reasons := textx.SanitizeList(req.Reasons)

		saved, outcome := s.Recorder.SaveMatchWithOutcome(r.Context(), req.UserID, req.TargetID, domain.MatchType(req.MatchType), req.Score, reasons)
		switch {
		case saved:
			writeJSON(w, http.StatusCreated, map[string]bool{"saved": true})
		case outcome.Reason == domain.FailureInvalidInput:
			writeError(w, r, outcome.Err, nil)
		default:
			w.Header().Set(OutcomeHeader, string(outcome.Reason))
			writeJSON(w, http.StatusServiceUnavailable, map[string]bool{"saved": false})
		}
	}
}

// UserMatchesHandler serves GET /v1/users/{id}/matches.
func (s *Server) UserMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(r) {
			writeNotAcceptable(w, r)
			return
		}
		id := chi.URLParam(r, "id")
		if vr := ValidateID("user_id", id); !vr.Valid {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, vr.Errors[0].Message), vr.Errors)
			return
		}
		matches, outcome := s.Recorder.ExistingMatchesWithOutcome(r.Context(), id)
		if !outcome.OK() {
			w.Header().Set(OutcomeHeader, string(outcome.Reason))
		}
		writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
	}
}

// HealthzHandler reports liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler returns a readiness handler that probes the DB and Redis.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	probes := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"db", s.DBCheck},
		{"redis", s.RedisCheck},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, len(probes))
		ok := true
		for _, p := range probes {
			if p.fn == nil {
				continue
			}
			if err := p.fn(ctx); err != nil {
				ok = false
				checks = append(checks, check{Name: p.name, Details: err.Error()})
				continue
			}
			checks = append(checks, check{Name: p.name, OK: true})
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
