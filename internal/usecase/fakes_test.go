package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fairyhunter13/career-match/internal/domain"
)

type fakeCandidates struct {
	byID    map[string]domain.CandidateProfile
	pool    []domain.CandidateProfile
	getErr  error
	listErr error

	gotRoles    []string
	gotNullRole bool
	gotLimit    int
}

func (f *fakeCandidates) GetCandidate(_ domain.Context, id string) (domain.CandidateProfile, error) {
	if f.getErr != nil {
		return domain.CandidateProfile{}, f.getErr
	}
	c, ok := f.byID[id]
	if !ok {
		return domain.CandidateProfile{}, fmt.Errorf("op=candidates.get: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (f *fakeCandidates) ListCandidates(_ domain.Context, roles []string, includeNullRole bool, limit int) ([]domain.CandidateProfile, error) {
	f.gotRoles, f.gotNullRole, f.gotLimit = roles, includeNullRole, limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.pool, nil
}

type fakeJobs struct {
	byID    map[string]domain.JobPosting
	recent  []domain.JobPosting
	getErr  error
	listErr error

	gotLimit int
}

func (f *fakeJobs) GetJob(_ domain.Context, id string) (domain.JobPosting, error) {
	if f.getErr != nil {
		return domain.JobPosting{}, f.getErr
	}
	j, ok := f.byID[id]
	if !ok {
		return domain.JobPosting{}, fmt.Errorf("op=jobs.get: %w", domain.ErrNotFound)
	}
	return j, nil
}

func (f *fakeJobs) ListRecentJobs(_ domain.Context, limit int) ([]domain.JobPosting, error) {
	f.gotLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.recent, nil
}

type fakeCoaches struct {
	all []domain.CoachProfile
	err error
}

func (f *fakeCoaches) ListCoachesByRating(_ domain.Context) ([]domain.CoachProfile, error) {
	return f.all, f.err
}

type fakeMatches struct {
	mu       sync.Mutex
	inserted []domain.PersistedMatch
	list     []domain.PersistedMatch
	insErr   error
	listErr  error
}

func (f *fakeMatches) InsertMatch(_ domain.Context, m domain.PersistedMatch) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insErr != nil {
		return "", f.insErr
	}
	m.ID = fmt.Sprintf("m-%d", len(f.inserted)+1)
	f.inserted = append(f.inserted, m)
	return m.ID, nil
}

// ListMatchesForUser returns list when preset, otherwise the user's inserts by score descending.
func (f *fakeMatches) ListMatchesForUser(_ domain.Context, userID string) ([]domain.PersistedMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.list != nil {
		return f.list, nil
	}
	out := []domain.PersistedMatch{}
	for _, m := range f.inserted {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

type fakeEvents struct {
	events []domain.MatchRecordedEvent
	err    error
}

func (f *fakeEvents) PublishMatchRecorded(_ domain.Context, ev domain.MatchRecordedEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

type recordingObserver struct {
	mu       sync.Mutex
	done     map[string][]int
	failures map[string]domain.FailureReason
	saved    map[domain.MatchType][]bool
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		done:     map[string][]int{},
		failures: map[string]domain.FailureReason{},
		saved:    map[domain.MatchType][]bool{},
	}
}

func (o *recordingObserver) PipelineDone(p string, _ time.Duration, scores []int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done[p] = scores
}

func (o *recordingObserver) PipelineFailed(p string, r domain.FailureReason) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures[p] = r
}

func (o *recordingObserver) MatchSaved(t domain.MatchType, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.saved[t] = append(o.saved[t], ok)
}
