package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/career-match/internal/domain"
)

func results(pairs ...any) []domain.MatchResult {
	out := make([]domain.MatchResult, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.MatchResult{TargetID: pairs[i].(string), MatchScore: pairs[i+1].(int)})
	}
	return out
}

func ids(rs []domain.MatchResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.TargetID
	}
	return out
}

func TestRank_OrdersAndTruncates(t *testing.T) {
	t.Parallel()

	got := Rank(results("c", 40, "a", 90, "b", 40, "d", 10), 3)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestRank_NonIncreasing(t *testing.T) {
	t.Parallel()

	got := Rank(results("x", 5, "y", 77, "z", 77, "w", 100, "v", 0), 10)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].MatchScore, got[i].MatchScore)
	}
	assert.Len(t, got, 5)
}

func TestFilterMinScore(t *testing.T) {
	t.Parallel()

	got := FilterMinScore(results("a", 19, "b", 20, "c", 55), domain.DefaultMinScore)
	assert.Equal(t, []string{"b", "c"}, ids(got))
}

func TestSameSector(t *testing.T) {
	t.Parallel()

	assert.True(t, SameSector("Fintech", ""))
	assert.True(t, SameSector(" fintech", "FINTECH"))
	assert.False(t, SameSector("Logistics", "Fintech"))
}
