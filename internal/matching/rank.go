package matching

import (
	"sort"
	"strings"

	"github.com/fairyhunter13/career-match/internal/domain"
)

// Rank sorts results by score descending, ties by TargetID ascending, and
// truncates to limit. The input slice is reordered in place.
func Rank(results []domain.MatchResult, limit int) []domain.MatchResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].TargetID < results[j].TargetID
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// FilterMinScore keeps results scoring at least threshold.
func FilterMinScore(results []domain.MatchResult, threshold int) []domain.MatchResult {
	out := results[:0]
	for _, r := range results {
		if r.MatchScore >= threshold {
			out = append(out, r)
		}
	}
	return out
}

// SameSector reports whether sector equals want ignoring case. An empty want matches everything.
func SameSector(sector, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(sector), want)
}
