// Package matching holds the pure scoring primitives used by the match pipelines.
package matching

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// DefaultExactBonus is the score ExactMatch yields when no pairing overrides it.
const DefaultExactBonus = 15

// tokenize splits on any rune that is not a letter or digit and lower-cases the pieces.
// Duplicates are kept.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containmentScore counts elements of a that contain, or are contained by, some
// element of b and scales by the larger list. Callers guarantee both are non-empty.
func containmentScore(a, b []string) float64 {
	matches := 0
	for _, x := range a {
		for _, y := range b {
			if strings.Contains(y, x) || strings.Contains(x, y) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(max(len(a), len(b))) * 100
}

// TextSimilarity scores two free-text fields by token containment, in [0,100].
// It is not symmetric when the token counts differ.
func TextSimilarity(a, b string) float64 {
	ta, tb := tokenize(a), tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	return containmentScore(ta, tb)
}

// ArraySimilarity scores two set-valued fields with the same containment rule as
// TextSimilarity. Non-string elements are serialized before comparison and nil
// elements are dropped.
func ArraySimilarity(a, b []any) float64 {
	na, nb := normalizeElems(a), normalizeElems(b)
	if len(na) == 0 || len(nb) == 0 {
		return 0
	}
	return containmentScore(na, nb)
}

// StringSetSimilarity is ArraySimilarity for string slices.
func StringSetSimilarity(a, b []string) float64 {
	return ArraySimilarity(toAny(a), toAny(b))
}

// ExactMatch returns bonus when both values are present and equal ignoring case
// and surrounding space, else 0.
func ExactMatch(a, b string, bonus float64) float64 {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}
	if strings.EqualFold(a, b) {
		return bonus
	}
	return 0
}

func normalizeElems(in []any) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case fmt.Stringer:
			s = t.String()
		default:
			if b, err := json.Marshal(t); err == nil {
				s = string(b)
			} else {
				s = fmt.Sprint(t)
			}
		}
		out = append(out, strings.ToLower(s))
	}
	return out
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
