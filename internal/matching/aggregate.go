package matching

import "math"

// Signal is one similarity or exact-match computation feeding WeightedScore.
type Signal struct {
	Name   string
	Score  float64
	Weight float64
}

// WeightedScore combines signals into an integer in [0,100]. Weights are
// normalized by their actual sum; a zero sum yields 0.
func WeightedScore(signals []Signal) int {
	var sum, weights float64
	for _, s := range signals {
		sum += s.Score * s.Weight
		weights += s.Weight
	}
	if weights == 0 {
		return 0
	}
	score := math.Round(math.Min(100, sum/weights))
	if score < 0 || math.IsNaN(score) {
		return 0
	}
	return int(score)
}
