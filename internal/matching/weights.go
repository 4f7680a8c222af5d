package matching

import "math"

const (
	DefaultTopN = 20
	MinTopN     = 1
	MaxTopN     = 100
)

// Weights splits the composite score between text similarity, experience
// level and rating.
type Weights struct {
	Similarity float64 `json:"skill"`
	Experience float64 `json:"experience"`
	Rating     float64 `json:"rating"`
}

// DefaultWeights is the split used when the caller supplies none.
func DefaultWeights() Weights {
	return Weights{Similarity: 0.6, Experience: 0.3, Rating: 0.1}
}

// Normalize scales w so its components sum to 1. The second return value
// is false when w is unusable (negative or non-finite component, or a zero
// sum); the caller should then fall back to defaults.
func (w Weights) Normalize() (Weights, bool) {
	for _, v := range []float64{w.Similarity, w.Experience, w.Rating} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Weights{}, false
		}
	}
	// Dividing by the largest component first keeps the sum finite.
	peak := math.Max(w.Similarity, math.Max(w.Experience, w.Rating))
	if peak == 0 {
		return Weights{}, false
	}
	s, e, r := w.Similarity/peak, w.Experience/peak, w.Rating/peak
	total := s + e + r
	return Weights{
		Similarity: s / total,
		Experience: e / total,
		Rating:     r / total,
	}, true
}

// ClampTopN bounds n to [MinTopN, MaxTopN].
func ClampTopN(n int) int {
	if n < MinTopN {
		return MinTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

// ExperienceScore maps a level label onto [0.5, 1].
func ExperienceScore(level string) float64 {
	switch level {
	case "Junior":
		return 0.5
	case "Mid":
		return 0.75
	case "Senior":
		return 1.0
	default:
		return 0.5
	}
}

// RatingScore maps a 0-5 rating onto [0, 1]; no rating scores 0.
func RatingScore(rating *float64) float64 {
	if rating == nil {
		return 0
	}
	return clamp01(*rating / 5.0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
