package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadilmartias/skillmatch/internal/matching"
)

// parseWeights reads "similarity,experience,rating". The values need not sum
// to one; the engine normalizes them.
func parseWeights(raw string) (matching.Weights, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return matching.Weights{}, fmt.Errorf("weights: want 3 comma-separated values, got %d", len(parts))
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return matching.Weights{}, fmt.Errorf("weights: %q is not a number", strings.TrimSpace(p))
		}
		vals[i] = v
	}
	return matching.Weights{Similarity: vals[0], Experience: vals[1], Rating: vals[2]}, nil
}
