package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/skillmatch/internal/matching"
)

const (
	SimilarityTFIDF  = "tfidf"
	SimilarityGemini = "gemini"
)

type MatchingConfig struct {
	Weights           matching.Weights
	TopN              int
	MaxFeatures       int
	Timeout           time.Duration
	SimilarityBackend string
}

var (
	matchingConfig *MatchingConfig
	matchingOnce   sync.Once
)

// LoadMatchingConfig reads the engine defaults. Unparseable values fall back
// to the built-in defaults with a warning.
func LoadMatchingConfig() *MatchingConfig {
	matchingOnce.Do(func() {
		matchingConfig = ParseMatchingConfig(os.Getenv)
	})
	return matchingConfig
}

// ParseMatchingConfig builds a MatchingConfig from an env lookup function.
func ParseMatchingConfig(getenv func(string) string) *MatchingConfig {
	def := matching.DefaultWeights()
	weights := matching.Weights{
		Similarity: envFloat(getenv, "MATCH_WEIGHT_SIMILARITY", def.Similarity),
		Experience: envFloat(getenv, "MATCH_WEIGHT_EXPERIENCE", def.Experience),
		Rating:     envFloat(getenv, "MATCH_WEIGHT_RATING", def.Rating),
	}
	if normalized, ok := weights.Normalize(); ok {
		weights = normalized
	} else {
		log.Printf("Warning: invalid MATCH_WEIGHT_* values, using defaults")
		weights = def
	}

	backend := strings.ToLower(strings.TrimSpace(getenv("SIMILARITY_BACKEND")))
	if backend != SimilarityGemini {
		backend = SimilarityTFIDF
	}

	return &MatchingConfig{
		Weights:           weights,
		TopN:              matching.ClampTopN(envInt(getenv, "MATCH_TOP_N", matching.DefaultTopN)),
		MaxFeatures:       envInt(getenv, "MATCH_MAX_FEATURES", matching.DefaultMaxFeatures),
		Timeout:           envDuration(getenv, "MATCH_TIMEOUT", 30*time.Second),
		SimilarityBackend: backend,
	}
}

func envFloat(getenv func(string) string, key string, def float64) float64 {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %v", key, raw, def)
		return def
	}
	return v
}

func envInt(getenv func(string) string, key string, def int) int {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, raw, def)
		return def
	}
	return v
}

func envDuration(getenv func(string) string, key string, def time.Duration) time.Duration {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: %s=%q is not a valid duration, using %s", key, raw, def)
		return def
	}
	return v
}
