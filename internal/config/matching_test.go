package config

import (
	"testing"
	"time"

	"github.com/fadilmartias/skillmatch/internal/matching"
	"github.com/stretchr/testify/assert"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseMatchingConfig_Defaults(t *testing.T) {
	cfg := ParseMatchingConfig(envMap(nil))
	assert.Equal(t, matching.DefaultWeights(), cfg.Weights)
	assert.Equal(t, matching.DefaultTopN, cfg.TopN)
	assert.Equal(t, matching.DefaultMaxFeatures, cfg.MaxFeatures)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, SimilarityTFIDF, cfg.SimilarityBackend)
}

func TestParseMatchingConfig_Overrides(t *testing.T) {
	cfg := ParseMatchingConfig(envMap(map[string]string{
		"MATCH_WEIGHT_SIMILARITY": "2",
		"MATCH_WEIGHT_EXPERIENCE": "1",
		"MATCH_WEIGHT_RATING":     "1",
		"MATCH_TOP_N":             "500",
		"MATCH_TIMEOUT":           "5s",
		"SIMILARITY_BACKEND":      "Gemini",
	}))
	assert.Equal(t, matching.Weights{Similarity: 0.5, Experience: 0.25, Rating: 0.25}, cfg.Weights)
	assert.Equal(t, 100, cfg.TopN)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, SimilarityGemini, cfg.SimilarityBackend)
}

func TestParseMatchingConfig_InvalidFallsBack(t *testing.T) {
	cfg := ParseMatchingConfig(envMap(map[string]string{
		"MATCH_WEIGHT_SIMILARITY": "0",
		"MATCH_WEIGHT_EXPERIENCE": "0",
		"MATCH_WEIGHT_RATING":     "abc",
		"MATCH_TOP_N":             "many",
		"MATCH_TIMEOUT":           "-1s",
		"SIMILARITY_BACKEND":      "bm25",
	}))
	// rating falls back to 0.1 on its own, so the sum is non-zero.
	assert.Equal(t, matching.Weights{Similarity: 0, Experience: 0, Rating: 1}, cfg.Weights)
	assert.Equal(t, matching.DefaultTopN, cfg.TopN)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, SimilarityTFIDF, cfg.SimilarityBackend)
}
