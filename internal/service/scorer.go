package service

import (
	"context"

	"github.com/fadilmartias/skillmatch/internal/config"
	"github.com/fadilmartias/skillmatch/internal/matching"
	"go.uber.org/zap"
)

// NewScorer picks the similarity backend named by cfg. The embedding backend
// keeps TF-IDF as its fallback.
func NewScorer(ctx context.Context, cfg *config.MatchingConfig, geminiCfg *config.GeminiConfig, logger *zap.Logger) (matching.Scorer, error) {
	tfidf := matching.NewTFIDFScorer(cfg.MaxFeatures)
	if cfg.SimilarityBackend != config.SimilarityGemini {
		return tfidf, nil
	}
	gemini, err := NewGeminiService(ctx, geminiCfg, logger)
	if err != nil {
		return nil, err
	}
	return NewEmbeddingScorer(gemini, tfidf, logger), nil
}
