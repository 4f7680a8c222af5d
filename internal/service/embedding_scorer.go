package service

import (
	"context"
	"math"
	"strings"

	"github.com/fadilmartias/skillmatch/internal/matching"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// EmbeddingScorer compares documents by the cosine of their embeddings.
// When the embedding provider fails it falls back to another scorer rather
// than failing the ranking call.
type EmbeddingScorer struct {
	embedder GeminiServiceInterface
	fallback matching.Scorer
	logger   *zap.Logger
}

func NewEmbeddingScorer(embedder GeminiServiceInterface, fallback matching.Scorer, logger *zap.Logger) *EmbeddingScorer {
	return &EmbeddingScorer{embedder: embedder, fallback: fallback, logger: logger}
}

func (s *EmbeddingScorer) Similarities(ctx context.Context, query string, docs []string) ([]float64, error) {
	if len(docs) == 0 {
		return []float64{}, nil
	}
	sims := make([]float64, len(docs))
	if strings.TrimSpace(query) == "" {
		return sims, nil
	}

	// Empty documents score 0 and are not sent to the provider.
	texts := []string{query}
	index := make([]int, 0, len(docs))
	for i, d := range docs {
		if strings.TrimSpace(d) == "" {
			continue
		}
		texts = append(texts, d)
		index = append(index, i)
	}
	if len(index) == 0 {
		return sims, nil
	}

	vectors, err := s.embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		s.logger.Warn("embedding similarity failed, falling back", zap.Error(err), zap.Int("documents", len(docs)))
		return s.fallback.Similarities(ctx, query, docs)
	}

	q := pgvector.NewVector(vectors[0])
	for k, i := range index {
		sims[i] = cosineSimilarity(q, pgvector.NewVector(vectors[k+1]))
	}
	return sims, nil
}

// cosineSimilarity returns the cosine of a and b clamped to [0, 1].
func cosineSimilarity(a, b pgvector.Vector) float64 {
	av, bv := a.Slice(), b.Slice()
	if len(av) != len(bv) || len(av) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range av {
		x, y := float64(av[i]), float64(bv[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	c := dot / (math.Sqrt(na) * math.Sqrt(nb))
	switch {
	case math.IsNaN(c) || c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
