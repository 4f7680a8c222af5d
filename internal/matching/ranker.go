package matching

import (
	"context"
	"fmt"
	"sort"
)

// Config carries the engine defaults. The zero value is usable.
type Config struct {
	Weights     *Weights
	TopN        int
	MaxFeatures int
}

// Options are per-call overrides. A nil Weights or a zero TopN selects the
// engine default.
type Options struct {
	Weights *Weights
	TopN    int
}

// Engine ranks candidates against a request and requests against a
// candidate. It holds no state between calls.
type Engine struct {
	scorer  Scorer
	weights Weights
	topN    int
}

// NewEngine builds an engine around scorer. A nil scorer selects TF-IDF.
func NewEngine(scorer Scorer, cfg Config) *Engine {
	if scorer == nil {
		scorer = NewTFIDFScorer(cfg.MaxFeatures)
	}
	weights := DefaultWeights()
	if cfg.Weights != nil {
		if w, ok := cfg.Weights.Normalize(); ok {
			weights = w
		}
	}
	topN := DefaultTopN
	if cfg.TopN != 0 {
		topN = ClampTopN(cfg.TopN)
	}
	return &Engine{scorer: scorer, weights: weights, topN: topN}
}

// RankCandidates orders candidates by how well they fit the request.
func (e *Engine) RankCandidates(ctx context.Context, req Request, candidates []Candidate, opts Options) ([]Result, error) {
	if len(candidates) == 0 {
		return []Result{}, nil
	}

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = CandidateText(c)
	}
	sims, err := e.similarities(ctx, RequestText(req), docs)
	if err != nil {
		return nil, err
	}

	w := e.resolveWeights(opts)
	reqSkills := NormalizeSkills(req.Skills)

	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = compose(c.ID, sims[i], c, NormalizeSkills(c.Skills), reqSkills, w)
	}
	return e.finish(results, opts), nil
}

// RankRequests orders requests by how well they fit the candidate. The
// candidate's experience and rating contribute the same amount to every
// entry, so ordering is driven by similarity.
func (e *Engine) RankRequests(ctx context.Context, cand Candidate, reqs []Request, opts Options) ([]Result, error) {
	if len(reqs) == 0 {
		return []Result{}, nil
	}

	docs := make([]string, len(reqs))
	for i, r := range reqs {
		docs[i] = RequestText(r)
	}
	sims, err := e.similarities(ctx, CandidateText(cand), docs)
	if err != nil {
		return nil, err
	}

	w := e.resolveWeights(opts)
	candSkills := NormalizeSkills(cand.Skills)

	results := make([]Result, len(reqs))
	for i, r := range reqs {
		results[i] = compose(r.ID, sims[i], cand, candSkills, NormalizeSkills(r.Skills), w)
	}
	return e.finish(results, opts), nil
}

func (e *Engine) similarities(ctx context.Context, query string, docs []string) ([]float64, error) {
	sims, err := e.scorer.Similarities(ctx, query, docs)
	if err != nil {
		return nil, fmt.Errorf("similarity: %w", err)
	}
	if len(sims) != len(docs) {
		return nil, fmt.Errorf("similarity: got %d scores for %d documents", len(sims), len(docs))
	}
	return sims, nil
}

func (e *Engine) resolveWeights(opts Options) Weights {
	if opts.Weights == nil {
		return e.weights
	}
	if w, ok := opts.Weights.Normalize(); ok {
		return w
	}
	return e.weights
}

// finish sorts by score, keeping input order among equal scores, then
// truncates to the requested length.
func (e *Engine) finish(results []Result, opts Options) []Result {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	topN := e.topN
	if opts.TopN != 0 {
		topN = ClampTopN(opts.TopN)
	}
	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

func compose(id string, sim float64, cand Candidate, candSkills, reqSkills []string, w Weights) Result {
	sim = clamp01(sim)
	score := w.Similarity*sim +
		w.Experience*ExperienceScore(cand.ExperienceLevel) +
		w.Rating*RatingScore(cand.Rating)

	return Result{
		ID:            id,
		Score:         round2(score * 100),
		Similarity:    round2(sim * 100),
		MatchedSkills: IntersectSkills(candSkills, reqSkills),
	}
}
