package matching

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxFeatures caps the vocabulary built per ranking call.
const DefaultMaxFeatures = 1500

var termRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Scorer returns one similarity in [0, 1] per document, in document order.
type Scorer interface {
	Similarities(ctx context.Context, query string, docs []string) ([]float64, error)
}

// TFIDFScorer compares documents in a term-frequency/inverse-document-frequency
// space built only from the query and the documents of a single call.
type TFIDFScorer struct {
	MaxFeatures int
}

func NewTFIDFScorer(maxFeatures int) *TFIDFScorer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &TFIDFScorer{MaxFeatures: maxFeatures}
}

// Similarities never returns an error.
func (s *TFIDFScorer) Similarities(_ context.Context, query string, docs []string) ([]float64, error) {
	if len(docs) == 0 {
		return []float64{}, nil
	}

	corpus := make([][]string, 0, len(docs)+1)
	corpus = append(corpus, tokenize(query))
	for _, d := range docs {
		corpus = append(corpus, tokenize(d))
	}

	vocab := s.vocabulary(corpus)
	idf := inverseDocFrequency(corpus, vocab)

	vectors := make([]map[string]float64, len(corpus))
	for i, tokens := range corpus {
		vectors[i] = weigh(tokens, vocab, idf)
	}

	sims := make([]float64, len(docs))
	for i := range docs {
		sims[i] = cosine(vectors[0], vectors[i+1])
	}
	return sims, nil
}

// vocabulary keeps the MaxFeatures most frequent terms across the corpus.
// Equal frequencies are ordered alphabetically so the cut is deterministic.
func (s *TFIDFScorer) vocabulary(corpus [][]string) map[string]struct{} {
	freq := make(map[string]int)
	for _, tokens := range corpus {
		for _, t := range tokens {
			freq[t]++
		}
	}

	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}

	limit := s.MaxFeatures
	if limit <= 0 {
		limit = DefaultMaxFeatures
	}
	if len(terms) > limit {
		sort.Slice(terms, func(i, j int) bool {
			if freq[terms[i]] != freq[terms[j]] {
				return freq[terms[i]] > freq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:limit]
	}
	return toSet(terms)
}

// inverseDocFrequency uses the smoothed form ln((1+n)/(1+df)) + 1.
func inverseDocFrequency(corpus [][]string, vocab map[string]struct{}) map[string]float64 {
	df := make(map[string]int, len(vocab))
	for _, tokens := range corpus {
		seen := make(map[string]struct{})
		for _, t := range tokens {
			if _, ok := vocab[t]; !ok {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	n := float64(len(corpus))
	idf := make(map[string]float64, len(df))
	for t, count := range df {
		idf[t] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}

// weigh returns the L2-normalized tf-idf vector of a tokenized document.
func weigh(tokens []string, vocab map[string]struct{}, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64)
	for _, t := range tokens {
		if _, ok := vocab[t]; ok {
			vec[t]++
		}
	}

	var norm float64
	for t, tf := range vec {
		w := tf * idf[t]
		vec[t] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for t := range vec {
		vec[t] /= norm
	}
	return vec
}

// cosine assumes both vectors are already L2-normalized.
func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for t, w := range a {
		dot += w * b[t]
	}
	return clamp01(dot)
}

func tokenize(text string) []string {
	raw := termRe.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, stop := englishStopWords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
