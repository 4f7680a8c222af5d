package handler

import (
	"math"
	"strconv"
	"strings"

	"github.com/fadilmartias/skillmatch/internal/matching"
	"github.com/tidwall/gjson"
)

// parseMatchOptions reads the optional ranking overrides from a request body.
// It never fails: anything it cannot use leaves the engine default in place.
func parseMatchOptions(body []byte) matching.Options {
	var opts matching.Options
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return opts
	}
	root := gjson.ParseBytes(body)
	opts.Weights = parseWeights(root.Get("weights"))
	opts.TopN = parseTopN(root.Get("top_n"))
	return opts
}

// parseWeights accepts "skill" or "similarity" for the first component.
// Missing components keep their default; a present but non-numeric one
// discards the whole override.
func parseWeights(v gjson.Result) *matching.Weights {
	if !v.IsObject() {
		return nil
	}
	w := matching.DefaultWeights()

	sim := v.Get("skill")
	if !sim.Exists() {
		sim = v.Get("similarity")
	}
	for _, f := range []struct {
		value gjson.Result
		dst   *float64
	}{
		{sim, &w.Similarity},
		{v.Get("experience"), &w.Experience},
		{v.Get("rating"), &w.Rating},
	} {
		if !f.value.Exists() {
			continue
		}
		n, ok := number(f.value)
		if !ok {
			return nil
		}
		*f.dst = n
	}
	return &w
}

// parseTopN returns 0 (engine default) unless v holds a number. Clamping
// happens before the int conversion so huge values cannot wrap.
func parseTopN(v gjson.Result) int {
	n, ok := number(v)
	if !ok || math.IsNaN(n) {
		return 0
	}
	switch {
	case n >= matching.MaxTopN:
		return matching.MaxTopN
	case n < matching.MinTopN:
		return matching.MinTopN
	}
	return matching.ClampTopN(int(n))
}

func number(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, true
	case gjson.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		return n, err == nil
	default:
		return 0, false
	}
}
