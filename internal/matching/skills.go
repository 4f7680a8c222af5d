package matching

import (
	"regexp"
	"sort"
	"strings"
)

var skillCharRe = regexp.MustCompile(`[^a-z0-9.+#]`)

// skillAliases maps common spellings onto the controlled vocabulary.
var skillAliases = map[string]string{
	"reactjs":  "react",
	"react.js": "react",
	"nodejs":   "node.js",
	"node":     "node.js",
	"js":       "javascript",
	"ts":       "typescript",
	"py":       "python",
	"golang":   "go",
}

// NormalizeSkill canonicalizes a single skill token. It returns "" when
// nothing usable is left after cleaning.
func NormalizeSkill(skill string) string {
	cleaned := skillCharRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(skill)), "")
	if canonical, ok := skillAliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// NormalizeSkills turns raw skill input into a sorted set of canonical
// tokens. Elements may themselves be comma-separated lists.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, raw := range skills {
		for _, token := range strings.Split(raw, ",") {
			s := NormalizeSkill(token)
			if s == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// IntersectSkills returns the members of a that also appear in b. Both
// inputs are expected to be normalized; the result keeps a's order.
func IntersectSkills(a, b []string) []string {
	lookup := make(map[string]struct{}, len(b))
	for _, s := range b {
		lookup[s] = struct{}{}
	}
	matched := make([]string, 0)
	for _, s := range a {
		if _, ok := lookup[s]; ok {
			matched = append(matched, s)
		}
	}
	return matched
}
