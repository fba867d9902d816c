// Package match implements the career platform's matching core: single-job
// scoring, corpus-wide skill-gap aggregation, and learning-resource
// recommendation. Everything in this package is pure and safe to call
// concurrently over immutable inputs.
package match

import "strings"

// Normalize canonicalizes a skill string for comparison: surrounding
// whitespace trimmed, lowercased. "React", " react ", "REACT" all normalize
// to "react".
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// SkillMatcher decides whether two skill strings refer to the same skill.
// Implementations must be symmetric and treat inputs as already normalized
// by Normalize.
type SkillMatcher interface {
	Match(a, b string) bool
}

// SubstringMatcher is the default strategy: two normalized skills match when
// they are equal or one is a substring of the other. The substring rule
// tolerates catalog variants like "js" vs "javascript" but is deliberately
// lossy: "java" matches "javascript" too. Swap in ExactMatcher where false
// positives are unacceptable.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// ExactMatcher matches only equal normalized strings.
type ExactMatcher struct{}

func (ExactMatcher) Match(a, b string) bool {
	return a != "" && a == b
}

// DefaultMatcher is the production strategy.
var DefaultMatcher SkillMatcher = SubstringMatcher{}

// matchesAny reports whether skill matches any entry of the normalized set.
func matchesAny(m SkillMatcher, skill string, set []string) bool {
	for _, s := range set {
		if m.Match(skill, s) {
			return true
		}
	}
	return false
}

// normalizeAll returns the normalized, de-duplicated form of skills,
// preserving first-seen order.
func normalizeAll(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := Normalize(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
