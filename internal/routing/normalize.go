package routing

import (
	"regexp"
	"sort"
	"strings"
)

// Normalizer canonicalizes a raw chat message: lowercases, collapses
// whitespace, and fixes known typos. Substitutions match whole words only so
// "creat" never corrupts "created".
type Normalizer struct {
	rules []typoRule
}

type typoRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// NewNormalizer compiles the typo table into word-boundary rules.
func NewNormalizer() *Normalizer {
	typos := make([]string, 0, len(typoTable))
	for typo := range typoTable {
		typos = append(typos, typo)
	}
	// Longer typos first so overlapping entries behave deterministically.
	sort.Slice(typos, func(i, j int) bool {
		if len(typos[i]) != len(typos[j]) {
			return len(typos[i]) > len(typos[j])
		}
		return typos[i] < typos[j]
	})

	rules := make([]typoRule, 0, len(typos))
	for _, typo := range typos {
		rules = append(rules, typoRule{
			pattern:     regexp.MustCompile(`\b` + regexp.QuoteMeta(typo) + `\b`),
			replacement: typoTable[typo],
		})
	}
	return &Normalizer{rules: rules}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize returns the canonical form of message. It is total and
// idempotent: normalizing an already-normalized message is a no-op.
func (n *Normalizer) Normalize(message string) string {
	out := strings.ToLower(strings.TrimSpace(message))
	out = whitespaceRe.ReplaceAllString(out, " ")
	for _, rule := range n.rules {
		out = rule.pattern.ReplaceAllString(out, rule.replacement)
	}
	return out
}
