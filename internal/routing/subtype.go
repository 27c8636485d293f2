package routing

import (
	"strings"
)

// SubtypeMatcher fuzzy-matches user-supplied subtype strings against a
// domain-provided subtype catalog ("Data protection officer" →
// "PER_DataProtectionOfficer").
type SubtypeMatcher struct{}

// NewSubtypeMatcher returns the matcher. It is stateless; the catalog is
// supplied per call because subtype sets differ per (domain, object type).
func NewSubtypeMatcher() *SubtypeMatcher {
	return &SubtypeMatcher{}
}

// Match resolves input against catalog using a cascade where the first
// success wins: exact match, prefix-stripped match, token-subset match,
// substring containment, then the keyword alias table. When nothing matches
// and the catalog holds exactly one entry, that entry is auto-selected.
// Returns false when the caller should ask the user instead of guessing.
func (m *SubtypeMatcher) Match(input string, catalog []string) (string, bool) {
	if len(catalog) == 0 {
		return "", false
	}

	provided := strings.ToLower(strings.TrimSpace(input))
	if provided == "" {
		if len(catalog) == 1 {
			return catalog[0], true
		}
		return "", false
	}

	// 1. Exact, case-insensitive.
	for _, candidate := range catalog {
		if provided == strings.ToLower(candidate) {
			return candidate, true
		}
	}

	// 2. Prefix-stripped, separator-normalized.
	providedNorm := normalizeSubtype(provided)
	for _, candidate := range catalog {
		if providedNorm == normalizeSubtype(candidate) {
			return candidate, true
		}
	}

	// 2b. Same comparison with all separators removed
	// ("dataprotectionofficer" vs "data protection officer").
	providedFlat := flatten(providedNorm)
	for _, candidate := range catalog {
		if providedFlat == flatten(normalizeSubtype(candidate)) {
			return candidate, true
		}
	}

	// 3. Token subset: every word of one side appears in the other.
	providedWords := strings.Fields(providedNorm)
	for _, candidate := range catalog {
		candidateNorm := normalizeSubtype(candidate)
		if wordsContained(providedWords, candidateNorm) ||
			wordsContained(strings.Fields(candidateNorm), providedNorm) {
			return candidate, true
		}
	}

	// 4. Substring containment.
	for _, candidate := range catalog {
		candidateNorm := normalizeSubtype(candidate)
		if strings.Contains(providedNorm, candidateNorm) || strings.Contains(candidateNorm, providedNorm) {
			return candidate, true
		}
	}

	// 5. Alias table for known domain synonyms ("dpo").
	for _, candidate := range catalog {
		candidateNorm := normalizeSubtype(candidate)
		for _, alias := range subtypeAliases[flatten(candidateNorm)] {
			if strings.Contains(providedNorm, alias) || strings.Contains(alias, providedNorm) {
				return candidate, true
			}
		}
	}

	if len(catalog) == 1 {
		return catalog[0], true
	}
	return "", false
}

// Infer guesses a subtype for a create operation from the object's own
// fields. Unlike Match it never falls back to a lone catalog entry on empty
// input; callers handle the single-entry case before asking the user.
func (m *SubtypeMatcher) Infer(name, abbreviation, description string, catalog []string) (string, bool) {
	if len(catalog) == 0 {
		return "", false
	}

	combined := strings.ToLower(strings.TrimSpace(name + " " + abbreviation + " " + description))
	descWords := strings.Fields(strings.ToLower(description))

	for _, candidate := range catalog {
		candidateNorm := normalizeSubtype(candidate)

		// Field words matching the catalog entry, tolerating plural forms
		// ("Datatypes" selects "AST_Datatype").
		for _, word := range descWords {
			if word == candidateNorm ||
				strings.TrimSuffix(word, "s") == strings.TrimSuffix(candidateNorm, "s") {
				return candidate, true
			}
		}

		if candidateNorm != "" && strings.Contains(combined, candidateNorm) {
			return candidate, true
		}

		for _, alias := range subtypeAliases[flatten(candidateNorm)] {
			if strings.Contains(combined, alias) {
				return candidate, true
			}
		}

		abbr := strings.ToLower(strings.TrimSpace(abbreviation))
		if abbr != "" && (strings.Contains(candidateNorm, abbr) || strings.Contains(abbr, flatten(candidateNorm))) {
			return candidate, true
		}
	}
	return "", false
}

// normalizeSubtype lowercases a catalog entry and strips known domain
// prefixes and separators: "AST_IT-System" → "it system".
func normalizeSubtype(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	for _, prefix := range subtypePrefixes {
		out = strings.TrimPrefix(out, prefix)
	}
	out = strings.ReplaceAll(out, "_", " ")
	out = strings.ReplaceAll(out, "-", " ")
	return strings.TrimSpace(out)
}

func flatten(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func wordsContained(words []string, haystack string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(haystack, w) {
			return false
		}
	}
	return true
}
