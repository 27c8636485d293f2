package routing

import (
	"regexp"
	"sort"
)

// ObjectTypeResolver maps any surface form of an object type name (plural,
// mixed case, post-normalization typo fix) to its canonical singular token.
type ObjectTypeResolver struct {
	forms    []string
	patterns map[string]*regexp.Regexp
}

// NewObjectTypeResolver builds the resolver from the registry of surface
// forms. Forms are scanned longest-first so plural forms win before their
// singular substring gets a chance to match.
func NewObjectTypeResolver() *ObjectTypeResolver {
	forms := make([]string, len(objectTypeForms))
	copy(forms, objectTypeForms)
	sort.Slice(forms, func(i, j int) bool {
		if len(forms[i]) != len(forms[j]) {
			return len(forms[i]) > len(forms[j])
		}
		return forms[i] < forms[j]
	})

	patterns := make(map[string]*regexp.Regexp, len(forms))
	for _, form := range forms {
		patterns[form] = regexp.MustCompile(`\b` + regexp.QuoteMeta(form) + `\b`)
	}
	return &ObjectTypeResolver{forms: forms, patterns: patterns}
}

// Resolve scans a normalized message for the first whole-word object type
// mention and returns the canonical singular token. The second return is
// false when no object type occurs; callers treat that as "not an
// object-operation message", never as an error.
func (r *ObjectTypeResolver) Resolve(message string) (string, bool) {
	for _, form := range r.forms {
		if r.patterns[form].MatchString(message) {
			return singularForms[form], true
		}
	}
	return "", false
}

// KnownTypes returns the canonical singular tokens in stable order.
func (r *ObjectTypeResolver) KnownTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, form := range objectTypeForms {
		singular := singularForms[form]
		if !seen[singular] {
			seen[singular] = true
			out = append(out, singular)
		}
	}
	return out
}
