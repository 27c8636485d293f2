package usecase

import (
	"regexp"
	"strings"
)

// Argument extraction for object operations. All patterns run against
// the raw message so user-supplied names keep their casing; command
// words match case-insensitively. The create verbs include the frequent
// "creat" typo on purpose.

const createVerbs = `(?:create|creat|new|add)`

var (
	uuidPattern = regexp.MustCompile(`(?i)[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`)

	abbreviationKeyword = regexp.MustCompile(`(?i)\babbr(?:eviation|ev)?[:\s]+([A-Za-z0-9_-]{1,10})`)
	descriptionKeyword  = regexp.MustCompile(`(?i)\bdesc(?:ription)?[:\s]+(.+?)(?:\s+subtype|\s+status|$)`)
	subTypeKeyword      = regexp.MustCompile(`(?i)\bsub\s?type[:\s]+([A-Za-z0-9_ -]+?)(?:\s+status|$)`)

	trailingStopWords = regexp.MustCompile(`(?i)\s+(in|for|with|using|to|the|is|as|description|abbreviation|abbr|subtype|status|field|value)\b.*$`)
)

// createFields are the arguments of a create command.
type createFields struct {
	Name         string
	Abbreviation string
	Description  string
	SubType      string
}

type createPattern struct {
	re     *regexp.Regexp
	groups []string
	// quotedName marks patterns whose name group is quoted; unquoted
	// name matches are rejected when they swallow a field keyword.
	quotedName bool
}

// createPatterns builds the positional create formats for one object
// type, most explicit first. Quoted values keep embedded spaces.
func createPatterns(objectType string) []createPattern {
	t := regexp.QuoteMeta(objectType)
	prefix := `(?i)` + createVerbs + `\s+` + t + `\s+`
	tail := `(?:\s+subtype|\s+status|$)`
	return []createPattern{
		// create type "name" "abbr" "description" "subtype"
		{regexp.MustCompile(prefix + `"([^"]+)"\s+"([^"]+)"\s+"([^"]+)"\s+"([^"]+)"`), []string{"name", "abbr", "desc", "subtype"}, true},
		// create type "name" "abbr" "description"
		{regexp.MustCompile(prefix + `"([^"]+)"\s+"([^"]+)"\s+"([^"]+)"`), []string{"name", "abbr", "desc"}, true},
		// create type "name" ABBR "description"
		{regexp.MustCompile(prefix + `"([^"]+)"\s+([A-Za-z0-9_-]+)\s+"([^"]+)"`), []string{"name", "abbr", "desc"}, true},
		// create type "name" "abbr" unquoted description
		{regexp.MustCompile(prefix + `"([^"]+)"\s+"([^"]+)"\s+(.+?)` + tail), []string{"name", "abbr", "desc"}, true},
		// create type "name" ABBR unquoted description
		{regexp.MustCompile(prefix + `"([^"]+)"\s+([A-Za-z0-9_-]+)\s+(.+?)` + tail), []string{"name", "abbr", "desc"}, true},
		// create type name abbr description
		{regexp.MustCompile(prefix + `([A-Za-z0-9_\s-]+?)\s+([A-Za-z0-9_-]{1,20})\s+(.+?)` + tail), []string{"name", "abbr", "desc"}, false},
		// create type name abbr
		{regexp.MustCompile(prefix + `([A-Za-z0-9_\s-]+?)\s+([A-Za-z0-9_-]{1,20})` + tail), []string{"name", "abbr"}, false},
	}
}

// extractCreateFields parses a create command. It tries the positional
// formats first and falls back to keyword extraction (description:,
// abbreviation:, subtype:) with a looser name search.
func extractCreateFields(message, objectType string) (createFields, bool) {
	for _, p := range createPatterns(objectType) {
		m := p.re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		var f createFields
		for i, field := range p.groups {
			v := strings.TrimSpace(m[i+1])
			switch field {
			case "name":
				f.Name = strings.ReplaceAll(v, "_", " ")
			case "abbr":
				f.Abbreviation = v
			case "desc":
				f.Description = strings.Trim(v, `"'`)
			case "subtype":
				f.SubType = v
			}
		}
		if f.Name == "" {
			continue
		}
		// "create control called X abbreviation AR" is a keyword form;
		// an unquoted positional match that ate a keyword is wrong.
		if !p.quotedName && nameHasFieldKeyword(f.Name) {
			continue
		}
		return f, true
	}

	name := extractName(message, objectType)
	if name == "" {
		return createFields{}, false
	}
	f := createFields{Name: name}
	if m := abbreviationKeyword.FindStringSubmatch(message); m != nil {
		f.Abbreviation = strings.TrimSpace(m[1])
	}
	if m := descriptionKeyword.FindStringSubmatch(message); m != nil {
		f.Description = strings.Trim(strings.TrimSpace(m[1]), `"'`)
	}
	if m := subTypeKeyword.FindStringSubmatch(message); m != nil {
		f.SubType = strings.TrimSpace(m[1])
	}
	return f, true
}

// extractName finds an object name in a create-style message. The
// called/named form is checked first so its marker word never leaks
// into the name.
func extractName(message, objectType string) string {
	t := regexp.QuoteMeta(objectType)
	fieldTail := `(?:\s+description|\s+abbreviation|\s+subtype|\s+status|$)`
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + t + `\s+(?:called|named)\s+([A-Za-z0-9_\s-]+)`),
		regexp.MustCompile(`(?i)` + createVerbs + `\s+` + t + `\s+([A-Za-z0-9_\s-]+?)` + fieldTail),
		regexp.MustCompile(`(?i)(?:name|called|named)\s+([A-Za-z0-9_\s-]+)`),
		regexp.MustCompile(`(?i)` + t + `\s+([A-Za-z0-9_\s-]+?)` + fieldTail),
	}
	for _, p := range patterns {
		if m := p.FindStringSubmatch(message); m != nil {
			name := strings.TrimSpace(trailingStopWords.ReplaceAllString(m[1], ""))
			if name != "" {
				return name
			}
		}
	}
	return ""
}

// fieldKeywords are marker words of the keyword create form; a
// positional name containing one means the positional parse misfired.
var fieldKeywords = map[string]bool{
	"name": true, "called": true, "named": true,
	"abbreviation": true, "abbrev": true, "abbr": true,
	"description": true, "desc": true, "subtype": true,
}

func nameHasFieldKeyword(name string) bool {
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if fieldKeywords[word] {
			return true
		}
	}
	return false
}

// extractTarget finds the UUID or name an operation should act on.
// The second return reports whether the first is a UUID.
func extractTarget(message, objectType string) (string, bool) {
	if m := uuidPattern.FindString(message); m != "" {
		return m, true
	}
	t := regexp.QuoteMeta(objectType)
	patterns := []*regexp.Regexp{
		// Update commands stop at the first field keyword.
		regexp.MustCompile(`(?i)(?:update|change|modify|edit|set)\s+` + t + `\s+([A-Za-z0-9_\s-]+?)(?:\s+(?:description|status|subtype|name|abbreviation|abbr))`),
		// Get-style commands take everything after the type.
		regexp.MustCompile(`(?i)(?:get|view|show|delete|remove|analyze|analyse)\s+` + t + `\s+(.+)`),
		regexp.MustCompile(`(?i)` + t + `\s+([A-Za-z0-9_\s-]+)`),
	}
	for _, p := range patterns {
		if m := p.FindStringSubmatch(message); m != nil {
			name := strings.TrimSpace(trailingStopWords.ReplaceAllString(m[1], ""))
			if name != "" {
				return name, false
			}
		}
	}
	return "", false
}

// updateFieldNames maps the spoken field words of the keyword update
// form onto the store's field keys.
var updateFieldNames = map[string]string{
	"name":         "name",
	"abbreviation": "abbreviation",
	"abbrev":       "abbreviation",
	"abbr":         "abbreviation",
	"description":  "description",
	"desc":         "description",
	"status":       "status",
	"subtype":      "subType",
}

// extractUpdateArgs parses the update arguments. The keyword form
// "update <type> <current> <field> <value...>" changes that one field;
// otherwise the positional form
// "update <type> <current> <newName> [newAbbr] [newDescription...]"
// applies. The returned fields map is empty when no new values were
// given.
func extractUpdateArgs(message, objectType string) map[string]any {
	words := strings.Fields(message)
	for i, word := range words {
		field, ok := updateFieldNames[strings.ToLower(word)]
		if !ok || i == 0 {
			continue
		}
		if i+1 >= len(words) {
			// A dangling keyword carries no value; the positional
			// parse would read it as a rename.
			return map[string]any{}
		}
		return map[string]any{field: strings.Join(words[i+1:], " ")}
	}

	skip := map[string]bool{
		"update": true, "edit": true, "modify": true, "change": true, "set": true,
		objectType: true, objectType + "s": true,
	}
	var parts []string
	for _, word := range strings.Fields(message) {
		if !skip[strings.ToLower(word)] {
			parts = append(parts, word)
		}
	}
	// parts[0] is the current name, already resolved by the caller.
	if len(parts) < 2 {
		return map[string]any{}
	}
	args := parts[1:]
	fields := map[string]any{"name": args[0]}
	if len(args) >= 2 {
		fields["abbreviation"] = args[1]
	}
	if len(args) >= 3 {
		fields["description"] = strings.Join(args[2:], " ")
	}
	return fields
}
