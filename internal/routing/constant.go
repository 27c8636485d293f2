package routing

// Log prefixes
const (
	LogPrefixChain      = "internal.routing.Chain"
	LogPrefixComparator = "internal.routing.Comparator"
)

// typoTable maps common misspellings to their canonical word. Substitution is
// whole-word only: "creat" must not rewrite "created".
var typoTable = map[string]string{
	"creat":   "create",
	"crate":   "create",
	"craete":  "create",
	"lsit":    "list",
	"shwo":    "show",
	"delte":   "delete",
	"udpate":  "update",
	"assest":  "asset",
	"assests": "assets",
	"asets":   "assets",
	"scop":    "scope",
	"scops":   "scopes",
	"persn":   "person",
	"persns":  "persons",
	"proces":  "process",
	"procesess": "processes",
}

// objectTypeForms lists every surface form a user may type for an object
// type. Resolution scans longest-first so "processes" wins over "process".
var objectTypeForms = []string{
	"scope", "scopes",
	"asset", "assets",
	"person", "persons", "people",
	"process", "processes",
	"control", "controls",
	"incident", "incidents",
	"document", "documents",
	"scenario", "scenarios",
}

// singularForms maps every surface form to its canonical singular token.
// An explicit table, not suffix stripping: "processes" ends in "es" but its
// singular keeps the trailing "ss".
var singularForms = map[string]string{
	"scope":     "scope",
	"scopes":    "scope",
	"asset":     "asset",
	"assets":    "asset",
	"person":    "person",
	"persons":   "person",
	"people":    "person",
	"process":   "process",
	"processes": "process",
	"control":   "control",
	"controls":  "control",
	"incident":  "incident",
	"incidents": "incident",
	"document":  "document",
	"documents": "document",
	"scenario":  "scenario",
	"scenarios": "scenario",
}

// operationKeywords is the operation detection table in priority order.
// A message containing both an update verb and a create verb resolves to
// update; this ordering is a behavioral contract.
var operationKeywords = []struct {
	Op            Operation
	Keywords      []string
	Interrogative bool // suppressed when the message carries how/what/why
}{
	{Op: OperationUpdate, Keywords: []string{"update", "edit", "modify"}},
	{Op: OperationDelete, Keywords: []string{"delete", "remove"}},
	{Op: OperationCreate, Keywords: []string{"create", "new", "add", "make"}, Interrogative: true},
	{Op: OperationList, Keywords: []string{"list", "show", "display"}, Interrogative: true},
	{Op: OperationGet, Keywords: []string{"get", "view"}, Interrogative: true},
	{Op: OperationAnalyze, Keywords: []string{"analyze"}},
}

// questionStarters mark knowledge questions, which are never commands.
var questionStarters = []string{
	"how do", "how can", "how to",
	"what is", "what are", "what does", "what should",
	"why", "explain", "tell me about", "describe",
}

// questionWords suppress create/list/get detection mid-message.
var questionWords = []string{"how", "what", "why"}

// greetings are matched against the whole message only; "hello, list scopes"
// is not a greeting.
var greetings = []string{
	"hi", "hello", "hey", "yo", "greetings",
	"good morning", "good afternoon", "good evening",
	"hi there", "hello there",
}

// thanks get a short acknowledgement instead of the capability greeting.
var thanks = []string{
	"thanks", "thank you", "thanks a lot", "thank you very much",
	"thx", "ty", "cheers",
}

// reportVerbs trigger report generation when paired with a report type.
var reportVerbs = []string{"generate", "create", "make", "get"}

// reportTypeTable maps message phrases to report type identifiers, checked in
// order so the most specific phrase wins.
var reportTypeTable = []struct {
	Phrases []string // all phrases must appear
	Type    string
	Name    string
}{
	{Phrases: []string{"inventory", "asset"}, Type: "inventory-of-assets", Name: "Inventory of Assets"},
	{Phrases: []string{"risk", "assessment"}, Type: "risk-assessment", Name: "Risk Assessment"},
	{Phrases: []string{"statement", "applicability"}, Type: "statement-of-applicability", Name: "Statement of Applicability"},
	{Phrases: []string{"inventory"}, Type: "inventory-of-assets", Name: "Inventory of Assets"},
	{Phrases: []string{"risk"}, Type: "risk-assessment", Name: "Risk Assessment"},
	{Phrases: []string{"statement"}, Type: "statement-of-applicability", Name: "Statement of Applicability"},
}

// defaultReportType is used for a bare "generate report".
const (
	defaultReportType = "inventory-of-assets"
	defaultReportName = "Inventory of Assets"
)

// subtypePrefixes are catalog prefixes stripped before fuzzy matching
// ("AST_IT-System" → "it system").
var subtypePrefixes = []string{"ast_", "per_", "scp_", "pro_", "ctl_", "inc_", "doc_", "scn_"}

// subtypeAliases maps known domain synonyms to catalog names. Keys are the
// flattened normalized form of the catalog entry (prefix and separators
// removed) so "PER_DataProtectionOfficer" and "AST_IT-System" both hit.
var subtypeAliases = map[string][]string{
	"dataprotectionofficer": {"dpo", "data protection", "privacy officer", "gdpr officer"},
	"itsystem":              {"server", "infrastructure", "network", "system", "it systems"},
	"application":           {"app", "software", "program", "applications"},
	"datatype":              {"data type", "data", "information", "dataset", "datatypes"},
	"person":                {"employee", "staff", "user"},
}

// bulkImportTriggers route spreadsheet-context replies to the bulk importer.
// Phrases pairing a create verb with an object type are absent on purpose:
// the object-operation step claims those before the document step runs.
var bulkImportTriggers = []string{
	"import", "import all", "import assets", "import the assets",
	"create all", "bulk", "bulk import", "bulk create",
}

// optionReplies are the short option-letter answers shown after a file
// upload ("i", "ii", ...). They must reach the document handlers, never the
// general chat fallback.
var optionReplies = map[string]int{
	"i": 1, "1": 1, "one": 1,
	"ii": 2, "2": 2, "two": 2,
	"iii": 3, "3": 3, "three": 3,
	"iv": 4, "4": 4, "four": 4,
}

// documentQueryKeywords mark messages that interrogate a processed document.
var documentQueryKeywords = []string{"row", "column", "how many", "count", "show", "get"}

// Confidence attached to pattern-based decisions, mirroring how certain each
// detection is relative to the others.
const (
	confidenceFollowUp  = 1.0
	confidenceGreeting  = 1.0
	confidenceObjectOp  = 0.95
	confidenceReport    = 0.9
	confidenceDocument  = 0.85
	confidenceBulk      = 0.8
	confidenceDocQuery  = 0.75
	confidenceKnowledge = 0.7
	confidenceChat      = 0.5
	confidenceFallback  = 0.1
)

// DefaultIntentThreshold gates the external intent classifier step.
const DefaultIntentThreshold = 0.6

// DefaultComparisonLogCapacity bounds the shadow comparison log.
const DefaultComparisonLogCapacity = 100
