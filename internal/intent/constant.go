package intent

// Log prefixes
const (
	LogPrefixClassify = "internal.intent.Classify"
)

// Classifier prompts
const (
	PromptClassifySystem = `You are the intent classifier of an ISMS assistant backed by an object store of scopes, assets, persons, processes, controls, incidents, documents and scenarios.

Current message: "%s"

Possible intents:
1. create_object: create or register a new ISMS object
2. list_objects: list or enumerate ISMS objects of some type
3. get_object: show one specific ISMS object
4. update_object: change fields of an existing ISMS object
5. delete_object: remove an ISMS object
6. analyze_document: analyze or summarize an uploaded document
7. query_document: answer a question about an uploaded document
8. bulk_import: import many objects from an uploaded spreadsheet
9. unknown: anything else, small talk included

Return JSON with this format:
{
  "intent": "create_object|list_objects|get_object|update_object|delete_object|analyze_document|query_document|bulk_import|unknown",
  "confidence": 0-100,
  "reasoning": "One short sentence"
}`

	PromptHistoryPrefix = "Recent conversation:\n"
)

// Classifier configuration
const (
	ClassifierTemperature = 0.1
	historyWindow         = 6
)

// Error messages
const (
	ErrMsgLLMCallFailed   = "LLM call failed"
	ErrMsgJSONParseFailed = "failed to parse classifier JSON, treating as unknown"
	ErrMsgEmptyResponse   = "empty classifier response, treating as unknown"
)
