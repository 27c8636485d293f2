package intent

// Intent names the classifier's vocabulary. They line up with the routing
// dispatcher's operation handlers.
const (
	IntentCreateObject    = "create_object"
	IntentListObjects     = "list_objects"
	IntentGetObject       = "get_object"
	IntentUpdateObject    = "update_object"
	IntentDeleteObject    = "delete_object"
	IntentAnalyzeDocument = "analyze_document"
	IntentQueryDocument   = "query_document"
	IntentBulkImport      = "bulk_import"
	IntentUnknown         = "unknown"
)

// classifierOutput is the raw JSON shape the model returns. Confidence is
// 0-100 on the wire and converted to 0-1 for callers.
type classifierOutput struct {
	Intent     string `json:"intent"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

var knownIntents = map[string]bool{
	IntentCreateObject:    true,
	IntentListObjects:     true,
	IntentGetObject:       true,
	IntentUpdateObject:    true,
	IntentDeleteObject:    true,
	IntentAnalyzeDocument: true,
	IntentQueryDocument:   true,
	IntentBulkImport:      true,
	IntentUnknown:         true,
}
