package routing

// Route identifies the handler a message is dispatched to.
type Route string

const (
	RouteFollowUp        Route = "follow_up"
	RouteGreeting        Route = "greeting"
	RouteObjectOperation Route = "object_operation"
	RouteReport          Route = "report"
	RouteIntent          Route = "intent"
	RouteDocumentAnalyze Route = "document_analyze"
	RouteDocumentQuery   Route = "document_query"
	RouteBulkImport      Route = "bulk_import"
	RouteKnowledge       Route = "knowledge"
	RouteChat            Route = "chat"
	RouteFallback        Route = "fallback"
)

// Decision is the outcome of routing one message. Payload carries whatever
// the matching classifier extracted (object type, operation, report type,
// resolved intent) so the handler does not re-parse the message.
type Decision struct {
	Route      Route
	Payload    map[string]any
	Confidence float64
}

// Payload keys shared between classifiers and handlers.
const (
	PayloadObjectType = "object_type"
	PayloadOperation  = "operation"
	PayloadReportType = "report_type"
	PayloadReportName = "report_name"
	PayloadIntent     = "intent"
	PayloadReasoning  = "reasoning"
	PayloadOption     = "option"
)
