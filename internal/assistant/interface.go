package assistant

import (
	"context"

	"isms-assistant/internal/model"
	"isms-assistant/pkg/verinice"
)

// UseCase is the conversational entry point. One call routes and
// executes exactly one user message for one session.
type UseCase interface {
	Chat(ctx context.Context, input ChatInput) (ChatOutput, error)
}

// ObjectStore is the port to the ISMS backend. *verinice.Client
// satisfies it; tests substitute a fake.
type ObjectStore interface {
	CreateObject(ctx context.Context, opt verinice.CreateObjectOptions) (verinice.CreateResult, error)
	ListObjects(ctx context.Context, opt verinice.ListOptions) ([]verinice.Object, error)
	GetObject(ctx context.Context, objectType, id string) (verinice.Object, error)
	UpdateObject(ctx context.Context, objectType, domainID, id string, fields map[string]any) (verinice.Object, error)
	DeleteObject(ctx context.Context, objectType, id string) error
	GetSubTypes(ctx context.Context, domainID, objectType string) ([]string, error)
	ListDomains(ctx context.Context) ([]verinice.Domain, error)
	ListUnits(ctx context.Context) ([]verinice.Unit, error)
	ListReports(ctx context.Context) ([]verinice.Report, error)
	GenerateReport(ctx context.Context, opt verinice.GenerateReportOptions) (verinice.ReportOutput, error)
}

var _ ObjectStore = (*verinice.Client)(nil)

// Reasoner is the port to the language model used for knowledge answers
// and free-form chat. A rate-limited or failing reasoner degrades the
// answer, it never fails the whole request.
type Reasoner interface {
	Reason(ctx context.Context, query, context string) (string, error)
	Available() bool
}

// DocumentContext describes the document state of a session as seen by
// the routing chain.
type DocumentContext struct {
	HasActiveDocument bool
	SpreadsheetCount  int
	PendingFileAction bool
}

// DocumentGateway is the optional port to the document subsystem. When
// it is absent the document routes answer with a guidance message and
// the chain receives an empty document context.
type DocumentGateway interface {
	Context(s *model.SessionState) DocumentContext
	Analyze(ctx context.Context, s *model.SessionState, message string) (string, error)
	Query(ctx context.Context, s *model.SessionState, message string) (string, error)
	BulkImport(ctx context.Context, s *model.SessionState, message string, option int) (string, error)
}
