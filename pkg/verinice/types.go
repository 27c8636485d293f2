package verinice

// Object is one ISMS element as the backend returns it. Only the fields the
// assistant reads are mapped; the full backend document is preserved in Raw
// so updates can send the complete object back.
type Object struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Abbreviation string         `json:"abbreviation,omitempty"`
	Description  string         `json:"description,omitempty"`
	SubType      string         `json:"subType,omitempty"`
	Status       string         `json:"status,omitempty"`
	Raw          map[string]any `json:"-"`
}

// CreateObjectOptions carries everything needed to create one object.
type CreateObjectOptions struct {
	ObjectType   string
	DomainID     string
	UnitID       string
	Name         string
	SubType      string
	Description  string
	Abbreviation string
}

// CreateResult is the backend's answer to a create.
type CreateResult struct {
	ResourceID string `json:"resourceId"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
}

// ListOptions filters a list call. DomainID may be empty for scopes, which
// can be listed at unit level.
type ListOptions struct {
	ObjectType string
	DomainID   string
	UnitID     string
	SubType    string
	Status     string
}

// Domain is an organizational domain.
type Domain struct {
	ID                     string                           `json:"id"`
	Name                   string                           `json:"name"`
	ElementTypeDefinitions map[string]ElementTypeDefinition `json:"elementTypeDefinitions,omitempty"`
}

// ElementTypeDefinition describes one object type inside a domain, including
// its valid subtypes.
type ElementTypeDefinition struct {
	SubTypes map[string]SubTypeDefinition `json:"subTypes"`
}

// SubTypeDefinition holds the per-subtype status vocabulary.
type SubTypeDefinition struct {
	Statuses []string `json:"statuses,omitempty"`
}

// Unit is an organizational unit.
type Unit struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Domains []IDRef `json:"domains,omitempty"`
}

// IDRef is a reference to another resource.
type IDRef struct {
	TargetURI string `json:"targetUri,omitempty"`
	ID        string `json:"id,omitempty"`
}

// Report is one reporting template known to the backend.
type Report struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ReportTarget names the object a report is generated for.
type ReportTarget struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// GenerateReportOptions parameterizes report generation.
type GenerateReportOptions struct {
	ReportType string
	OutputType string
	Targets    []ReportTarget
}

// ReportOutput is the generated artifact.
type ReportOutput struct {
	ContentType string
	Data        []byte
}

// listEnvelope covers the backend's paginated and bare-array list answers.
type listEnvelope struct {
	Items   []Object `json:"items"`
	Content []Object `json:"content"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
