package verinice

// objectTypePlurals maps canonical object type tokens to their REST path
// segment.
var objectTypePlurals = map[string]string{
	"scope":    "scopes",
	"asset":    "assets",
	"person":   "persons",
	"process":  "processes",
	"control":  "controls",
	"incident": "incidents",
	"document": "documents",
	"scenario": "scenarios",
}

// Report output types accepted by the reporting endpoint.
const (
	OutputPDF = "application/pdf"
)

const defaultTimeoutSeconds = 30

// tokenExpirySkewSeconds is subtracted from the advertised token lifetime so
// a token is refreshed before the server rejects it.
const tokenExpirySkewSeconds = 30
