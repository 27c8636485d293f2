package model

// EnvelopeStatus is the outcome of a routed message.
type EnvelopeStatus string

const (
	StatusSuccess EnvelopeStatus = "success"
	StatusError   EnvelopeStatus = "error"
)

// Envelope is the response returned for every chat message. Text is always
// populated; Payload carries structured data (report metadata, object lists)
// when a handler produced any.
type Envelope struct {
	Status  EnvelopeStatus `json:"status"`
	Text    string         `json:"text"`
	Payload map[string]any `json:"payload,omitempty"`
}

// SuccessEnvelope builds a success envelope with plain text.
func SuccessEnvelope(text string) Envelope {
	return Envelope{Status: StatusSuccess, Text: text}
}

// ErrorEnvelope builds an error envelope with a user-facing message.
func ErrorEnvelope(text string) Envelope {
	return Envelope{Status: StatusError, Text: text}
}
