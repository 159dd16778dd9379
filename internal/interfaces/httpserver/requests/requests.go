// Package requests contains HTTP request DTOs for the voice gateway API.
package requests

// CreateSessionRequest is the body for POST /api/realtime/session.
type CreateSessionRequest struct {
	// WebhookURL is the n8n webhook that will receive transcriptions for
	// this session. Required; not validated beyond presence.
	WebhookURL string `json:"webhook_url"`
	// ModelType selects the model variant ("standard" or "mini").
	// Unknown values fall back to standard.
	ModelType string `json:"model_type,omitempty"`
}

// AutomationResponse is the body for POST /api/realtime/n8n-response.
// Text is a pointer so an absent key can be rejected while an explicit
// empty string passes through.
type AutomationResponse struct {
	Text      *string `json:"text"`
	SessionID string  `json:"session_id,omitempty"`
}

// ForwardTranscriptionRequest is the body for POST /api/forward-to-n8n.
// Transcription is a pointer for the same absent-vs-empty distinction.
type ForwardTranscriptionRequest struct {
	Transcription *string `json:"transcription"`
	SessionID     string  `json:"session_id"`
}

// WebhookReply is the body n8n pushes to POST /api/webhook/:session_id.
// Extra keys are tolerated; only text is used and it defaults to "".
type WebhookReply struct {
	Text string `json:"text"`
}
