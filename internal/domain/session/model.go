package session

import "time"

// Session correlates a realtime session with the webhook URL supplied at
// creation time. The ID is issued by the OpenAI Realtime API and treated
// as opaque.
type Session struct {
	ID         string    `json:"id"`
	WebhookURL string    `json:"webhook_url"`
	Model      string    `json:"model,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
