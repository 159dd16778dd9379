// Package responses contains HTTP response DTOs for the voice gateway API.
package responses

import (
	"net/url"
	"time"

	domainsession "github.com/n8nvoice/voice-gateway/internal/domain/session"
)

// ConfigResponse is returned by GET /api/config for the frontend.
type ConfigResponse struct {
	RealtimeAPIEnabled bool     `json:"realtime_api_enabled"`
	Version            string   `json:"version"`
	AvailableModels    []string `json:"available_models,omitempty"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// SessionSummary is the diagnostics view of a registered session. The
// webhook URL is redacted to its host.
type SessionSummary struct {
	ID          string    `json:"id"`
	Model       string    `json:"model,omitempty"`
	WebhookHost string    `json:"webhook_host,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListSessionsResponse is returned by GET /api/realtime/sessions.
type ListSessionsResponse struct {
	Object string            `json:"object"`
	Data   []*SessionSummary `json:"data"`
}

// NewListSessionsResponse builds the diagnostics listing.
func NewListSessionsResponse(sessions []*domainsession.Session) *ListSessionsResponse {
	data := make([]*SessionSummary, len(sessions))
	for i, s := range sessions {
		data[i] = &SessionSummary{
			ID:          s.ID,
			Model:       s.Model,
			WebhookHost: redactURL(s.WebhookURL),
			CreatedAt:   s.CreatedAt,
		}
	}
	return &ListSessionsResponse{
		Object: "list",
		Data:   data,
	}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}
