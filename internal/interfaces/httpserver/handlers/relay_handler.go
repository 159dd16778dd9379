package handlers

import (
	"context"
	"encoding/json"

	"github.com/n8nvoice/voice-gateway/internal/domain/relay"
	"github.com/n8nvoice/voice-gateway/internal/domain/session"
)

// RelayHandler handles relay-related HTTP requests.
type RelayHandler struct {
	service relay.Service
}

// NewRelayHandler creates a new relay handler.
func NewRelayHandler(service relay.Service) *RelayHandler {
	return &RelayHandler{service: service}
}

// CreateSession mints a realtime session and registers its webhook URL.
func (h *RelayHandler) CreateSession(ctx context.Context, webhookURL, modelType string) (json.RawMessage, error) {
	return h.service.CreateSession(ctx, webhookURL, modelType)
}

// ForwardTranscription relays a transcription to the session's webhook.
func (h *RelayHandler) ForwardTranscription(ctx context.Context, sessionID, transcription string) (relay.Reply, error) {
	return h.service.ForwardTranscription(ctx, sessionID, transcription)
}

// HandleWebhookReply converts an n8n push into a realtime event.
func (h *RelayHandler) HandleWebhookReply(ctx context.Context, sessionID, text string) (relay.RealtimeEvent, error) {
	return h.service.HandleWebhookReply(ctx, sessionID, text)
}

// FormatResponse converts text into a realtime event.
func (h *RelayHandler) FormatResponse(ctx context.Context, text, sessionID string) relay.RealtimeEvent {
	return h.service.FormatResponse(ctx, text, sessionID)
}

// ListSessions returns all registered sessions.
func (h *RelayHandler) ListSessions(ctx context.Context) ([]*session.Session, error) {
	return h.service.ListSessions(ctx)
}
