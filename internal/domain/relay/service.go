package relay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/n8nvoice/voice-gateway/internal/domain/session"
)

// payloadSource identifies this gateway in webhook payload metadata.
const payloadSource = "n8n-voice-gateway"

// BrokerSession is the result of minting a realtime session upstream.
// Raw carries the upstream JSON verbatim, including the ephemeral
// client_secret the frontend needs.
type BrokerSession struct {
	ID    string
	Model string
	Raw   json.RawMessage
}

// Broker mints realtime sessions with the upstream speech API.
type Broker interface {
	CreateSession(ctx context.Context, modelType string) (*BrokerSession, error)
}

// WebhookPayload is the JSON body delivered to the n8n webhook.
type WebhookPayload struct {
	Transcription string          `json:"transcription"`
	SessionID     string          `json:"session_id"`
	Timestamp     string          `json:"timestamp"`
	Metadata      PayloadMetadata `json:"metadata"`
}

// PayloadMetadata identifies the payload origin to the n8n workflow.
type PayloadMetadata struct {
	Source  string `json:"source"`
	Version string `json:"version"`
}

// WebhookSender delivers a payload to a webhook URL. Delivery problems
// never surface as errors; they are folded into the normalized Reply so
// the caller always gets a usable text response.
type WebhookSender interface {
	Send(ctx context.Context, url string, payload WebhookPayload) Reply
}

// Service defines the relay operations between the realtime frontend and
// the n8n webhook.
type Service interface {
	CreateSession(ctx context.Context, webhookURL, modelType string) (json.RawMessage, error)
	ForwardTranscription(ctx context.Context, sessionID, transcription string) (Reply, error)
	HandleWebhookReply(ctx context.Context, sessionID, text string) (RealtimeEvent, error)
	FormatResponse(ctx context.Context, text, sessionID string) RealtimeEvent
	ListSessions(ctx context.Context) ([]*session.Session, error)
}

type service struct {
	store   session.Store
	broker  Broker
	webhook WebhookSender
	version string
	log     zerolog.Logger
}

// NewService creates a new relay service.
func NewService(store session.Store, broker Broker, webhook WebhookSender, version string, log zerolog.Logger) Service {
	return &service{
		store:   store,
		broker:  broker,
		webhook: webhook,
		version: version,
		log:     log.With().Str("component", "relay-service").Logger(),
	}
}

// CreateSession mints an upstream session and registers its webhook URL.
// The upstream JSON is passed through verbatim.
func (s *service) CreateSession(ctx context.Context, webhookURL, modelType string) (json.RawMessage, error) {
	brokered, err := s.broker.CreateSession(ctx, modelType)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create realtime session")
		return nil, err
	}

	// The upstream contract always includes an id; tolerate its absence
	// by skipping registration rather than failing the call.
	if brokered.ID != "" {
		sess := &session.Session{
			ID:         brokered.ID,
			WebhookURL: webhookURL,
			Model:      brokered.Model,
			CreatedAt:  time.Now(),
		}
		if err := s.store.Put(ctx, sess); err != nil {
			s.log.Error().Err(err).Str("session_id", brokered.ID).Msg("failed to register session")
			return nil, err
		}
	} else {
		s.log.Warn().Msg("upstream session response carried no id, skipping registration")
	}

	s.log.Info().
		Str("session_id", brokered.ID).
		Str("model", brokered.Model).
		Msg("realtime session created")

	return brokered.Raw, nil
}

// ForwardTranscription resolves the session's webhook URL and delivers
// the transcription. Unknown sessions fail before any webhook contact.
func (s *service) ForwardTranscription(ctx context.Context, sessionID, transcription string) (Reply, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	payload := WebhookPayload{
		Transcription: transcription,
		SessionID:     sessionID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Metadata: PayloadMetadata{
			Source:  payloadSource,
			Version: s.version,
		},
	}

	reply := s.webhook.Send(ctx, sess.WebhookURL, payload)

	s.log.Info().
		Str("session_id", sessionID).
		Int("transcription_len", len(transcription)).
		Msg("transcription forwarded")

	return reply, nil
}

// HandleWebhookReply turns an n8n push for a known session into a
// realtime event. Unknown sessions fail with the store's not-found error.
func (s *service) HandleWebhookReply(ctx context.Context, sessionID, text string) (RealtimeEvent, error) {
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return RealtimeEvent{}, err
	}
	return s.FormatResponse(ctx, text, sessionID), nil
}

// FormatResponse builds the realtime event for a text reply. The session
// ID is used for logging only; it does not appear in the event.
func (s *service) FormatResponse(ctx context.Context, text, sessionID string) RealtimeEvent {
	s.log.Debug().
		Str("session_id", sessionID).
		Int("text_len", len(text)).
		Msg("formatting response for realtime")
	return AssistantEvent(text)
}

// ListSessions returns all registered sessions.
func (s *service) ListSessions(ctx context.Context) ([]*session.Session, error) {
	return s.store.List(ctx)
}
