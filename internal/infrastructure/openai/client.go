package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/n8nvoice/voice-gateway/internal/config"
	"github.com/n8nvoice/voice-gateway/internal/domain/relay"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/metrics"
	"github.com/n8nvoice/voice-gateway/internal/utils/platformerrors"
)

// Model variants offered by the gateway. Unrecognized variants fall back
// to the standard entry; this silent fallback is part of the contract.
const (
	ModelTypeStandard = "standard"
	ModelTypeMini     = "mini"
)

var models = map[string]string{
	ModelTypeStandard: "gpt-4o-transcribe",
	ModelTypeMini:     "gpt-4o-mini-transcribe",
}

// AvailableModelTypes lists the variants accepted by session creation.
func AvailableModelTypes() []string {
	return []string{ModelTypeStandard, ModelTypeMini}
}

// ResolveModel maps a model variant to the concrete model name,
// falling back to the standard model for unknown variants.
func ResolveModel(modelType string) string {
	if model, ok := models[modelType]; ok {
		return model
	}
	return models[ModelTypeStandard]
}

// Client mints realtime sessions with the OpenAI Realtime API.
// Implements relay.Broker.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	sessionURL string
	voice      string
	log        zerolog.Logger
}

// NewClient constructs the realtime session broker.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		httpClient: resty.New().
			SetTimeout(cfg.RealtimeTimeout).
			SetHeader("Content-Type", "application/json"),
		apiKey:     cfg.OpenAIAPIKey,
		sessionURL: cfg.RealtimeSessionURL,
		voice:      cfg.RealtimeVoice,
		log:        log.With().Str("component", "openai-broker").Logger(),
	}
}

type sessionRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
}

// CreateSession issues a single POST to the realtime sessions endpoint
// and returns the upstream JSON verbatim along with the extracted id.
func (c *Client) CreateSession(ctx context.Context, modelType string) (*relay.BrokerSession, error) {
	if c.apiKey == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConfiguration,
			"OPENAI_API_KEY environment variable not set", nil)
	}

	model := ResolveModel(modelType)

	c.log.Info().
		Str("model_type", modelType).
		Str("model", model).
		Str("voice", c.voice).
		Msg("creating realtime session")

	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetHeader("OpenAI-Beta", "realtime=v1").
		SetBody(sessionRequest{Model: model, Voice: c.voice}).
		Post(c.sessionURL)
	metrics.BrokerRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.BrokerRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("realtime session request failed: %v", err), err)
	}

	if resp.IsError() {
		metrics.BrokerRequestsTotal.WithLabelValues("upstream_error").Inc()
		c.log.Error().
			Int("status", resp.StatusCode()).
			Str("body", resp.String()).
			Msg("realtime session request rejected")
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("failed to create realtime session: %s", resp.String()), nil,
			map[string]any{"status": resp.StatusCode(), "body": resp.String()})
	}

	raw := resp.Body()

	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		metrics.BrokerRequestsTotal.WithLabelValues("decode_error").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"realtime session response is not valid JSON", err)
	}

	metrics.BrokerRequestsTotal.WithLabelValues("ok").Inc()
	c.log.Info().Str("session_id", envelope.ID).Str("model", model).Msg("realtime session created")

	return &relay.BrokerSession{
		ID:    envelope.ID,
		Model: model,
		Raw:   json.RawMessage(raw),
	}, nil
}
