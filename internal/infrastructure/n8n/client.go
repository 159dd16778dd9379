package n8n

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/n8nvoice/voice-gateway/internal/config"
	"github.com/n8nvoice/voice-gateway/internal/domain/relay"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/metrics"
)

// Client delivers transcription payloads to n8n webhooks.
// Implements relay.WebhookSender.
type Client struct {
	httpClient *resty.Client
	log        zerolog.Logger
}

// NewClient constructs the webhook delivery client.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		httpClient: resty.New().
			SetTimeout(cfg.WebhookTimeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		log: log.With().Str("component", "n8n-webhook").Logger(),
	}
}

// Send POSTs the payload to the webhook URL and normalizes whatever
// comes back into a text-bearing Reply. Delivery failures are folded
// into the Reply rather than returned as errors, so the voice frontend
// always has something to speak. No retries.
func (c *Client) Send(ctx context.Context, url string, payload relay.WebhookPayload) relay.Reply {
	c.log.Info().
		Str("url", url).
		Str("session_id", payload.SessionID).
		Msg("sending transcription to n8n webhook")

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(url)
	if err != nil {
		metrics.WebhookDeliveriesTotal.WithLabelValues("transport_error").Inc()
		c.log.Error().Err(err).Str("url", url).Msg("webhook request failed")
		return relay.Reply{"text": fmt.Sprintf("Connection error: %v", err)}
	}

	if resp.IsError() {
		metrics.WebhookDeliveriesTotal.WithLabelValues("upstream_error").Inc()
		c.log.Error().
			Int("status", resp.StatusCode()).
			Str("body", resp.String()).
			Str("url", url).
			Msg("webhook returned error status")
		return relay.Reply{"text": fmt.Sprintf("Error: Webhook returned status %d", resp.StatusCode())}
	}

	metrics.WebhookDeliveriesTotal.WithLabelValues("ok").Inc()

	reply := relay.NormalizeReply(resp.Body())
	c.log.Info().
		Int("status", resp.StatusCode()).
		Int("reply_len", len(reply.Text())).
		Msg("webhook reply normalized")
	return reply
}
