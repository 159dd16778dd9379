// Package voicegateway implements the n8n voice gateway service which
// brokers OpenAI Realtime API sessions and relays transcriptions between
// the Realtime API and n8n automation webhooks.
//
// The service provides:
//   - Realtime session creation with ephemeral token pass-through
//   - An in-memory registry correlating session IDs with webhook URLs
//   - Transcription forwarding to the configured n8n webhook
//   - Webhook reply normalization into realtime conversation events
//   - Optional JWT authentication via a JWKS endpoint
//
// For more information, see the README.md file.
package voicegateway
