//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/n8nvoice/voice-gateway/internal/config"
	"github.com/n8nvoice/voice-gateway/internal/domain/relay"
	"github.com/n8nvoice/voice-gateway/internal/domain/session"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/auth"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/n8n"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/openai"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/store"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver"
)

// ProviderSet is the wire provider set for the application.
var ProviderSet = wire.NewSet(
	// Infrastructure providers
	ProvideSessionBroker,
	ProvideWebhookSender,
	ProvideSessionStore,
	ProvideAuthValidator,

	// Domain providers
	ProvideRelayService,

	// Interface providers
	httpserver.New,

	// Application
	NewApplication,
)

// ProvideSessionBroker provides the OpenAI realtime session broker.
func ProvideSessionBroker(cfg *config.Config, log zerolog.Logger) relay.Broker {
	return openai.NewClient(cfg, log)
}

// ProvideWebhookSender provides the n8n webhook sender.
func ProvideWebhookSender(cfg *config.Config, log zerolog.Logger) relay.WebhookSender {
	return n8n.NewClient(cfg, log)
}

// ProvideSessionStore provides the session registry.
func ProvideSessionStore(log zerolog.Logger) session.Store {
	return store.NewMemoryStore(log)
}

// ProvideAuthValidator provides an auth validator.
func ProvideAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

// ProvideRelayService provides the relay service.
func ProvideRelayService(
	sessionStore session.Store,
	broker relay.Broker,
	webhook relay.WebhookSender,
	log zerolog.Logger,
) relay.Service {
	return relay.NewService(sessionStore, broker, webhook, config.Version, log)
}

// CreateApplication creates the application with all dependencies wired.
func CreateApplication(
	ctx context.Context,
	cfg *config.Config,
	log zerolog.Logger,
) (*Application, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
