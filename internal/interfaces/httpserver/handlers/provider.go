package handlers

import (
	"github.com/google/wire"

	"github.com/n8nvoice/voice-gateway/internal/domain/relay"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Relay *RelayHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(relayService relay.Service) *Provider {
	return &Provider{
		Relay: NewRelayHandler(relayService),
	}
}

// HandlerProvider provides all handler dependencies.
var HandlerProvider = wire.NewSet(
	NewProvider,
)
