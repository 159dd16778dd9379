package interfaces

import (
	"github.com/google/wire"

	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/handlers"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/routes"
)

// InterfacesProvider provides all interface dependencies.
var InterfacesProvider = wire.NewSet(
	handlers.HandlerProvider,
	routes.RouteProvider,
	httpserver.New,
)
