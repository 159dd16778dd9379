package api

import (
	"github.com/gin-gonic/gin"

	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/handlers"
)

// Routes holds the /api route configuration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes creates a new api routes instance.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register registers all /api routes on the engine. If authMiddleware is
// provided it is applied to the session and relay routes; the config,
// health, and webhook-receiver routes stay public so the frontend and
// n8n can reach them without credentials.
func (r *Routes) Register(engine *gin.Engine, authMiddleware gin.HandlerFunc) {
	public := engine.Group("/api")
	RegisterPublicRelayRoutes(public, r.handlers.Relay)

	protected := engine.Group("/api")
	if authMiddleware != nil {
		protected.Use(authMiddleware)
	}
	RegisterRelayRoutes(protected, r.handlers.Relay)
}
