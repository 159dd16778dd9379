package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/n8nvoice/voice-gateway/internal/infrastructure/auth"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/handlers"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/routes/api"
)

// RouteProvider provides the route dependencies.
var RouteProvider = wire.NewSet(NewProvider)

// Provider holds all route providers.
type Provider struct {
	API           *api.Routes
	authValidator *auth.Validator
}

// NewProvider creates a new route provider.
func NewProvider(handlerProvider *handlers.Provider, authValidator *auth.Validator) *Provider {
	return &Provider{
		API:           api.NewRoutes(handlerProvider),
		authValidator: authValidator,
	}
}

// Register registers all routes on the engine.
func (p *Provider) Register(engine *gin.Engine) {
	if p.authValidator != nil {
		p.API.Register(engine, p.authValidator.Middleware())
	} else {
		p.API.Register(engine, nil)
	}
}
