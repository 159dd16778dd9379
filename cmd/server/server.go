// @title           Voice Gateway API
// @version         2.0.0
// @description     HTTP gateway between the OpenAI Realtime API and n8n.
// @description     Brokers ephemeral realtime session tokens and relays transcriptions to per-session n8n webhooks.

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/n8nvoice/voice-gateway/internal/config"
	"github.com/n8nvoice/voice-gateway/internal/domain/relay"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/auth"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/logger"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/n8n"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/observability"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/openai"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/store"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver"
)

// Application holds the main application components.
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

// NewApplication creates a new application instance.
func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

// Start runs the application.
func (a *Application) Start(ctx context.Context) error {
	// Run HTTP server (blocks until context cancelled)
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.New(cfg)

	if cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, session creation will fail until it is configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup observability
	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	// Initialize auth validator
	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth validator")
	}

	// Initialize outbound clients
	openaiClient := openai.NewClient(cfg, log)
	n8nClient := n8n.NewClient(cfg, log)

	// Initialize session registry (mutex-based, no goroutine)
	sessionStore := store.NewMemoryStore(log)

	// Initialize relay service
	relayService := relay.NewService(sessionStore, openaiClient, n8nClient, config.Version, log)

	// Initialize HTTP server
	httpServer := httpserver.New(cfg, log, relayService, authValidator)

	// Create and start application
	app := NewApplication(httpServer, log)

	log.Info().
		Str("service", cfg.ServiceName).
		Int("port", cfg.HTTPPort).
		Str("environment", cfg.Environment).
		Msg("starting application")

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
