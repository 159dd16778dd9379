package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n8nvoice/voice-gateway/internal/config"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/metrics"
	"github.com/n8nvoice/voice-gateway/internal/infrastructure/openai"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/handlers"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/requests"
	"github.com/n8nvoice/voice-gateway/internal/interfaces/httpserver/responses"
	"github.com/n8nvoice/voice-gateway/internal/utils/platformerrors"
)

// RegisterPublicRelayRoutes registers the routes that must stay
// reachable without authentication: the frontend config, the API health
// probe, and the per-session webhook receiver n8n pushes to.
func RegisterPublicRelayRoutes(router gin.IRoutes, handler *handlers.RelayHandler) {
	router.GET("/config", getConfig())
	router.GET("/health", healthCheck())
	router.POST("/webhook/:session_id", receiveWebhookReply(handler))
}

// RegisterRelayRoutes registers the session and relay routes.
func RegisterRelayRoutes(router gin.IRoutes, handler *handlers.RelayHandler) {
	router.POST("/realtime/session", createSession(handler))
	router.POST("/realtime/n8n-response", processAutomationResponse(handler))
	router.POST("/forward-to-n8n", forwardTranscription(handler))

	// Diagnostics extension
	router.GET("/realtime/sessions", listSessions(handler))
}

// createSession godoc
// @Summary      Create a realtime session
// @Description  Mints an OpenAI Realtime session, registers the webhook URL, and passes the upstream session JSON (including the ephemeral token) through verbatim.
// @Tags         Realtime
// @Accept       json
// @Produce      json
// @Param        request body requests.CreateSessionRequest true "Session request"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} platformerrors.HTTPErrorResponse
// @Failure      500 {object} platformerrors.HTTPErrorResponse
// @Router       /api/realtime/session [post]
func createSession(handler *handlers.RelayHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid JSON body")
			return
		}
		if req.WebhookURL == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "webhook_url is required")
			return
		}

		raw, err := handler.CreateSession(c.Request.Context(), req.WebhookURL, req.ModelType)
		if err != nil {
			responses.HandleError(c, err, "failed to create session")
			return
		}

		metrics.SessionsCreated.Inc()
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
	}
}

// processAutomationResponse godoc
// @Summary      Format an n8n response for the Realtime API
// @Description  Converts a text reply into a conversation.item.create event the frontend forwards to the Realtime API.
// @Tags         Realtime
// @Accept       json
// @Produce      json
// @Param        request body requests.AutomationResponse true "Automation response"
// @Success      200 {object} relay.RealtimeEvent
// @Failure      400 {object} platformerrors.HTTPErrorResponse
// @Router       /api/realtime/n8n-response [post]
func processAutomationResponse(handler *handlers.RelayHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.AutomationResponse
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid JSON body")
			return
		}
		if req.Text == nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "text is required")
			return
		}
		if req.SessionID == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Session ID is required")
			return
		}

		event := handler.FormatResponse(c.Request.Context(), *req.Text, req.SessionID)
		c.JSON(http.StatusOK, event)
	}
}

// receiveWebhookReply godoc
// @Summary      Receive an n8n reply for a session
// @Description  Webhook endpoint n8n pushes replies to. Returns the reply formatted as a realtime event.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        session_id path string true "Session ID"
// @Param        request body requests.WebhookReply true "Webhook reply"
// @Success      200 {object} relay.RealtimeEvent
// @Failure      400 {object} platformerrors.HTTPErrorResponse
// @Failure      404 {object} platformerrors.HTTPErrorResponse
// @Router       /api/webhook/{session_id} [post]
func receiveWebhookReply(handler *handlers.RelayHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")

		// Session resolution takes precedence over body validation:
		// an unknown session is a 404 even when the push is malformed.
		var req requests.WebhookReply
		bindErr := c.ShouldBindJSON(&req)

		event, err := handler.HandleWebhookReply(c.Request.Context(), sessionID, req.Text)
		if err != nil {
			responses.HandleError(c, err, "failed to handle webhook reply")
			return
		}
		if bindErr != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid JSON body")
			return
		}

		c.JSON(http.StatusOK, event)
	}
}

// forwardTranscription godoc
// @Summary      Forward a transcription to the session's n8n webhook
// @Description  Resolves the registered webhook URL and delivers the transcription. The reply is normalized to a text-bearing object; webhook failures surface inside the reply text, not as HTTP errors.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        request body requests.ForwardTranscriptionRequest true "Transcription"
// @Success      200 {object} relay.Reply
// @Failure      400 {object} platformerrors.HTTPErrorResponse
// @Failure      404 {object} platformerrors.HTTPErrorResponse
// @Router       /api/forward-to-n8n [post]
func forwardTranscription(handler *handlers.RelayHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.ForwardTranscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid JSON body")
			return
		}
		if req.Transcription == nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "transcription is required")
			return
		}
		if req.SessionID == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "session_id is required")
			return
		}

		reply, err := handler.ForwardTranscription(c.Request.Context(), req.SessionID, *req.Transcription)
		if err != nil {
			responses.HandleError(c, err, "failed to forward transcription")
			return
		}

		metrics.TranscriptionsForwarded.Inc()
		c.JSON(http.StatusOK, reply)
	}
}

// listSessions godoc
// @Summary      List registered sessions
// @Description  Diagnostics listing of sessions known to the registry. Webhook URLs are redacted to their host.
// @Tags         Realtime
// @Produce      json
// @Success      200 {object} responses.ListSessionsResponse
// @Failure      500 {object} platformerrors.HTTPErrorResponse
// @Router       /api/realtime/sessions [get]
func listSessions(handler *handlers.RelayHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := handler.ListSessions(c.Request.Context())
		if err != nil {
			responses.HandleError(c, err, "failed to list sessions")
			return
		}
		c.JSON(http.StatusOK, responses.NewListSessionsResponse(sessions))
	}
}

// getConfig godoc
// @Summary      Frontend configuration
// @Tags         Config
// @Produce      json
// @Success      200 {object} responses.ConfigResponse
// @Router       /api/config [get]
func getConfig() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, responses.ConfigResponse{
			RealtimeAPIEnabled: true,
			Version:            config.Version,
			AvailableModels:    openai.AvailableModelTypes(),
		})
	}
}

// healthCheck godoc
// @Summary      API health check
// @Tags         Config
// @Produce      json
// @Success      200 {object} responses.HealthResponse
// @Router       /api/health [get]
func healthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, responses.HealthResponse{Status: "ok"})
	}
}
