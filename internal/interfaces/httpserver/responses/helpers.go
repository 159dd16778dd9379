package responses

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/n8nvoice/voice-gateway/internal/infrastructure/store"
	"github.com/n8nvoice/voice-gateway/internal/utils/platformerrors"
)

// HandleError maps store and platform errors to HTTP responses.
// Unknown sessions always come out as 404, distinct from upstream
// failures which map through the error taxonomy.
func HandleError(c *gin.Context, err error, message string) {
	logger := log.With().
		Str("path", c.Request.URL.Path).
		Str("context", message).
		Logger()

	if errors.Is(err, store.ErrSessionNotFound) {
		platformerrors.WriteNotFound(c, "Session not found")
		return
	}

	platformerrors.WriteError(c, err, logger)
}

// HandleNewError writes a new typed error response.
// Use this for route-level errors like validation failures.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message string) {
	switch errorType {
	case platformerrors.ErrorTypeValidation:
		platformerrors.WriteValidationError(c, message)
	case platformerrors.ErrorTypeNotFound:
		platformerrors.WriteNotFound(c, message)
	case platformerrors.ErrorTypeUnauthorized:
		platformerrors.WriteUnauthorized(c, message)
	default:
		platformerrors.WriteInternalError(c, message)
	}
}
