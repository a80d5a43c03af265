// Package httperr maps service errors onto HTTP responses so handlers do
// not repeat the taxonomy per route.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hustlx/backend/internal/service"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
)

// Status returns the HTTP status for a service error.
func Status(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Respond writes the JSON error body. Unexpected errors are logged and
// replaced by a generic message so internals never reach the client.
func Respond(c *gin.Context, err error) {
	status := Status(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.Error("Unhandled error in request",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		message = "internal server error"
	}

	c.JSON(status, gin.H{"error": message})
}
