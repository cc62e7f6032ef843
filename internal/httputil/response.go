// Package httputil writes JSON error responses for gin handlers.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	apperrors "github.com/radarone/vault/internal/errors"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorMapping binds a sentinel to its HTTP status. An empty message echoes the wrapped error,
// which is safe only for caller-facing failures such as invalid input.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// First match wins. ErrIntegrity and ErrMisconfigured are deliberately absent and fall through to
// the internal error response.
var errorMappings = []errorMapping{
	{target: apperrors.ErrNotFound, status: http.StatusNotFound, code: "not_found",
		message: "The requested resource was not found"},
	{target: apperrors.ErrConflict, status: http.StatusConflict, code: "conflict"},
	{target: apperrors.ErrInvalidInput, status: http.StatusBadRequest, code: "invalid_input"},
	{target: apperrors.ErrUnauthorized, status: http.StatusUnauthorized, code: "unauthorized",
		message: "Authentication is required"},
	{target: apperrors.ErrForbidden, status: http.StatusForbidden, code: "forbidden",
		message: "You don't have permission to access this resource"},
}

var internalError = errorMapping{
	status:  http.StatusInternalServerError,
	code:    "internal_error",
	message: "An internal error occurred",
}

func resolve(err error) (int, ErrorResponse) {
	mapping := internalError
	for _, m := range errorMappings {
		if apperrors.Is(err, m.target) {
			mapping = m
			break
		}
	}

	message := mapping.message
	if message == "" {
		message = err.Error()
	}
	return mapping.status, ErrorResponse{Error: mapping.code, Message: message}
}

// HandleErrorGin maps domain errors to HTTP status codes and writes the JSON response.
// Server-side failures log at error level with the full chain; the client only sees a generic
// message.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, response := resolve(err)

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", response.Error),
			slog.String("request_id", requestid.Get(c)),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, response)
}

// HandleBadRequestGin writes a 400 for a body or parameter that could not be decoded.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, err, logger, "bad request", "bad_request")
}

// HandleValidationErrorGin writes a 400 for a decoded request that failed validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, err, logger, "validation failed", "validation_error")
}

func writeClientError(c *gin.Context, err error, logger *slog.Logger, logMessage, code string) {
	if logger != nil {
		logger.Warn(logMessage, slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}
