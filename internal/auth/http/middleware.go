package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/radarone/vault/internal/auth/service"
	apperrors "github.com/radarone/vault/internal/errors"
	"github.com/radarone/vault/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer JWT in the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive prefix)
// 2. Verifies the token with tokenService.ParseUserID()
// 3. Stores the user id in the request context for GetUserID()
//
// Missing, malformed, expired or forged tokens all yield 401 Unauthorized.
//
// Usage:
//
//	v1 := router.Group("/v1", AuthenticationMiddleware(tokenService, logger))
//	v1.GET("/sessions", func(c *gin.Context) {
//	    userID, _ := GetUserID(c.Request.Context())
//	})
func AuthenticationMiddleware(tokenService authService.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userID, err := tokenService.ParseUserID(token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))

		logger.Debug("authentication successful", slog.String("user_id", userID))

		c.Next()
	}
}

// RequireUserID returns the authenticated user id, writing a 401 response when it is absent.
// Handlers call it first and return when ok is false.
func RequireUserID(c *gin.Context, logger *slog.Logger) (userID string, ok bool) {
	userID, ok = GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		return "", false
	}
	return userID, true
}
