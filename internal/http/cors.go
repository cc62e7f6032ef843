package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const corsMaxAge = 12 * time.Hour

// dashboardCORS is the fixed part of the policy; origins come from CORS_ALLOW_ORIGINS.
var dashboardCORS = cors.Config{
	AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	AllowHeaders:     []string{"Authorization", "Content-Type"},
	ExposeHeaders:    []string{"X-Request-Id"},
	AllowCredentials: true,
	MaxAge:           corsMaxAge,
}

// createCORSMiddleware returns nil when CORS is off or no origin survives parsing.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("cors enabled without usable origins, skipping",
			slog.String("cors_allow_origins", allowOrigins))
		return nil
	}

	policy := dashboardCORS
	policy.AllowOrigins = origins
	logger.Info("cors enabled", slog.Any("origins", origins))

	return cors.New(policy)
}

// parseOrigins splits a comma-separated list, dropping blanks and trailing slashes.
func parseOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimRight(strings.TrimSpace(part), "/"); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
