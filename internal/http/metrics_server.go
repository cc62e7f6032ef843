package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/radarone/vault/internal/metrics"
)

// MetricsServer exposes the Prometheus scrape endpoint on a dedicated listener.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer creates a MetricsServer. With a nil provider /metrics answers 404.
func NewMetricsServer(host string, port int, logger *slog.Logger, provider *metrics.Provider) *MetricsServer {
	return &MetricsServer{
		server: newHTTPServer(host, port, metricsRouter(logger, provider)),
		logger: logger,
	}
}

func metricsRouter(logger *slog.Logger, provider *metrics.Provider) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), CustomLoggerMiddleware(logger))
	if provider == nil {
		return router
	}
	router.GET("/metrics", gin.WrapH(provider.Handler()))
	return router
}

// GetHandler returns the scrape router.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start blocks serving scrapes until Shutdown.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.logger.Info("metrics listener starting", slog.String("addr", s.server.Addr))

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("metrics listener on %s: %w", s.server.Addr, err)
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("metrics listener stopping")
	return s.server.Shutdown(ctx)
}
