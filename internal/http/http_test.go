package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authMocks "github.com/radarone/vault/internal/auth/http/mocks"
	"github.com/radarone/vault/internal/config"
	apperrors "github.com/radarone/vault/internal/errors"
	"github.com/radarone/vault/internal/metrics"
	nationalIDHTTP "github.com/radarone/vault/internal/nationalid/http"
	nationalIDMocks "github.com/radarone/vault/internal/nationalid/usecase/mocks"
	sessionDomain "github.com/radarone/vault/internal/session/domain"
	sessionHTTP "github.com/radarone/vault/internal/session/http"
	sessionMocks "github.com/radarone/vault/internal/session/usecase/mocks"
)

const testToken = "valid-token"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServer() *Server {
	return NewServer(nil, "localhost", 8080, discardLogger())
}

type routedServer struct {
	server     *Server
	tokens     *authMocks.MockTokenService
	nationalID *nationalIDMocks.MockNationalIDUseCase
	sessions   *sessionMocks.MockSessionUseCase
}

// createRoutedServer wires the full router against mocked use cases. testToken authenticates as
// "user-1"; any other token is rejected.
func createRoutedServer(t *testing.T, provider *metrics.Provider) *routedServer {
	t.Helper()

	logger := discardLogger()
	tokens := &authMocks.MockTokenService{}
	tokens.On("ParseUserID", testToken).Return("user-1", nil).Maybe()
	tokens.On("ParseUserID", mock.Anything).Return("", apperrors.ErrUnauthorized).Maybe()

	nationalIDUseCase := &nationalIDMocks.MockNationalIDUseCase{}
	sessionUseCase := &sessionMocks.MockSessionUseCase{}

	server := createTestServer()
	server.SetupRouter(
		&config.Config{MetricsNamespace: "radarone_test"},
		nationalIDHTTP.NewNationalIDHandler(nationalIDUseCase, logger),
		sessionHTTP.NewSessionHandler(sessionUseCase, 0, logger),
		tokens,
		provider,
	)

	t.Cleanup(func() {
		nationalIDUseCase.AssertExpectations(t)
		sessionUseCase.AssertExpectations(t)
	})

	return &routedServer{
		server:     server,
		tokens:     tokens,
		nationalID: nationalIDUseCase,
		sessions:   sessionUseCase,
	}
}

func (r *routedServer) do(method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.server.GetHandler().ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assertReadiness(t, w, "not_ready", "error")
	})

	t.Run("database reachable", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing()

		server := NewServer(db, "localhost", 8080, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assertReadiness(t, w, "ready", "ok")
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("database ping fails", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing().WillReturnError(errors.New("connection refused"))

		server := NewServer(db, "localhost", 8080, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assertReadiness(t, w, "not_ready", "error")
	})
}

func assertReadiness(t *testing.T, w *httptest.ResponseRecorder, status, database string) {
	t.Helper()

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, status, response["status"])

	components, ok := response["components"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, database, components["database"])
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})
	router.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r := createRoutedServer(t, nil)

	w := r.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = r.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	r := createRoutedServer(t, nil)

	w := r.do(http.MethodGet, "/health", "")

	requestID := w.Header().Get("X-Request-Id")
	require.NotEmpty(t, requestID)
	parsed, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRouter_V1RequiresAuthentication(t *testing.T) {
	r := createRoutedServer(t, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/national-id"},
		{http.MethodGet, "/v1/national-id"},
		{http.MethodPost, "/v1/national-id/check"},
		{http.MethodGet, "/v1/sites"},
		{http.MethodGet, "/v1/sessions"},
		{http.MethodGet, "/v1/sessions/OLX"},
		{http.MethodPost, "/v1/sessions/OLX"},
		{http.MethodDelete, "/v1/sessions/OLX"},
		{http.MethodGet, "/v1/sessions/OLX/validate"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := r.do(route.method, route.path, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = r.do(route.method, route.path, "forged")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_AuthenticatedRoutes(t *testing.T) {
	t.Run("sites", func(t *testing.T) {
		r := createRoutedServer(t, nil)

		w := r.do(http.MethodGet, "/v1/sites", testToken)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "MERCADO_LIVRE")
	})

	t.Run("list sessions", func(t *testing.T) {
		r := createRoutedServer(t, nil)
		r.sessions.On("GetAll", mock.Anything, "user-1").Return([]*sessionDomain.StatusView{}, nil).Once()

		w := r.do(http.MethodGet, "/v1/sessions", testToken)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("validate session", func(t *testing.T) {
		r := createRoutedServer(t, nil)
		r.sessions.On("Validate", mock.Anything, "user-1", "OLX").
			Return(&sessionDomain.ValidationResult{Status: sessionDomain.StatusActive}, nil).
			Once()

		w := r.do(http.MethodGet, "/v1/sessions/olx/validate", testToken)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete session", func(t *testing.T) {
		r := createRoutedServer(t, nil)
		r.sessions.On("Delete", mock.Anything, "user-1", "WEBMOTORS").Return(true, nil).Once()

		w := r.do(http.MethodDelete, "/v1/sessions/WEBMOTORS", testToken)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted":true}`, w.Body.String())
	})
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	r := createRoutedServer(t, nil)

	w := r.do(http.MethodGet, "/nonexistent", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_NoMetricsEndpoint(t *testing.T) {
	provider, err := metrics.NewProvider("radarone_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	r := createRoutedServer(t, provider)

	w := r.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = r.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := createTestServer()

	err := server.Start(context.Background())

	assert.Error(t, err)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, discardLogger())
	server.SetupRouter(
		&config.Config{},
		nationalIDHTTP.NewNationalIDHandler(&nationalIDMocks.MockNationalIDUseCase{}, discardLogger()),
		sessionHTTP.NewSessionHandler(&sessionMocks.MockSessionUseCase{}, 0, discardLogger()),
		&authMocks.MockTokenService{},
		nil,
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("radarone_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
