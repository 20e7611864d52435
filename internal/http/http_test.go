// Package http provides the API server, router setup, and request middleware.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	gateDomain "github.com/viralspark/gateway/internal/gate/domain"
	gateHTTP "github.com/viralspark/gateway/internal/gate/http"
	gateMocks "github.com/viralspark/gateway/internal/gate/http/mocks"
	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	identityHTTP "github.com/viralspark/gateway/internal/identity/http"
	identityMocks "github.com/viralspark/gateway/internal/identity/usecase/mocks"
	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
	ledgerHTTP "github.com/viralspark/gateway/internal/ledger/http"
	ledgerMocks "github.com/viralspark/gateway/internal/ledger/usecase/mocks"
	"github.com/viralspark/gateway/internal/metrics"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
	registryHTTP "github.com/viralspark/gateway/internal/registry/http"
	registryMocks "github.com/viralspark/gateway/internal/registry/http/mocks"
	registryUseCase "github.com/viralspark/gateway/internal/registry/usecase"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestServer creates a test server with a discarding logger.
func createTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(nil, "localhost", 0, logger)
}

// TestHealthHandler tests the health check endpoint handler.
func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

// TestReadinessHandler_NotReady_NilDB tests the readiness endpoint when DB is nil.
func TestReadinessHandler_NotReady_NilDB(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", components["database"])
}

// TestCustomLoggerMiddleware tests the custom logging middleware.
func TestCustomLoggerMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "test", response["message"])
}

// TestRecoveryMiddleware tests Gin's built-in recovery middleware.
func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	// Should not panic - Recovery middleware catches it
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// routerFixture holds the mocks behind a fully assembled router.
type routerFixture struct {
	server   *Server
	auth     *identityMocks.MockAuthUseCase
	users    *identityMocks.MockUserUseCase
	gate     *gateMocks.MockAccessGate
	resolver *gateMocks.MockCapabilityResolver
	caps     *registryMocks.MockCapabilityUseCase
	admin    *registryMocks.MockAdminUseCase
	usage    *ledgerMocks.MockUsageUseCase
}

// createFullRouter assembles the complete route table backed by mocks.
func createFullRouter() *routerFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fixture := &routerFixture{
		server:   createTestServer(),
		auth:     new(identityMocks.MockAuthUseCase),
		users:    new(identityMocks.MockUserUseCase),
		gate:     new(gateMocks.MockAccessGate),
		resolver: new(gateMocks.MockCapabilityResolver),
		caps:     new(registryMocks.MockCapabilityUseCase),
		admin:    new(registryMocks.MockAdminUseCase),
		usage:    new(ledgerMocks.MockUsageUseCase),
	}

	fixture.server.SetupRouter(RouteDeps{
		AuthHandler:              identityHTTP.NewAuthHandler(fixture.auth, logger),
		UserHandler:              identityHTTP.NewUserHandler(fixture.users, logger),
		AdminHandler:             registryHTTP.NewAdminHandler(fixture.caps, fixture.admin, logger),
		UsageHandler:             ledgerHTTP.NewUsageHandler(fixture.usage, logger),
		AuthenticationMiddleware: identityHTTP.AuthenticationMiddleware(fixture.auth, logger),
		PathGateMiddleware:       gateHTTP.PathGateMiddleware(fixture.gate, fixture.resolver, logger),
		AdminGateMiddleware:      gateHTTP.GateMiddleware(fixture.gate, "admin_api", logger),
	})

	return fixture
}

// TestRouter_GatedRoute tests the full middleware chain on a gated endpoint.
func TestRouter_GatedRoute(t *testing.T) {
	t.Run("admitted call reaches the handler", func(t *testing.T) {
		fixture := createFullRouter()

		identity := &identityDomain.Identity{
			SubjectID: "subject-1",
			Role:      registryDomain.RoleUser,
			Active:    true,
		}
		fixture.auth.On("Authenticate", mock.Anything, "valid-token").Return(identity, nil)
		fixture.resolver.On("FindByPath", "/api/scrape").
			Return(&registryDomain.Capability{Name: "web_scraping"}, true)
		fixture.gate.On("Authorize", mock.Anything, identity, "web_scraping", "/api/scrape").
			Return(gateDomain.Admit("web_scraping"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/scrape", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		fixture.server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "accepted")
	})

	t.Run("missing token returns 401 before the gate", func(t *testing.T) {
		fixture := createFullRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/scrape", nil)
		fixture.server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		fixture.gate.AssertNotCalled(t, "Authorize")
	})

	t.Run("rate limited call returns 429 with Retry-After", func(t *testing.T) {
		fixture := createFullRouter()

		identity := &identityDomain.Identity{
			SubjectID: "subject-1",
			Role:      registryDomain.RoleUser,
			Active:    true,
		}
		fixture.auth.On("Authenticate", mock.Anything, "valid-token").Return(identity, nil)
		fixture.resolver.On("FindByPath", "/api/scrape").
			Return(&registryDomain.Capability{Name: "web_scraping"}, true)
		fixture.gate.On("Authorize", mock.Anything, identity, "web_scraping", "/api/scrape").
			Return(gateDomain.DenyRateLimited("web_scraping", 30*time.Second))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/scrape", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		fixture.server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "30", w.Header().Get("Retry-After"))
	})
}

// TestRouter_AdminRoute tests the admin group behind the fixed admin capability.
func TestRouter_AdminRoute(t *testing.T) {
	t.Run("admin stats behind the gate", func(t *testing.T) {
		fixture := createFullRouter()

		identity := &identityDomain.Identity{
			SubjectID: "admin-1",
			Role:      registryDomain.RoleAdmin,
			Active:    true,
		}
		fixture.auth.On("Authenticate", mock.Anything, "admin-token").Return(identity, nil)
		fixture.gate.On("Authorize", mock.Anything, identity, "admin_api", "/v1/admin/stats").
			Return(gateDomain.Admit("admin_api"))
		fixture.admin.On("Stats", mock.Anything).
			Return(&registryUseCase.SystemStats{TotalUsers: 3, ActiveUsers: 2}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		fixture.server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_users":3`)
	})

	t.Run("non-admin role denied with 403", func(t *testing.T) {
		fixture := createFullRouter()

		identity := &identityDomain.Identity{
			SubjectID: "subject-1",
			Role:      registryDomain.RoleUser,
			Active:    true,
		}
		fixture.auth.On("Authenticate", mock.Anything, "user-token").Return(identity, nil)
		fixture.gate.On("Authorize", mock.Anything, identity, "admin_api", "/v1/admin/usage").
			Return(gateDomain.Deny("admin_api", gateDomain.ReasonRoleForbidden))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/usage", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		fixture.server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		fixture.usage.AssertNotCalled(t, "List")
	})

	t.Run("admin usage listing reaches the ledger", func(t *testing.T) {
		fixture := createFullRouter()

		identity := &identityDomain.Identity{
			SubjectID: "admin-1",
			Role:      registryDomain.RoleAdmin,
			Active:    true,
		}
		fixture.auth.On("Authenticate", mock.Anything, "admin-token").Return(identity, nil)
		fixture.gate.On("Authorize", mock.Anything, identity, "admin_api", "/v1/admin/usage").
			Return(gateDomain.Admit("admin_api"))
		fixture.usage.On("List", mock.Anything, ledgerDomain.ListFilter{Offset: 0, Limit: 50}).
			Return([]*ledgerDomain.UsageRecord{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/usage", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		fixture.server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// TestRouter_LoginRoute tests that login is reachable without authentication.
func TestRouter_LoginRoute(t *testing.T) {
	fixture := createFullRouter()

	fixture.auth.On("Login", mock.Anything, "alice@example.com", "secret-password").
		Return(nil, identityDomain.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/token",
		strings.NewReader(`{"email":"alice@example.com","password":"secret-password"}`))
	req.Header.Set("Content-Type", "application/json")
	fixture.server.GetHandler().ServeHTTP(w, req)

	// Reached the handler without a bearer token; credentials were just wrong.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	fixture.auth.AssertExpectations(t)
}

// TestRouter_NotFoundEndpoint tests 404 handling.
func TestRouter_NotFoundEndpoint(t *testing.T) {
	fixture := createFullRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	fixture.server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestServer_ShutdownGracefully tests graceful server shutdown.
func TestServer_ShutdownGracefully(t *testing.T) {
	server := createTestServer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	// Shutdown server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	assert.NoError(t, err)

	// Verify no startup errors
	select {
	case err := <-errChan:
		t.Fatalf("server startup failed: %v", err)
	default:
		// No error, good
	}
}

// TestRequestIDMiddleware_HeaderPresent verifies X-Request-Id header is present in response.
func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID, "X-Request-Id header should be present")

	parsedUUID, err := uuid.Parse(requestID)
	require.NoError(t, err, "X-Request-Id should be a valid UUID")
	assert.NotEqual(t, uuid.Nil, parsedUUID, "X-Request-Id should not be nil UUID")
}

// TestMetricsServer_Endpoints tests the metrics server endpoints.
func TestMetricsServer_Endpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

// TestServer_NoMetricsEndpoint tests that the main server does NOT expose /metrics.
func TestServer_NoMetricsEndpoint(t *testing.T) {
	fixture := createFullRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	fixture.server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
