// Package http provides the API server, router setup, and request middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityHTTP "github.com/viralspark/gateway/internal/identity/http"
	ledgerHTTP "github.com/viralspark/gateway/internal/ledger/http"
	registryHTTP "github.com/viralspark/gateway/internal/registry/http"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is assembled separately via
// SetupRouter so tests can mount a minimal route table.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouteDeps carries the handlers and middleware the router mounts.
//
// Optional middleware (CORS, login rate limit, metrics) may be nil, in which
// case it is simply not installed.
type RouteDeps struct {
	AuthHandler  *identityHTTP.AuthHandler
	UserHandler  *identityHTTP.UserHandler
	AdminHandler *registryHTTP.AdminHandler
	UsageHandler *ledgerHTTP.UsageHandler

	// AuthenticationMiddleware resolves the caller's identity from the bearer token.
	AuthenticationMiddleware gin.HandlerFunc
	// PathGateMiddleware resolves and enforces the capability governing /api/* paths.
	PathGateMiddleware gin.HandlerFunc
	// AdminGateMiddleware enforces the admin capability on /v1/admin/* routes.
	AdminGateMiddleware gin.HandlerFunc

	LoginRateLimitMiddleware gin.HandlerFunc
	CORSMiddleware           gin.HandlerFunc
	MetricsMiddleware        gin.HandlerFunc
}

// SetupRouter assembles the full route table.
//
// Route layout:
//   - GET  /health, /ready                          — unauthenticated probes
//   - POST /v1/auth/token                           — login, IP rate limited
//   - /api/*                                        — authenticated, path-gated
//   - /v1/admin/*                                   — authenticated, admin-gated
func (s *Server) SetupRouter(deps RouteDeps) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if deps.CORSMiddleware != nil {
		router.Use(deps.CORSMiddleware)
	}
	if deps.MetricsMiddleware != nil {
		router.Use(deps.MetricsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	auth := router.Group("/v1/auth")
	if deps.LoginRateLimitMiddleware != nil {
		auth.Use(deps.LoginRateLimitMiddleware)
	}
	auth.POST("/token", deps.AuthHandler.LoginHandler)

	// Every /api route passes through the gate; the business handlers behind
	// it are thin acceptors that run only after an Admit.
	api := router.Group("/api")
	api.Use(deps.AuthenticationMiddleware)
	api.Use(deps.PathGateMiddleware)
	registerGatedRoutes(api)

	admin := router.Group("/v1/admin")
	admin.Use(deps.AuthenticationMiddleware)
	admin.Use(deps.AdminGateMiddleware)
	admin.GET("/capabilities", deps.AdminHandler.ListCapabilitiesHandler)
	admin.PUT("/capabilities/:name/enabled", deps.AdminHandler.SetEnabledHandler)
	admin.PUT("/capabilities/:name/policy", deps.AdminHandler.UpdatePolicyHandler)
	admin.GET("/stats", deps.AdminHandler.StatsHandler)
	admin.GET("/usage", deps.UsageHandler.ListHandler)
	admin.PUT("/users/:id/active", deps.UserHandler.SetActiveHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can take traffic. The gate fails
// closed without its ledger, so database reachability is the readiness signal.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(pingCtx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server. Blocks until the listener closes.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		// Minimal router so probes answer even without full route wiring.
		router := gin.New()
		router.Use(gin.Recovery())
		router.GET("/health", s.healthHandler)
		router.GET("/ready", s.readinessHandler)
		s.router = router
	}

	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
