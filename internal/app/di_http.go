package app

import (
	"fmt"

	gateHTTP "github.com/viralspark/gateway/internal/gate/http"
	"github.com/viralspark/gateway/internal/http"
	identityHTTP "github.com/viralspark/gateway/internal/identity/http"
	ledgerHTTP "github.com/viralspark/gateway/internal/ledger/http"
	"github.com/viralspark/gateway/internal/metrics"
	registryHTTP "github.com/viralspark/gateway/internal/registry/http"
)

// adminCapability is the capability guarding the admin control surface routes.
const adminCapability = "admin_api"

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	authUseCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for http server: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	capabilityUseCase, err := c.CapabilityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability use case for http server: %w", err)
	}

	adminUseCase, err := c.AdminUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin use case for http server: %w", err)
	}

	usageUseCase, err := c.UsageUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage use case for http server: %w", err)
	}

	accessGate, err := c.AccessGate()
	if err != nil {
		return nil, fmt.Errorf("failed to get access gate for http server: %w", err)
	}

	deps := http.RouteDeps{
		AuthHandler:  identityHTTP.NewAuthHandler(authUseCase, logger),
		UserHandler:  identityHTTP.NewUserHandler(userUseCase, logger),
		AdminHandler: registryHTTP.NewAdminHandler(capabilityUseCase, adminUseCase, logger),
		UsageHandler: ledgerHTTP.NewUsageHandler(usageUseCase, logger),

		AuthenticationMiddleware: identityHTTP.AuthenticationMiddleware(authUseCase, logger),
		PathGateMiddleware:       gateHTTP.PathGateMiddleware(accessGate, capabilityUseCase, logger),
		AdminGateMiddleware:      gateHTTP.GateMiddleware(accessGate, adminCapability, logger),

		CORSMiddleware: http.NewCORSMiddleware(c.config.CORSEnabled, c.config.CORSAllowOrigins, logger),
	}

	if c.config.RateLimitLoginEnabled {
		deps.LoginRateLimitMiddleware = identityHTTP.LoginRateLimitMiddleware(
			c.config.RateLimitLoginRequestsPerSec,
			c.config.RateLimitLoginBurst,
			logger,
		)
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		deps.MetricsMiddleware = metrics.HTTPMetricsMiddleware(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(deps)

	return server, nil
}
