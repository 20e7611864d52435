package http

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	gateDomain "github.com/viralspark/gateway/internal/gate/domain"
	gateUseCase "github.com/viralspark/gateway/internal/gate/usecase"
	"github.com/viralspark/gateway/internal/httputil"
)

// GateMiddleware guards a route group with a fixed capability.
//
// It must run after the authentication middleware, which stores the identity
// in the request context. A missing identity is treated as inactive and
// denied, never passed through.
//
// Denials map to:
//   - inactive identity → 401 Unauthorized
//   - capability disabled or role forbidden → 403 Forbidden
//   - rate limited → 429 Too Many Requests with a Retry-After header
//   - gate unavailable → 503 Service Unavailable
func GateMiddleware(
	gate gateUseCase.AccessGate,
	capabilityName string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := GetIdentity(c.Request.Context())

		decision := gate.Authorize(c.Request.Context(), identity, capabilityName, c.Request.URL.Path)
		if !decision.Admitted {
			denyRequest(c, decision, logger)
			return
		}

		start := time.Now()
		c.Next()
		gate.RecordLatency(c.Request.Context(), decision, time.Since(start))
	}
}

// PathGateMiddleware guards a route group by resolving the capability from the
// request path. Paths no capability claims pass through ungated; reserving a
// path is done by listing it in some capability's endpoint patterns.
func PathGateMiddleware(
	gate gateUseCase.AccessGate,
	resolver gateUseCase.CapabilityResolver,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		capability, found := resolver.FindByPath(c.Request.URL.Path)
		if !found {
			c.Next()
			return
		}

		identity, _ := GetIdentity(c.Request.Context())

		decision := gate.Authorize(c.Request.Context(), identity, capability.Name, c.Request.URL.Path)
		if !decision.Admitted {
			denyRequest(c, decision, logger)
			return
		}

		start := time.Now()
		c.Next()
		gate.RecordLatency(c.Request.Context(), decision, time.Since(start))
	}
}

// denyRequest writes the denial response and aborts the chain.
func denyRequest(c *gin.Context, decision *gateDomain.Decision, logger *slog.Logger) {
	if decision.Reason == gateDomain.ReasonRateLimited {
		c.Header("Retry-After", strconv.Itoa(decision.RetryAfterSeconds()))
	}

	httputil.HandleErrorGin(c, decision.Err(), logger)
	c.Abort()
}
