package usecase

import (
	"context"
	"time"

	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	"github.com/viralspark/gateway/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login attempts.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	email string,
	password string,
) (*LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, email, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "identity", "login", status)
	a.metrics.RecordDuration(ctx, "identity", "login", time.Since(start), status)

	return output, err
}

// Authenticate records metrics for token authentication.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	token string,
) (*identityDomain.Identity, error) {
	start := time.Now()
	identity, err := a.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "identity", "authenticate", status)
	a.metrics.RecordDuration(ctx, "identity", "authenticate", time.Since(start), status)

	return identity, err
}
