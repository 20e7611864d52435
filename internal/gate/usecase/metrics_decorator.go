package usecase

import (
	"context"
	"time"

	gateDomain "github.com/viralspark/gateway/internal/gate/domain"
	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	"github.com/viralspark/gateway/internal/metrics"
)

// accessGateWithMetrics decorates AccessGate with admission metrics.
type accessGateWithMetrics struct {
	next    AccessGate
	metrics metrics.BusinessMetrics
}

// NewAccessGateWithMetrics wraps an AccessGate with metrics recording.
func NewAccessGateWithMetrics(gate AccessGate, m metrics.BusinessMetrics) AccessGate {
	return &accessGateWithMetrics{
		next:    gate,
		metrics: m,
	}
}

// Authorize records an admission metric labeled by capability and outcome.
func (a *accessGateWithMetrics) Authorize(
	ctx context.Context,
	identity *identityDomain.Identity,
	capabilityName string,
	endpoint string,
) *gateDomain.Decision {
	decision := a.next.Authorize(ctx, identity, capabilityName, endpoint)
	a.metrics.RecordAdmission(ctx, decision.Capability, string(decision.Reason))
	return decision
}

// RecordLatency passes through to the underlying gate.
func (a *accessGateWithMetrics) RecordLatency(
	ctx context.Context,
	decision *gateDomain.Decision,
	elapsed time.Duration,
) {
	a.next.RecordLatency(ctx, decision, elapsed)
}
