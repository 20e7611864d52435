package usecase

import (
	"context"
	"time"

	"github.com/viralspark/gateway/internal/metrics"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// capabilityUseCaseWithMetrics decorates CapabilityUseCase with metrics
// instrumentation. Snapshot reads are left unmeasured since they never leave
// process memory.
type capabilityUseCaseWithMetrics struct {
	next    CapabilityUseCase
	metrics metrics.BusinessMetrics
}

// NewCapabilityUseCaseWithMetrics wraps a CapabilityUseCase with metrics recording.
func NewCapabilityUseCaseWithMetrics(
	useCase CapabilityUseCase,
	m metrics.BusinessMetrics,
) CapabilityUseCase {
	return &capabilityUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Bootstrap records metrics for registry bootstrap.
func (c *capabilityUseCaseWithMetrics) Bootstrap(ctx context.Context) error {
	start := time.Now()
	err := c.next.Bootstrap(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "registry", "capability_bootstrap", status)
	c.metrics.RecordDuration(ctx, "registry", "capability_bootstrap", time.Since(start), status)

	return err
}

// Get passes through to the snapshot read.
func (c *capabilityUseCaseWithMetrics) Get(name string) (*registryDomain.Capability, error) {
	return c.next.Get(name)
}

// List passes through to the snapshot read.
func (c *capabilityUseCaseWithMetrics) List() []*registryDomain.Capability {
	return c.next.List()
}

// FindByPath passes through to the snapshot read.
func (c *capabilityUseCaseWithMetrics) FindByPath(path string) (*registryDomain.Capability, bool) {
	return c.next.FindByPath(path)
}

// SetEnabled records metrics for capability toggle operations.
func (c *capabilityUseCaseWithMetrics) SetEnabled(
	ctx context.Context,
	name string,
	enabled bool,
) (*registryDomain.Capability, error) {
	start := time.Now()
	capability, err := c.next.SetEnabled(ctx, name, enabled)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "registry", "capability_set_enabled", status)
	c.metrics.RecordDuration(ctx, "registry", "capability_set_enabled", time.Since(start), status)

	return capability, err
}

// UpdatePolicy records metrics for policy update operations.
func (c *capabilityUseCaseWithMetrics) UpdatePolicy(
	ctx context.Context,
	name string,
	policy registryDomain.RateLimitPolicy,
) (*registryDomain.Capability, error) {
	start := time.Now()
	capability, err := c.next.UpdatePolicy(ctx, name, policy)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "registry", "capability_update_policy", status)
	c.metrics.RecordDuration(ctx, "registry", "capability_update_policy", time.Since(start), status)

	return capability, err
}
