// Package usecase defines business logic interfaces for the capability registry
// and the admin control surface.
package usecase

import (
	"context"
	"time"

	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// CapabilityRepository defines persistence operations for capabilities.
// Implementations must support transaction-aware operations via context propagation.
type CapabilityRepository interface {
	// Create stores a new capability in the repository.
	Create(ctx context.Context, capability *registryDomain.Capability) error

	// Get retrieves a capability by name. Returns ErrCapabilityNotFound if not found.
	Get(ctx context.Context, name string) (*registryDomain.Capability, error)

	// List retrieves all capabilities ordered by position ascending.
	List(ctx context.Context) ([]*registryDomain.Capability, error)

	// UpdateEnabled sets the enabled flag. Returns ErrCapabilityNotFound if not found.
	UpdateEnabled(ctx context.Context, name string, enabled bool) error

	// UpdatePolicy replaces the rate limit policy. Returns ErrCapabilityNotFound if not found.
	UpdatePolicy(ctx context.Context, name string, policy registryDomain.RateLimitPolicy) error

	// Count returns the number of stored capabilities.
	Count(ctx context.Context) (int64, error)
}

// CapabilityUseCase manages the capability registry.
//
// Reads (Get, List, FindByPath) are served from an immutable in-memory snapshot
// and never touch the backing store; mutations persist through the repository
// and atomically swap in a rebuilt snapshot. This keeps the admission path free
// of registry I/O while admin changes stay visible to subsequent reads.
type CapabilityUseCase interface {
	// Bootstrap loads the registry snapshot from the repository, seeding the
	// configured default capability set first when the store is empty.
	Bootstrap(ctx context.Context) error

	// Get retrieves a capability by name from the current snapshot.
	// Returns ErrCapabilityNotFound if the capability doesn't exist.
	Get(name string) (*registryDomain.Capability, error)

	// List returns all capabilities from the current snapshot in insertion order.
	List() []*registryDomain.Capability

	// FindByPath resolves the capability governing the given request path,
	// or reports false when no endpoint pattern matches.
	FindByPath(path string) (*registryDomain.Capability, bool)

	// SetEnabled toggles a capability. Idempotent: repeating the same value
	// leaves state identical. Returns the updated capability.
	SetEnabled(ctx context.Context, name string, enabled bool) (*registryDomain.Capability, error)

	// UpdatePolicy replaces a capability's rate limit policy.
	// Fails with ErrInvalidPolicy when count or window is non-positive,
	// leaving the stored policy untouched.
	UpdatePolicy(
		ctx context.Context,
		name string,
		policy registryDomain.RateLimitPolicy,
	) (*registryDomain.Capability, error)
}

// UsageReader provides ledger aggregates for admin projections.
type UsageReader interface {
	// Aggregate returns the admitted-call count and last event time for a
	// capability since the given instant.
	Aggregate(
		ctx context.Context,
		capability string,
		since time.Time,
	) (*ledgerDomain.Aggregate, error)

	// CountSince returns the number of usage records across all capabilities
	// since the given instant.
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// UserCounter provides identity counts for admin system stats.
type UserCounter interface {
	// CountUsers returns the total and active user counts.
	CountUsers(ctx context.Context) (total int64, active int64, err error)
}

// CapabilityProjection is a capability with its live aggregate usage attached,
// as served by the admin list endpoint.
type CapabilityProjection struct {
	Capability *registryDomain.Capability
	Usage      *ledgerDomain.Aggregate
}

// SystemStats is the admin dashboard projection of gateway activity.
type SystemStats struct {
	TotalUsers    int64
	ActiveUsers   int64
	APICallsToday int64
	Capabilities  map[string]bool
}

// AdminUseCase implements the admin control surface read projections.
//
// Role enforcement is deliberately not performed here: callers must gate access
// (the HTTP layer runs admin routes through the access gate) before invoking
// any admin operation.
type AdminUseCase interface {
	// ListCapabilities returns all capabilities with live usage aggregates
	// covering each capability's current rate-limit window.
	ListCapabilities(ctx context.Context) ([]*CapabilityProjection, error)

	// Stats returns system-wide activity counters for the admin dashboard.
	Stats(ctx context.Context) (*SystemStats, error)
}
