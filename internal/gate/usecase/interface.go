// Package usecase implements the access gate: capability checks plus
// sliding-window rate limiting over the usage ledger.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	gateDomain "github.com/viralspark/gateway/internal/gate/domain"
	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// CapabilityResolver is the registry surface the gate reads. Both methods are
// snapshot lookups and never block on I/O.
type CapabilityResolver interface {
	// Get retrieves a capability by name.
	Get(name string) (*registryDomain.Capability, error)

	// FindByPath resolves the capability governing the given request path.
	FindByPath(path string) (*registryDomain.Capability, bool)
}

// UsageLedger is the ledger surface the gate writes and counts against.
type UsageLedger interface {
	// Record persists a usage record.
	Record(ctx context.Context, record *ledgerDomain.UsageRecord) error

	// SetElapsed stamps the handler latency, in milliseconds, onto an
	// existing record.
	SetElapsed(ctx context.Context, id uuid.UUID, elapsedMS int64) error

	// CountAdmittedSince counts admitted records for a subject and capability
	// at or after the given instant.
	CountAdmittedSince(
		ctx context.Context,
		subjectID string,
		capability string,
		since time.Time,
	) (int64, error)

	// OldestAdmittedSince returns the creation time of the oldest admitted
	// record for a subject and capability at or after the given instant, or
	// nil when none exists.
	OldestAdmittedSince(
		ctx context.Context,
		subjectID string,
		capability string,
		since time.Time,
	) (*time.Time, error)
}

// AccessGate decides whether a call proceeds.
//
// Authorize never returns an error: every failure mode folds into a denied
// Decision. When the gate cannot reach a verdict it denies with
// ReasonUnavailable rather than letting the call through unmetered.
type AccessGate interface {
	// Authorize runs the full admission sequence for a named capability:
	// identity active, capability enabled, role allowed, sliding-window slot
	// available. An admitted decision has already been recorded against the
	// caller's quota when Authorize returns.
	Authorize(
		ctx context.Context,
		identity *identityDomain.Identity,
		capabilityName string,
		endpoint string,
	) *gateDomain.Decision

	// RecordLatency stamps the handler duration onto an admitted decision's
	// ledger record after the handler has run. Latency is analytics only, so
	// failures are logged and dropped rather than surfaced.
	RecordLatency(ctx context.Context, decision *gateDomain.Decision, elapsed time.Duration)
}
