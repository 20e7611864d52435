// Package usecase defines business logic interfaces for the usage ledger.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// UsageRepository defines persistence operations for usage records.
// Implementations must support transaction-aware operations via context propagation.
type UsageRepository interface {
	// Create stores a new usage record.
	Create(ctx context.Context, record *ledgerDomain.UsageRecord) error

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

	// Aggregate returns the admitted-call count and last event time for a
	// capability at or after the given instant.
	Aggregate(
		ctx context.Context,
		capability string,
		since time.Time,
	) (*ledgerDomain.Aggregate, error)

	// CountSince counts all usage records at or after the given instant.
	CountSince(ctx context.Context, since time.Time) (int64, error)

	// List retrieves usage records matching the filter, newest first.
	List(ctx context.Context, filter ledgerDomain.ListFilter) ([]*ledgerDomain.UsageRecord, error)

	// DeleteOlderThan removes records created before the cutoff and returns
	// the number deleted. In dry-run mode it only counts the records the
	// cutoff would remove.
	DeleteOlderThan(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error)
}

// CapabilityWindows exposes the configured rate-limit windows. Retention never
// reaches into the widest live window: deleting admitted records that a
// limiter is still counting would silently refill quotas.
type CapabilityWindows interface {
	// List returns all registered capabilities.
	List() []*registryDomain.Capability
}

// UsageUseCase manages the usage ledger.
//
// Record is the only write on the admission path. Its error matters: the gate
// treats a failed admitted-call write as a denial, because an unrecorded
// admission would let later calls slip past the rate limit.
type UsageUseCase interface {
	// Record persists a usage record, assigning its ID and creation time when
	// unset.
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

	// Aggregate returns the admitted-call count and last event time for a
	// capability at or after the given instant.
	Aggregate(
		ctx context.Context,
		capability string,
		since time.Time,
	) (*ledgerDomain.Aggregate, error)

	// CountSince counts all usage records at or after the given instant.
	CountSince(ctx context.Context, since time.Time) (int64, error)

	// List retrieves usage records matching the filter, newest first.
	List(ctx context.Context, filter ledgerDomain.ListFilter) ([]*ledgerDomain.UsageRecord, error)

	// Prune removes records older than the retention period and returns the
	// number deleted, or the number that would be deleted in dry-run mode.
	// The effective cutoff never reaches into the widest configured
	// rate-limit window.
	Prune(ctx context.Context, retention time.Duration, dryRun bool) (int64, error)
}
