// Package usecase implements business logic orchestration for the usage ledger.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/viralspark/gateway/internal/errors"
	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
)

// usageUseCase implements UsageUseCase backed by a repository.
type usageUseCase struct {
	usageRepo UsageRepository
	windows   CapabilityWindows
	nowFn     func() time.Time
}

// Record persists a usage record. A zero ID or creation time is filled in
// before the write.
func (u *usageUseCase) Record(ctx context.Context, record *ledgerDomain.UsageRecord) error {
	if record.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return apperrors.Wrap(err, "failed to generate usage record ID")
		}
		record.ID = id
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = u.nowFn().UTC()
	}

	return u.usageRepo.Create(ctx, record)
}

// SetElapsed stamps the handler latency, in milliseconds, onto an existing
// record.
func (u *usageUseCase) SetElapsed(ctx context.Context, id uuid.UUID, elapsedMS int64) error {
	return u.usageRepo.SetElapsed(ctx, id, elapsedMS)
}

// CountAdmittedSince counts admitted records for a subject and capability at
// or after the given instant.
func (u *usageUseCase) CountAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (int64, error) {
	return u.usageRepo.CountAdmittedSince(ctx, subjectID, capability, since)
}

// OldestAdmittedSince returns the creation time of the oldest admitted record
// for a subject and capability at or after the given instant.
func (u *usageUseCase) OldestAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (*time.Time, error) {
	return u.usageRepo.OldestAdmittedSince(ctx, subjectID, capability, since)
}

// Aggregate returns the admitted-call count and last event time for a
// capability at or after the given instant.
func (u *usageUseCase) Aggregate(
	ctx context.Context,
	capability string,
	since time.Time,
) (*ledgerDomain.Aggregate, error) {
	return u.usageRepo.Aggregate(ctx, capability, since)
}

// CountSince counts all usage records at or after the given instant.
func (u *usageUseCase) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return u.usageRepo.CountSince(ctx, since)
}

// List retrieves usage records matching the filter, newest first.
func (u *usageUseCase) List(
	ctx context.Context,
	filter ledgerDomain.ListFilter,
) ([]*ledgerDomain.UsageRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return u.usageRepo.List(ctx, filter)
}

// Prune removes records older than the retention period. The cutoff is
// clamped so it never reaches into the widest configured rate-limit window:
// admitted records a limiter may still count stay put even when the requested
// retention is shorter.
func (u *usageUseCase) Prune(ctx context.Context, retention time.Duration, dryRun bool) (int64, error) {
	if retention <= 0 {
		return 0, apperrors.New("retention period must be positive")
	}

	now := u.nowFn().UTC()
	cutoff := now.Add(-retention)
	if floor := now.Add(-u.widestWindow()); cutoff.After(floor) {
		cutoff = floor
	}

	return u.usageRepo.DeleteOlderThan(ctx, cutoff, dryRun)
}

// widestWindow returns the largest rate-limit window across all registered
// capabilities, or zero when none are registered.
func (u *usageUseCase) widestWindow() time.Duration {
	if u.windows == nil {
		return 0
	}

	var widest time.Duration
	for _, capability := range u.windows.List() {
		if window := capability.RateLimit.Window(); window > widest {
			widest = window
		}
	}
	return widest
}

// NewUsageUseCase creates a new UsageUseCase with the provided dependencies.
func NewUsageUseCase(usageRepo UsageRepository, windows CapabilityWindows) UsageUseCase {
	return &usageUseCase{
		usageRepo: usageRepo,
		windows:   windows,
		nowFn:     time.Now,
	}
}
