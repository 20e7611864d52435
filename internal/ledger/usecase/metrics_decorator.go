package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
	"github.com/viralspark/gateway/internal/metrics"
)

// usageUseCaseWithMetrics decorates UsageUseCase with metrics instrumentation.
// Only the write paths are measured; the counting reads run inside the gate's
// decision path, which carries its own admission metrics.
type usageUseCaseWithMetrics struct {
	next    UsageUseCase
	metrics metrics.BusinessMetrics
}

// NewUsageUseCaseWithMetrics wraps a UsageUseCase with metrics recording.
func NewUsageUseCaseWithMetrics(useCase UsageUseCase, m metrics.BusinessMetrics) UsageUseCase {
	return &usageUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Record records metrics for ledger writes.
func (u *usageUseCaseWithMetrics) Record(
	ctx context.Context,
	record *ledgerDomain.UsageRecord,
) error {
	start := time.Now()
	err := u.next.Record(ctx, record)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "ledger", "usage_record", status)
	u.metrics.RecordDuration(ctx, "ledger", "usage_record", time.Since(start), status)

	return err
}

// CountAdmittedSince passes through to the underlying use case.
func (u *usageUseCaseWithMetrics) CountAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (int64, error) {
	return u.next.CountAdmittedSince(ctx, subjectID, capability, since)
}

// OldestAdmittedSince passes through to the underlying use case.
func (u *usageUseCaseWithMetrics) OldestAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (*time.Time, error) {
	return u.next.OldestAdmittedSince(ctx, subjectID, capability, since)
}

// Aggregate passes through to the underlying use case.
func (u *usageUseCaseWithMetrics) Aggregate(
	ctx context.Context,
	capability string,
	since time.Time,
) (*ledgerDomain.Aggregate, error) {
	return u.next.Aggregate(ctx, capability, since)
}

// CountSince passes through to the underlying use case.
func (u *usageUseCaseWithMetrics) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return u.next.CountSince(ctx, since)
}

// List passes through to the underlying use case.
func (u *usageUseCaseWithMetrics) List(
	ctx context.Context,
	filter ledgerDomain.ListFilter,
) ([]*ledgerDomain.UsageRecord, error) {
	return u.next.List(ctx, filter)
}

// SetElapsed passes through to the underlying use case.
func (u *usageUseCaseWithMetrics) SetElapsed(
	ctx context.Context,
	id uuid.UUID,
	elapsedMS int64,
) error {
	return u.next.SetElapsed(ctx, id, elapsedMS)
}

// Prune records metrics for retention cleanup runs.
func (u *usageUseCaseWithMetrics) Prune(
	ctx context.Context,
	retention time.Duration,
	dryRun bool,
) (int64, error) {
	start := time.Now()
	deleted, err := u.next.Prune(ctx, retention, dryRun)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "ledger", "usage_prune", status)
	u.metrics.RecordDuration(ctx, "ledger", "usage_prune", time.Since(start), status)

	return deleted, err
}
