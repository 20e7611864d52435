package usecase

import (
	"context"
	"time"

	apperrors "github.com/viralspark/gateway/internal/errors"
)

// adminUseCase implements AdminUseCase over the capability snapshot and the
// usage ledger.
type adminUseCase struct {
	capabilityUseCase CapabilityUseCase
	usageReader       UsageReader
	userCounter       UserCounter
	nowFn             func() time.Time
}

// ListCapabilities returns every capability with its admitted-call aggregate
// over the capability's own rate-limit window.
func (a *adminUseCase) ListCapabilities(ctx context.Context) ([]*CapabilityProjection, error) {
	capabilities := a.capabilityUseCase.List()
	now := a.nowFn()

	projections := make([]*CapabilityProjection, 0, len(capabilities))
	for _, capability := range capabilities {
		aggregate, err := a.usageReader.Aggregate(
			ctx,
			capability.Name,
			now.Add(-capability.RateLimit.Window()),
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to aggregate usage for "+capability.Name)
		}

		projections = append(projections, &CapabilityProjection{
			Capability: capability,
			Usage:      aggregate,
		})
	}

	return projections, nil
}

// Stats returns gateway-wide activity counters. "Today" is the current UTC
// calendar day.
func (a *adminUseCase) Stats(ctx context.Context) (*SystemStats, error) {
	total, active, err := a.userCounter.CountUsers(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count users")
	}

	now := a.nowFn().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	callsToday, err := a.usageReader.CountSince(ctx, startOfDay)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count usage records")
	}

	capabilities := a.capabilityUseCase.List()
	enabled := make(map[string]bool, len(capabilities))
	for _, capability := range capabilities {
		enabled[capability.Name] = capability.Enabled
	}

	return &SystemStats{
		TotalUsers:    total,
		ActiveUsers:   active,
		APICallsToday: callsToday,
		Capabilities:  enabled,
	}, nil
}

// NewAdminUseCase creates a new AdminUseCase with the provided dependencies.
func NewAdminUseCase(
	capabilityUseCase CapabilityUseCase,
	usageReader UsageReader,
	userCounter UserCounter,
) AdminUseCase {
	return &adminUseCase{
		capabilityUseCase: capabilityUseCase,
		usageReader:       usageReader,
		userCounter:       userCounter,
		nowFn:             time.Now,
	}
}
