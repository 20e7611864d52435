package usecase

import (
	"context"
	"time"

	apperrors "github.com/viralspark/gateway/internal/errors"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// slidingWindowLimiter answers whether a subject has a free slot for a
// capability by counting admitted ledger records inside the trailing window.
//
// It holds no counters of its own. The ledger is the single source of truth,
// so limits survive restarts and stay consistent across every place that
// records usage.
type slidingWindowLimiter struct {
	ledger UsageLedger
	nowFn  func() time.Time
}

// reservation is the limiter's verdict for one prospective call.
type reservation struct {
	allowed    bool
	retryAfter time.Duration
}

// check counts admitted calls in the trailing window. When the window is full
// it also computes how long until the oldest admitted call ages out.
//
// The caller must hold the subject+capability stripe lock so the count cannot
// race a concurrent record of the same pair.
func (l *slidingWindowLimiter) check(
	ctx context.Context,
	subjectID string,
	capability *registryDomain.Capability,
) (*reservation, error) {
	now := l.nowFn().UTC()
	windowStart := now.Add(-capability.RateLimit.Window())

	count, err := l.ledger.CountAdmittedSince(ctx, subjectID, capability.Name, windowStart)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count window usage")
	}

	if count < int64(capability.RateLimit.Count) {
		return &reservation{allowed: true}, nil
	}

	oldest, err := l.ledger.OldestAdmittedSince(ctx, subjectID, capability.Name, windowStart)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to find oldest window usage")
	}

	retryAfter := capability.RateLimit.Window()
	if oldest != nil {
		retryAfter = oldest.Add(capability.RateLimit.Window()).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
	}

	return &reservation{allowed: false, retryAfter: retryAfter}, nil
}

func newSlidingWindowLimiter(ledger UsageLedger, nowFn func() time.Time) *slidingWindowLimiter {
	return &slidingWindowLimiter{ledger: ledger, nowFn: nowFn}
}
