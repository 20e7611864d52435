// Package domain defines the access gate's decision model.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/viralspark/gateway/internal/errors"
)

// Reason classifies why a gate decision came out the way it did.
type Reason string

// Decision reasons.
const (
	ReasonAdmitted           Reason = "admitted"
	ReasonInactiveIdentity   Reason = "inactive_identity"
	ReasonCapabilityDisabled Reason = "capability_disabled"
	ReasonRoleForbidden      Reason = "role_forbidden"
	ReasonRateLimited        Reason = "rate_limited"
	ReasonUnavailable        Reason = "unavailable"
)

// Gate errors, one per denial reason.
var (
	// ErrInactiveIdentity indicates a deactivated account attempted a gated call.
	ErrInactiveIdentity = errors.Wrap(errors.ErrUnauthorized, "identity is inactive")

	// ErrCapabilityDisabled indicates the capability is switched off for everyone.
	ErrCapabilityDisabled = errors.Wrap(errors.ErrForbidden, "capability is disabled")

	// ErrRoleForbidden indicates the caller's role is not in the capability's allow list.
	ErrRoleForbidden = errors.Wrap(errors.ErrForbidden, "role not allowed for capability")

	// ErrRateLimited indicates the sliding-window limit is exhausted.
	ErrRateLimited = errors.Wrap(errors.ErrRateLimited, "rate limit exceeded")

	// ErrGateUnavailable indicates the gate could not reach a decision and denied.
	ErrGateUnavailable = errors.Wrap(errors.ErrUnavailable, "gate unavailable")
)

// Decision is the outcome of one admission check.
//
// RetryAfter is only set for rate-limited denials: it is the time until the
// oldest admitted call in the current window ages out, after which one slot
// frees up.
//
// RecordID identifies the ledger record an admitted decision wrote, so the
// handler latency can be stamped onto it after the call completes.
type Decision struct {
	Admitted   bool          `json:"admitted"`
	Reason     Reason        `json:"reason"`
	Capability string        `json:"capability"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
	RecordID   uuid.UUID     `json:"-"`
}

// Admit builds an admitted decision for the capability.
func Admit(capability string) *Decision {
	return &Decision{
		Admitted:   true,
		Reason:     ReasonAdmitted,
		Capability: capability,
	}
}

// Deny builds a denied decision for the capability.
func Deny(capability string, reason Reason) *Decision {
	return &Decision{
		Admitted:   false,
		Reason:     reason,
		Capability: capability,
	}
}

// DenyRateLimited builds a rate-limited denial carrying the retry hint.
func DenyRateLimited(capability string, retryAfter time.Duration) *Decision {
	return &Decision{
		Admitted:   false,
		Reason:     ReasonRateLimited,
		Capability: capability,
		RetryAfter: retryAfter,
	}
}

// RetryAfterSeconds returns the retry hint rounded up to whole seconds, the
// granularity of the Retry-After response header. A sub-second remainder still
// reports 1 so clients never retry early.
func (d *Decision) RetryAfterSeconds() int {
	if d.RetryAfter <= 0 {
		return 0
	}
	seconds := int(d.RetryAfter / time.Second)
	if d.RetryAfter%time.Second > 0 {
		seconds++
	}
	return seconds
}

// Err maps a denial to its sentinel error. Admitted decisions return nil.
func (d *Decision) Err() error {
	if d.Admitted {
		return nil
	}

	switch d.Reason {
	case ReasonInactiveIdentity:
		return ErrInactiveIdentity
	case ReasonCapabilityDisabled:
		return ErrCapabilityDisabled
	case ReasonRoleForbidden:
		return ErrRoleForbidden
	case ReasonRateLimited:
		return ErrRateLimited
	default:
		return ErrGateUnavailable
	}
}
