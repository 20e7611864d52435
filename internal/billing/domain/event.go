// Package domain defines billing event models.
//
// Billing events arrive on a message subscription and carry subscription-state
// changes. The consumer translates them into capability toggles through the
// admin control surface contracts; billing never writes to the registry store
// directly.
package domain

import (
	"time"

	"github.com/viralspark/gateway/internal/errors"
)

// SubscriptionStatus is the billing provider's view of a subscription.
type SubscriptionStatus string

// Subscription statuses carried by billing events.
const (
	StatusActive   SubscriptionStatus = "active"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusCanceled SubscriptionStatus = "canceled"
)

// Billing errors.
var (
	// ErrInvalidEvent indicates a billing event missing its status or capability list.
	ErrInvalidEvent = errors.Wrap(errors.ErrInvalidInput, "invalid billing event")
)

// SubscriptionEvent is a subscription-state change published by the billing
// provider integration.
type SubscriptionEvent struct {
	EventID      string             `json:"event_id"`
	Status       SubscriptionStatus `json:"status"`
	Capabilities []string           `json:"capabilities"`
	OccurredAt   time.Time          `json:"occurred_at"`
}

// Validate checks the event invariants.
func (e *SubscriptionEvent) Validate() error {
	switch e.Status {
	case StatusActive, StatusPastDue, StatusCanceled:
	default:
		return ErrInvalidEvent
	}
	if len(e.Capabilities) == 0 {
		return ErrInvalidEvent
	}
	return nil
}

// Enables reports whether this event's status turns the listed capabilities on.
// An active subscription enables; past-due and canceled subscriptions disable.
func (e *SubscriptionEvent) Enables() bool {
	return e.Status == StatusActive
}
