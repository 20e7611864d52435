// Package domain defines the core entities of the usage ledger.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how a recorded call ended.
type Outcome string

// Call outcomes.
const (
	OutcomeAdmitted Outcome = "admitted"
	OutcomeDenied   Outcome = "denied"
	OutcomeError    Outcome = "error"
)

// UsageRecord is one ledger entry for a gated call.
//
// Admitted records are the unit the rate limiter counts; denied and error
// records exist for analytics only and never count against a limit.
type UsageRecord struct {
	ID           uuid.UUID `json:"id"`
	SubjectID    string    `json:"subject_id"`
	Capability   string    `json:"capability"`
	Endpoint     string    `json:"endpoint"`
	Outcome      Outcome   `json:"outcome"`
	ElapsedMS    int64     `json:"elapsed_ms"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Aggregate summarizes admitted calls for a capability over a time range.
type Aggregate struct {
	Count       int64      `json:"count"`
	LastEventAt *time.Time `json:"last_event_at,omitempty"`
}

// ListFilter narrows a ledger listing.
type ListFilter struct {
	SubjectID  string
	Capability string
	Since      time.Time
	Offset     int
	Limit      int
}
