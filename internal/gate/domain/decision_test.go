package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/viralspark/gateway/internal/errors"
)

// TestDecision_Err tests the denial reason to sentinel error mapping.
func TestDecision_Err(t *testing.T) {
	tests := []struct {
		name     string
		decision *Decision
		wantErr  error
	}{
		{
			name:     "Admitted",
			decision: Admit("web_scraping"),
			wantErr:  nil,
		},
		{
			name:     "InactiveIdentity",
			decision: Deny("web_scraping", ReasonInactiveIdentity),
			wantErr:  apperrors.ErrUnauthorized,
		},
		{
			name:     "CapabilityDisabled",
			decision: Deny("web_scraping", ReasonCapabilityDisabled),
			wantErr:  apperrors.ErrForbidden,
		},
		{
			name:     "RoleForbidden",
			decision: Deny("web_scraping", ReasonRoleForbidden),
			wantErr:  apperrors.ErrForbidden,
		},
		{
			name:     "RateLimited",
			decision: DenyRateLimited("web_scraping", 5*time.Second),
			wantErr:  apperrors.ErrRateLimited,
		},
		{
			name:     "Unavailable",
			decision: Deny("web_scraping", ReasonUnavailable),
			wantErr:  apperrors.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decision.Err()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestDecision_RetryAfterSeconds tests the Retry-After header rounding.
func TestDecision_RetryAfterSeconds(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter time.Duration
		want       int
	}{
		{name: "Zero", retryAfter: 0, want: 0},
		{name: "SubSecondRoundsUp", retryAfter: 300 * time.Millisecond, want: 1},
		{name: "WholeSeconds", retryAfter: 5 * time.Second, want: 5},
		{name: "FractionRoundsUp", retryAfter: 5*time.Second + time.Millisecond, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := DenyRateLimited("web_scraping", tt.retryAfter)
			assert.Equal(t, tt.want, decision.RetryAfterSeconds())
		})
	}
}

// TestDenyRateLimited tests the retry hint on rate-limited denials.
func TestDenyRateLimited(t *testing.T) {
	decision := DenyRateLimited("social_media", 11*time.Second)
	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonRateLimited, decision.Reason)
	assert.Equal(t, 11*time.Second, decision.RetryAfter)
}
