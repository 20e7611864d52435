// Package dto provides data transfer objects for the admin HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// SetCapabilityEnabledRequest contains the parameters for toggling a capability.
type SetCapabilityEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// Validate checks if the set-enabled request is valid.
func (r *SetCapabilityEnabledRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Enabled,
			validation.NotNil.Error("enabled is required"),
		),
	)
}

// UpdateCapabilityPolicyRequest contains the replacement rate limit for a capability.
type UpdateCapabilityPolicyRequest struct {
	Count         int `json:"count"`
	WindowSeconds int `json:"window_seconds"`
}

// Validate checks if the policy request is valid.
func (r *UpdateCapabilityPolicyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Count,
			validation.Required.Error("count is required"),
			validation.Min(1).Error("count must be positive"),
		),
		validation.Field(&r.WindowSeconds,
			validation.Required.Error("window_seconds is required"),
			validation.Min(1).Error("window_seconds must be positive"),
		),
	)
}

// ToPolicy converts the request to a domain rate limit policy.
func (r *UpdateCapabilityPolicyRequest) ToPolicy() registryDomain.RateLimitPolicy {
	return registryDomain.RateLimitPolicy{
		Count:         r.Count,
		WindowSeconds: r.WindowSeconds,
	}
}
