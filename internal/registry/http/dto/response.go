package dto

import (
	"time"

	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
	registryUseCase "github.com/viralspark/gateway/internal/registry/usecase"
)

// RateLimitPolicyResponse is the API representation of a rate limit policy.
type RateLimitPolicyResponse struct {
	Count         int `json:"count"`
	WindowSeconds int `json:"window_seconds"`
}

// CapabilityResponse is the API representation of a capability.
type CapabilityResponse struct {
	Name         string                  `json:"name"`
	Enabled      bool                    `json:"enabled"`
	AllowedRoles []string                `json:"allowed_roles"`
	RateLimit    RateLimitPolicyResponse `json:"rate_limit"`
	Endpoints    []string                `json:"endpoints"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// UsageAggregateResponse summarizes admitted calls inside the current window.
type UsageAggregateResponse struct {
	WindowCount int64      `json:"window_count"`
	LastEventAt *time.Time `json:"last_event_at,omitempty"`
}

// CapabilityUsageResponse is a capability with its live usage aggregate.
type CapabilityUsageResponse struct {
	CapabilityResponse
	Usage UsageAggregateResponse `json:"usage"`
}

// CapabilityListResponse is the admin capability listing.
type CapabilityListResponse struct {
	Capabilities []CapabilityUsageResponse `json:"capabilities"`
}

// StatsResponse is the admin dashboard projection.
type StatsResponse struct {
	TotalUsers    int64           `json:"total_users"`
	ActiveUsers   int64           `json:"active_users"`
	APICallsToday int64           `json:"api_calls_today"`
	Capabilities  map[string]bool `json:"capabilities"`
}

// MapCapabilityToResponse converts a domain capability to its API representation.
func MapCapabilityToResponse(capability *registryDomain.Capability) CapabilityResponse {
	return CapabilityResponse{
		Name:         capability.Name,
		Enabled:      capability.Enabled,
		AllowedRoles: capability.AllowedRoles,
		RateLimit: RateLimitPolicyResponse{
			Count:         capability.RateLimit.Count,
			WindowSeconds: capability.RateLimit.WindowSeconds,
		},
		Endpoints: capability.Endpoints,
		CreatedAt: capability.CreatedAt,
		UpdatedAt: capability.UpdatedAt,
	}
}

// MapProjectionToResponse converts a capability projection to its API representation.
func MapProjectionToResponse(projection *registryUseCase.CapabilityProjection) CapabilityUsageResponse {
	response := CapabilityUsageResponse{
		CapabilityResponse: MapCapabilityToResponse(projection.Capability),
	}
	if projection.Usage != nil {
		response.Usage = UsageAggregateResponse{
			WindowCount: projection.Usage.Count,
			LastEventAt: projection.Usage.LastEventAt,
		}
	}
	return response
}
