// Package domain defines the capability registry domain models.
//
// A capability is a named, independently toggleable feature area with its own
// role policy and rate limit. Capabilities govern sets of endpoint path patterns;
// every gated request resolves to exactly one capability before business logic runs.
package domain

import (
	"slices"
	"strings"
	"time"
)

// Role identifiers recognized by capability policies.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// RateLimitPolicy defines the sliding-window quota for a capability.
// Usage is counted per subject per capability in the interval
// (now - WindowSeconds, now], never in fixed-aligned buckets.
type RateLimitPolicy struct {
	Count         int `json:"count"`
	WindowSeconds int `json:"window_seconds"`
}

// Window returns the policy window as a duration.
func (p RateLimitPolicy) Window() time.Duration {
	return time.Duration(p.WindowSeconds) * time.Second
}

// Validate checks the policy invariants: both count and window must be positive.
func (p RateLimitPolicy) Validate() error {
	if p.Count <= 0 {
		return ErrInvalidPolicy
	}
	if p.WindowSeconds <= 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// Capability represents a named feature area with its access policy.
// Position preserves insertion order so List results are stable across mutations.
type Capability struct {
	Name         string
	Enabled      bool
	AllowedRoles []string
	RateLimit    RateLimitPolicy
	Endpoints    []string
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the capability invariants.
func (c *Capability) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidCapability
	}
	if len(c.AllowedRoles) == 0 {
		return ErrInvalidCapability
	}
	return c.RateLimit.Validate()
}

// AllowsRole reports whether the given role may use this capability.
func (c *Capability) AllowsRole(role string) bool {
	return slices.Contains(c.AllowedRoles, role)
}

// MatchesPath reports whether any of the capability's endpoint patterns
// matches the request path.
func (c *Capability) MatchesPath(path string) bool {
	if path == "" {
		return false
	}
	for _, pattern := range c.Endpoints {
		if matchPath(pattern, path) {
			return true
		}
	}
	return false
}

// matchPath checks if the request path matches the endpoint path pattern.
// Supports three types of wildcards:
//  1. Full wildcard: "*" matches any path
//  2. Trailing wildcard: "prefix/*" matches any path starting with "prefix/" (greedy)
//  3. Mid-path wildcard: "/api/social/*/schedule" matches paths with * as single segment
//
// Examples:
//   - "*" matches any path
//   - "/api/scrape/*" matches "/api/scrape/page" and "/api/scrape/page/meta"
//   - "/api/cloud/*/deploy" matches "/api/cloud/aws/deploy" but NOT "/api/cloud/deploy"
func matchPath(pattern, requestPath string) bool {
	// Special case: full wildcard matches everything
	if pattern == "*" {
		return true
	}

	// No wildcard: exact match required
	if !strings.Contains(pattern, "*") {
		return pattern == requestPath
	}

	// Trailing wildcard (/*): prefix match (greedy - matches remaining path)
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		return strings.HasPrefix(requestPath, prefix+"/")
	}

	// Mid-path wildcards: segment-by-segment matching
	// Each * matches exactly one segment
	patternParts := strings.Split(pattern, "/")
	requestParts := strings.Split(requestPath, "/")

	// Must have same number of segments for mid-path wildcards
	if len(patternParts) != len(requestParts) {
		return false
	}

	// Compare each segment
	for i := 0; i < len(patternParts); i++ {
		if patternParts[i] == "*" {
			// Wildcard matches any single segment
			continue
		}
		if patternParts[i] != requestParts[i] {
			return false
		}
	}

	return true
}

// UpdatePolicyInput contains the parameters for replacing a capability's rate limit.
type UpdatePolicyInput struct {
	RateLimit RateLimitPolicy
}
