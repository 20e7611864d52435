package usecase

import (
	"encoding/json"
	"os"

	apperrors "github.com/viralspark/gateway/internal/errors"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// capabilityConfigEntry is the on-disk shape of one capability in the
// capabilities config file. The file holds a JSON array; array order becomes
// registry insertion order and therefore path matching precedence.
type capabilityConfigEntry struct {
	Name         string   `json:"name"`
	Enabled      bool     `json:"enabled"`
	AllowedRoles []string `json:"allowed_roles"`
	RateLimit    struct {
		Count         int `json:"count"`
		WindowSeconds int `json:"window_seconds"`
	} `json:"rate_limit"`
	Endpoints []string `json:"endpoints"`
}

// LoadCapabilitiesConfig reads the capability seed set from a JSON config
// file. Entries keep their array position so earlier entries win path matches.
func LoadCapabilitiesConfig(path string) ([]*registryDomain.Capability, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read capabilities config")
	}

	var entries []capabilityConfigEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse capabilities config")
	}

	if len(entries) == 0 {
		return nil, apperrors.New("capabilities config is empty")
	}

	capabilities := make([]*registryDomain.Capability, 0, len(entries))
	for i, entry := range entries {
		capability := &registryDomain.Capability{
			Name:         entry.Name,
			Enabled:      entry.Enabled,
			AllowedRoles: entry.AllowedRoles,
			RateLimit: registryDomain.RateLimitPolicy{
				Count:         entry.RateLimit.Count,
				WindowSeconds: entry.RateLimit.WindowSeconds,
			},
			Endpoints: entry.Endpoints,
			Position:  i,
		}
		if err := capability.Validate(); err != nil {
			return nil, apperrors.Wrap(err, "invalid capability in config: "+entry.Name)
		}
		capabilities = append(capabilities, capability)
	}

	return capabilities, nil
}

// DefaultCapabilities returns the built-in capability set used when no config
// file is available and the store is empty. It mirrors the shipped
// capabilities_config.json so first boot behaves the same either way.
func DefaultCapabilities() []*registryDomain.Capability {
	return []*registryDomain.Capability{
		{
			Name:         "web_scraping",
			Enabled:      true,
			AllowedRoles: []string{registryDomain.RoleAdmin, registryDomain.RoleUser},
			RateLimit:    registryDomain.RateLimitPolicy{Count: 100, WindowSeconds: 3600},
			Endpoints:    []string{"/api/scrape", "/api/browse"},
			Position:     0,
		},
		{
			Name:         "social_media",
			Enabled:      true,
			AllowedRoles: []string{registryDomain.RoleAdmin, registryDomain.RoleUser},
			RateLimit:    registryDomain.RateLimitPolicy{Count: 50, WindowSeconds: 3600},
			Endpoints:    []string{"/api/social/*"},
			Position:     1,
		},
		{
			Name:         "cloud_management",
			Enabled:      false,
			AllowedRoles: []string{registryDomain.RoleAdmin},
			RateLimit:    registryDomain.RateLimitPolicy{Count: 20, WindowSeconds: 3600},
			Endpoints:    []string{"/api/cloud/*"},
			Position:     2,
		},
		{
			Name:         "admin_api",
			Enabled:      true,
			AllowedRoles: []string{registryDomain.RoleAdmin},
			RateLimit:    registryDomain.RateLimitPolicy{Count: 1000, WindowSeconds: 3600},
			Endpoints:    []string{"/v1/admin/*"},
			Position:     3,
		},
	}
}
