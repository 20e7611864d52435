package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
	registryUseCase "github.com/viralspark/gateway/internal/registry/usecase"
)

// RunSeedCapabilities loads the capability registry, seeding the configured
// default set when the store is empty, and prints the resulting registry.
// Supports both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunSeedCapabilities(
	ctx context.Context,
	capabilityUseCase registryUseCase.CapabilityUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("seeding capability registry")

	if err := capabilityUseCase.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap capability registry: %w", err)
	}

	capabilities := capabilityUseCase.List()

	if format == "json" {
		outputSeedJSON(writer, capabilities)
	} else {
		outputSeedText(writer, capabilities)
	}

	logger.Info("capability registry seeded",
		slog.Int("count", len(capabilities)),
	)

	return nil
}

func outputSeedText(writer io.Writer, capabilities []*registryDomain.Capability) {
	fmt.Fprintf(writer, "Capability registry loaded with %d capability(ies)\n", len(capabilities))
	for _, capability := range capabilities {
		state := "disabled"
		if capability.Enabled {
			state = "enabled"
		}
		fmt.Fprintf(writer, "- %s (%s, %d req / %ds)\n",
			capability.Name,
			state,
			capability.RateLimit.Count,
			capability.RateLimit.WindowSeconds,
		)
	}
}

func outputSeedJSON(writer io.Writer, capabilities []*registryDomain.Capability) {
	entries := make([]map[string]interface{}, 0, len(capabilities))
	for _, capability := range capabilities {
		entries = append(entries, map[string]interface{}{
			"name":    capability.Name,
			"enabled": capability.Enabled,
			"rate_limit": map[string]interface{}{
				"count":          capability.RateLimit.Count,
				"window_seconds": capability.RateLimit.WindowSeconds,
			},
		})
	}

	jsonBytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
