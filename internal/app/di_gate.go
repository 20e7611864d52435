package app

import (
	"fmt"

	gateUseCase "github.com/viralspark/gateway/internal/gate/usecase"
)

// AccessGate returns the admission gate.
func (c *Container) AccessGate() (gateUseCase.AccessGate, error) {
	c.accessGateInit.Do(func() {
		gate, err := c.initAccessGate()
		if err != nil {
			c.initErrors["accessGate"] = err
			return
		}
		c.accessGate = gate
	})
	if storedErr, exists := c.initErrors["accessGate"]; exists {
		return nil, storedErr
	}
	return c.accessGate, nil
}

// initAccessGate creates the access gate with all its dependencies.
func (c *Container) initAccessGate() (gateUseCase.AccessGate, error) {
	capabilityUseCase, err := c.CapabilityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability use case for access gate: %w", err)
	}

	usageUseCase, err := c.UsageUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage use case for access gate: %w", err)
	}

	baseGate := gateUseCase.NewAccessGate(
		capabilityUseCase,
		usageUseCase,
		c.config.GateDecisionTimeout,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for access gate: %w", err)
		}
		return gateUseCase.NewAccessGateWithMetrics(baseGate, businessMetrics), nil
	}

	return baseGate, nil
}
