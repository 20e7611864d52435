package app

import (
	"fmt"

	ledgerRepository "github.com/viralspark/gateway/internal/ledger/repository"
	ledgerUseCase "github.com/viralspark/gateway/internal/ledger/usecase"
)

// UsageRepository returns the usage ledger repository based on database driver.
func (c *Container) UsageRepository() (ledgerUseCase.UsageRepository, error) {
	c.usageRepoInit.Do(func() {
		repo, err := c.initUsageRepository()
		if err != nil {
			c.initErrors["usageRepo"] = err
			return
		}
		c.usageRepo = repo
	})
	if storedErr, exists := c.initErrors["usageRepo"]; exists {
		return nil, storedErr
	}
	return c.usageRepo, nil
}

// UsageUseCase returns the usage ledger use case.
func (c *Container) UsageUseCase() (ledgerUseCase.UsageUseCase, error) {
	c.usageUseCaseInit.Do(func() {
		useCase, err := c.initUsageUseCase()
		if err != nil {
			c.initErrors["usageUseCase"] = err
			return
		}
		c.usageUseCase = useCase
	})
	if storedErr, exists := c.initErrors["usageUseCase"]; exists {
		return nil, storedErr
	}
	return c.usageUseCase, nil
}

// initUsageRepository creates the usage repository instance.
func (c *Container) initUsageRepository() (ledgerUseCase.UsageRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for usage repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return ledgerRepository.NewMySQLUsageRepository(db), nil
	case "postgres":
		return ledgerRepository.NewPostgreSQLUsageRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUsageUseCase creates the usage use case with all its dependencies.
func (c *Container) initUsageUseCase() (ledgerUseCase.UsageUseCase, error) {
	usageRepo, err := c.UsageRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage repository for usage use case: %w", err)
	}

	// Retention pruning consults the registry so it never deletes records a
	// limiter is still counting.
	capabilityUseCase, err := c.CapabilityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability use case for usage use case: %w", err)
	}

	baseUseCase := ledgerUseCase.NewUsageUseCase(usageRepo, capabilityUseCase)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for usage use case: %w", err)
		}
		return ledgerUseCase.NewUsageUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
