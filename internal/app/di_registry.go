package app

import (
	"fmt"

	registryRepository "github.com/viralspark/gateway/internal/registry/repository"
	registryUseCase "github.com/viralspark/gateway/internal/registry/usecase"
)

// CapabilityRepository returns the capability repository based on database driver.
func (c *Container) CapabilityRepository() (registryUseCase.CapabilityRepository, error) {
	c.capabilityRepoInit.Do(func() {
		repo, err := c.initCapabilityRepository()
		if err != nil {
			c.initErrors["capabilityRepo"] = err
			return
		}
		c.capabilityRepo = repo
	})
	if storedErr, exists := c.initErrors["capabilityRepo"]; exists {
		return nil, storedErr
	}
	return c.capabilityRepo, nil
}

// CapabilityUseCase returns the capability registry use case.
// Call Bootstrap on it before serving traffic.
func (c *Container) CapabilityUseCase() (registryUseCase.CapabilityUseCase, error) {
	c.capabilityUseCaseInit.Do(func() {
		useCase, err := c.initCapabilityUseCase()
		if err != nil {
			c.initErrors["capabilityUseCase"] = err
			return
		}
		c.capabilityUseCase = useCase
	})
	if storedErr, exists := c.initErrors["capabilityUseCase"]; exists {
		return nil, storedErr
	}
	return c.capabilityUseCase, nil
}

// AdminUseCase returns the admin control surface use case.
func (c *Container) AdminUseCase() (registryUseCase.AdminUseCase, error) {
	c.adminUseCaseInit.Do(func() {
		useCase, err := c.initAdminUseCase()
		if err != nil {
			c.initErrors["adminUseCase"] = err
			return
		}
		c.adminUseCase = useCase
	})
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUseCase, nil
}

// initCapabilityRepository creates the capability repository instance.
func (c *Container) initCapabilityRepository() (registryUseCase.CapabilityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for capability repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return registryRepository.NewMySQLCapabilityRepository(db), nil
	case "postgres":
		return registryRepository.NewPostgreSQLCapabilityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCapabilityUseCase creates the capability use case with all its dependencies.
func (c *Container) initCapabilityUseCase() (registryUseCase.CapabilityUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for capability use case: %w", err)
	}

	capabilityRepo, err := c.CapabilityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability repository for capability use case: %w", err)
	}

	baseUseCase := registryUseCase.NewCapabilityUseCase(
		txManager,
		capabilityRepo,
		c.config.CapabilitiesConfigPath,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for capability use case: %w", err)
		}
		return registryUseCase.NewCapabilityUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAdminUseCase creates the admin use case with all its dependencies.
func (c *Container) initAdminUseCase() (registryUseCase.AdminUseCase, error) {
	capabilityUseCase, err := c.CapabilityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability use case for admin use case: %w", err)
	}

	usageUseCase, err := c.UsageUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage use case for admin use case: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for admin use case: %w", err)
	}

	return registryUseCase.NewAdminUseCase(capabilityUseCase, usageUseCase, userUseCase), nil
}
