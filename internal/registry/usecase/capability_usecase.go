// Package usecase implements business logic orchestration for the capability registry.
package usecase

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/viralspark/gateway/internal/database"
	apperrors "github.com/viralspark/gateway/internal/errors"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// capabilityUseCase implements CapabilityUseCase backed by a repository and an
// atomically swapped in-memory snapshot.
type capabilityUseCase struct {
	txManager      database.TxManager
	capabilityRepo CapabilityRepository
	configPath     string
	logger         *slog.Logger

	current atomic.Pointer[snapshot]

	// mutateMu serializes admin mutations so concurrent toggles can't
	// interleave their persist-then-rebuild sequences.
	mutateMu sync.Mutex
}

// Bootstrap loads the registry from the repository into the first snapshot.
// An empty store is seeded from the capabilities config file, falling back to
// the built-in default set when the file is absent.
func (c *capabilityUseCase) Bootstrap(ctx context.Context) error {
	count, err := c.capabilityRepo.Count(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to count capabilities during bootstrap")
	}

	if count == 0 {
		seed, err := LoadCapabilitiesConfig(c.configPath)
		if err != nil {
			c.logger.Warn("capabilities config not loadable, using built-in defaults",
				slog.String("path", c.configPath),
				slog.Any("error", err))
			seed = DefaultCapabilities()
		}

		// Seed in one transaction so a partial set never becomes visible.
		err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
			for _, capability := range seed {
				if err := capability.Validate(); err != nil {
					return apperrors.Wrap(err, "invalid seed capability "+capability.Name)
				}
				if err := c.capabilityRepo.Create(ctx, capability); err != nil {
					return apperrors.Wrap(err, "failed to seed capability "+capability.Name)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		c.logger.Info("seeded capability registry", slog.Int("count", len(seed)))
	}

	return c.reload(ctx)
}

// Get retrieves a capability by name from the current snapshot.
func (c *capabilityUseCase) Get(name string) (*registryDomain.Capability, error) {
	capability := c.snapshot().get(name)
	if capability == nil {
		return nil, registryDomain.ErrCapabilityNotFound
	}
	return capability, nil
}

// List returns all capabilities from the current snapshot in insertion order.
func (c *capabilityUseCase) List() []*registryDomain.Capability {
	return c.snapshot().list()
}

// FindByPath resolves the capability governing the given request path.
func (c *capabilityUseCase) FindByPath(path string) (*registryDomain.Capability, bool) {
	capability := c.snapshot().findByPath(path)
	return capability, capability != nil
}

// SetEnabled toggles a capability and publishes a rebuilt snapshot.
func (c *capabilityUseCase) SetEnabled(
	ctx context.Context,
	name string,
	enabled bool,
) (*registryDomain.Capability, error) {
	c.mutateMu.Lock()
	defer c.mutateMu.Unlock()

	if err := c.capabilityRepo.UpdateEnabled(ctx, name, enabled); err != nil {
		return nil, err
	}

	if err := c.reload(ctx); err != nil {
		return nil, err
	}

	return c.Get(name)
}

// UpdatePolicy replaces a capability's rate limit policy and publishes a
// rebuilt snapshot. An invalid policy is rejected before any persistence.
func (c *capabilityUseCase) UpdatePolicy(
	ctx context.Context,
	name string,
	policy registryDomain.RateLimitPolicy,
) (*registryDomain.Capability, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	c.mutateMu.Lock()
	defer c.mutateMu.Unlock()

	if err := c.capabilityRepo.UpdatePolicy(ctx, name, policy); err != nil {
		return nil, err
	}

	if err := c.reload(ctx); err != nil {
		return nil, err
	}

	return c.Get(name)
}

// snapshot returns the current registry view. Bootstrap must have run; an
// unset snapshot is treated as an empty registry rather than a panic.
func (c *capabilityUseCase) snapshot() *snapshot {
	if s := c.current.Load(); s != nil {
		return s
	}
	return newSnapshot(nil)
}

// reload rebuilds the snapshot from the repository and swaps it in.
func (c *capabilityUseCase) reload(ctx context.Context) error {
	capabilities, err := c.capabilityRepo.List(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to reload capability snapshot")
	}

	c.current.Store(newSnapshot(capabilities))
	return nil
}

// NewCapabilityUseCase creates a new CapabilityUseCase with the provided dependencies.
// Call Bootstrap before serving reads.
func NewCapabilityUseCase(
	txManager database.TxManager,
	capabilityRepo CapabilityRepository,
	configPath string,
	logger *slog.Logger,
) CapabilityUseCase {
	return &capabilityUseCase{
		txManager:      txManager,
		capabilityRepo: capabilityRepo,
		configPath:     configPath,
		logger:         logger,
	}
}
