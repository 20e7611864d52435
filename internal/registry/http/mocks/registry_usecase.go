// Package mocks provides mock implementations of registry use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
	registryUseCase "github.com/viralspark/gateway/internal/registry/usecase"
)

// MockCapabilityUseCase is a mock implementation of CapabilityUseCase for testing.
type MockCapabilityUseCase struct {
	mock.Mock
}

// Bootstrap mocks the Bootstrap method of CapabilityUseCase.
func (m *MockCapabilityUseCase) Bootstrap(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Get mocks the Get method of CapabilityUseCase.
func (m *MockCapabilityUseCase) Get(name string) (*registryDomain.Capability, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Capability), args.Error(1)
}

// List mocks the List method of CapabilityUseCase.
func (m *MockCapabilityUseCase) List() []*registryDomain.Capability {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*registryDomain.Capability)
}

// FindByPath mocks the FindByPath method of CapabilityUseCase.
func (m *MockCapabilityUseCase) FindByPath(path string) (*registryDomain.Capability, bool) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*registryDomain.Capability), args.Bool(1)
}

// SetEnabled mocks the SetEnabled method of CapabilityUseCase.
func (m *MockCapabilityUseCase) SetEnabled(
	ctx context.Context,
	name string,
	enabled bool,
) (*registryDomain.Capability, error) {
	args := m.Called(ctx, name, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Capability), args.Error(1)
}

// UpdatePolicy mocks the UpdatePolicy method of CapabilityUseCase.
func (m *MockCapabilityUseCase) UpdatePolicy(
	ctx context.Context,
	name string,
	policy registryDomain.RateLimitPolicy,
) (*registryDomain.Capability, error) {
	args := m.Called(ctx, name, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Capability), args.Error(1)
}

// MockAdminUseCase is a mock implementation of AdminUseCase for testing.
type MockAdminUseCase struct {
	mock.Mock
}

// ListCapabilities mocks the ListCapabilities method of AdminUseCase.
func (m *MockAdminUseCase) ListCapabilities(
	ctx context.Context,
) ([]*registryUseCase.CapabilityProjection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registryUseCase.CapabilityProjection), args.Error(1)
}

// Stats mocks the Stats method of AdminUseCase.
func (m *MockAdminUseCase) Stats(ctx context.Context) (*registryUseCase.SystemStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryUseCase.SystemStats), args.Error(1)
}
