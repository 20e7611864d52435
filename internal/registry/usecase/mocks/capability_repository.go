// Package mocks provides mock implementations for testing registry use cases
// and HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// MockCapabilityRepository is a mock implementation of CapabilityRepository for testing.
type MockCapabilityRepository struct {
	mock.Mock
}

// Create mocks the Create method of CapabilityRepository.
func (m *MockCapabilityRepository) Create(
	ctx context.Context,
	capability *registryDomain.Capability,
) error {
	args := m.Called(ctx, capability)
	return args.Error(0)
}

// Get mocks the Get method of CapabilityRepository.
func (m *MockCapabilityRepository) Get(
	ctx context.Context,
	name string,
) (*registryDomain.Capability, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Capability), args.Error(1)
}

// List mocks the List method of CapabilityRepository.
func (m *MockCapabilityRepository) List(ctx context.Context) ([]*registryDomain.Capability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registryDomain.Capability), args.Error(1)
}

// UpdateEnabled mocks the UpdateEnabled method of CapabilityRepository.
func (m *MockCapabilityRepository) UpdateEnabled(
	ctx context.Context,
	name string,
	enabled bool,
) error {
	args := m.Called(ctx, name, enabled)
	return args.Error(0)
}

// UpdatePolicy mocks the UpdatePolicy method of CapabilityRepository.
func (m *MockCapabilityRepository) UpdatePolicy(
	ctx context.Context,
	name string,
	policy registryDomain.RateLimitPolicy,
) error {
	args := m.Called(ctx, name, policy)
	return args.Error(0)
}

// Count mocks the Count method of CapabilityRepository.
func (m *MockCapabilityRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUsageReader is a mock implementation of UsageReader for testing.
type MockUsageReader struct {
	mock.Mock
}

// Aggregate mocks the Aggregate method of UsageReader.
func (m *MockUsageReader) Aggregate(
	ctx context.Context,
	capability string,
	since time.Time,
) (*ledgerDomain.Aggregate, error) {
	args := m.Called(ctx, capability, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.Aggregate), args.Error(1)
}

// CountSince mocks the CountSince method of UsageReader.
func (m *MockUsageReader) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserCounter is a mock implementation of UserCounter for testing.
type MockUserCounter struct {
	mock.Mock
}

// CountUsers mocks the CountUsers method of UserCounter.
func (m *MockUserCounter) CountUsers(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}
