// Package mocks provides mock implementations for testing gate middleware.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	gateDomain "github.com/viralspark/gateway/internal/gate/domain"
	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// MockAccessGate is a mock implementation of AccessGate for testing.
//
// RecordLatency calls are collected on LatencyCalls instead of going through
// expectations, since most tests only care about the admission decision.
type MockAccessGate struct {
	mock.Mock

	mu           sync.Mutex
	LatencyCalls []time.Duration
}

// Authorize mocks the Authorize method of AccessGate.
func (m *MockAccessGate) Authorize(
	ctx context.Context,
	identity *identityDomain.Identity,
	capabilityName string,
	endpoint string,
) *gateDomain.Decision {
	args := m.Called(ctx, identity, capabilityName, endpoint)
	return args.Get(0).(*gateDomain.Decision)
}

// RecordLatency collects the elapsed duration of each call.
func (m *MockAccessGate) RecordLatency(
	_ context.Context,
	_ *gateDomain.Decision,
	elapsed time.Duration,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LatencyCalls = append(m.LatencyCalls, elapsed)
}

// RecordedLatencies returns the elapsed durations collected so far.
func (m *MockAccessGate) RecordedLatencies() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.LatencyCalls...)
}

// MockCapabilityResolver is a mock implementation of CapabilityResolver for testing.
type MockCapabilityResolver struct {
	mock.Mock
}

// Get mocks the Get method of CapabilityResolver.
func (m *MockCapabilityResolver) Get(name string) (*registryDomain.Capability, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Capability), args.Error(1)
}

// FindByPath mocks the FindByPath method of CapabilityResolver.
func (m *MockCapabilityResolver) FindByPath(path string) (*registryDomain.Capability, bool) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*registryDomain.Capability), args.Bool(1)
}
