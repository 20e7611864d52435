// Package mocks provides mock implementations for testing ledger consumers.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
)

// MockUsageRepository is a mock implementation of UsageRepository for testing.
type MockUsageRepository struct {
	mock.Mock
}

// Create mocks the Create method of UsageRepository.
func (m *MockUsageRepository) Create(ctx context.Context, record *ledgerDomain.UsageRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// SetElapsed mocks the SetElapsed method of UsageRepository.
func (m *MockUsageRepository) SetElapsed(ctx context.Context, id uuid.UUID, elapsedMS int64) error {
	args := m.Called(ctx, id, elapsedMS)
	return args.Error(0)
}

// CountAdmittedSince mocks the CountAdmittedSince method of UsageRepository.
func (m *MockUsageRepository) CountAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (int64, error) {
	args := m.Called(ctx, subjectID, capability, since)
	return args.Get(0).(int64), args.Error(1)
}

// OldestAdmittedSince mocks the OldestAdmittedSince method of UsageRepository.
func (m *MockUsageRepository) OldestAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (*time.Time, error) {
	args := m.Called(ctx, subjectID, capability, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

// Aggregate mocks the Aggregate method of UsageRepository.
func (m *MockUsageRepository) Aggregate(
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

// CountSince mocks the CountSince method of UsageRepository.
func (m *MockUsageRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// List mocks the List method of UsageRepository.
func (m *MockUsageRepository) List(
	ctx context.Context,
	filter ledgerDomain.ListFilter,
) ([]*ledgerDomain.UsageRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.UsageRecord), args.Error(1)
}

// DeleteOlderThan mocks the DeleteOlderThan method of UsageRepository.
func (m *MockUsageRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, cutoff, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockUsageUseCase is a mock implementation of UsageUseCase for testing.
type MockUsageUseCase struct {
	mock.Mock
}

// SetElapsed mocks the SetElapsed method of UsageUseCase.
func (m *MockUsageUseCase) SetElapsed(ctx context.Context, id uuid.UUID, elapsedMS int64) error {
	args := m.Called(ctx, id, elapsedMS)
	return args.Error(0)
}

// Record mocks the Record method of UsageUseCase.
func (m *MockUsageUseCase) Record(ctx context.Context, record *ledgerDomain.UsageRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// CountAdmittedSince mocks the CountAdmittedSince method of UsageUseCase.
func (m *MockUsageUseCase) CountAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (int64, error) {
	args := m.Called(ctx, subjectID, capability, since)
	return args.Get(0).(int64), args.Error(1)
}

// OldestAdmittedSince mocks the OldestAdmittedSince method of UsageUseCase.
func (m *MockUsageUseCase) OldestAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (*time.Time, error) {
	args := m.Called(ctx, subjectID, capability, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

// Aggregate mocks the Aggregate method of UsageUseCase.
func (m *MockUsageUseCase) Aggregate(
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

// CountSince mocks the CountSince method of UsageUseCase.
func (m *MockUsageUseCase) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// List mocks the List method of UsageUseCase.
func (m *MockUsageUseCase) List(
	ctx context.Context,
	filter ledgerDomain.ListFilter,
) ([]*ledgerDomain.UsageRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.UsageRecord), args.Error(1)
}

// Prune mocks the Prune method of UsageUseCase.
func (m *MockUsageUseCase) Prune(
	ctx context.Context,
	retention time.Duration,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, retention, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
