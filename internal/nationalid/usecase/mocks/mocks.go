// Package mocks provides mock implementations of the national id use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/radarone/vault/internal/nationalid/domain"
)

// MockNationalIDRepository is a mock implementation of NationalIDRepository.
type MockNationalIDRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockNationalIDRepository) Create(ctx context.Context, record *domain.NationalIDRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// GetByUserID mocks the GetByUserID method.
func (m *MockNationalIDRepository) GetByUserID(ctx context.Context, userID string) (*domain.NationalIDRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NationalIDRecord), args.Error(1)
}

// FindByHash mocks the FindByHash method.
func (m *MockNationalIDRepository) FindByHash(ctx context.Context, hash string) (*domain.NationalIDRecord, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NationalIDRecord), args.Error(1)
}

// MockNationalIDUseCase is a mock implementation of NationalIDUseCase.
type MockNationalIDUseCase struct {
	mock.Mock
}

// Register mocks the Register method.
func (m *MockNationalIDUseCase) Register(
	ctx context.Context,
	userID, nationalID string,
) (*domain.NationalIDRecord, error) {
	args := m.Called(ctx, userID, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NationalIDRecord), args.Error(1)
}

// Get mocks the Get method.
func (m *MockNationalIDUseCase) Get(ctx context.Context, userID string) (*domain.NationalIDRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NationalIDRecord), args.Error(1)
}

// Reveal mocks the Reveal method.
func (m *MockNationalIDUseCase) Reveal(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// IsRegistered mocks the IsRegistered method.
func (m *MockNationalIDUseCase) IsRegistered(ctx context.Context, nationalID string) (bool, error) {
	args := m.Called(ctx, nationalID)
	return args.Bool(0), args.Error(1)
}
