// Package mocks provides mock implementations of the session use case interfaces for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/radarone/vault/internal/session/domain"
)

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

// Upsert mocks the Upsert method.
func (m *MockSessionRepository) Upsert(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// GetByUserAndSite mocks the GetByUserAndSite method.
func (m *MockSessionRepository) GetByUserAndSite(
	ctx context.Context,
	userID string,
	site domain.SiteKey,
) (*domain.Session, error) {
	args := m.Called(ctx, userID, site)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// ListByUser mocks the ListByUser method.
func (m *MockSessionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Session), args.Error(1)
}

// DeleteByUserAndSite mocks the DeleteByUserAndSite method.
func (m *MockSessionRepository) DeleteByUserAndSite(
	ctx context.Context,
	userID string,
	site domain.SiteKey,
) (bool, error) {
	args := m.Called(ctx, userID, site)
	return args.Bool(0), args.Error(1)
}

// UpdateStatus mocks the UpdateStatus method.
func (m *MockSessionRepository) UpdateStatus(
	ctx context.Context,
	session *domain.Session,
	readUpdatedAt time.Time,
) error {
	args := m.Called(ctx, session, readUpdatedAt)
	return args.Error(0)
}

// TouchLastUsed mocks the TouchLastUsed method.
func (m *MockSessionRepository) TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	args := m.Called(ctx, id, usedAt)
	return args.Error(0)
}

// MockSessionUseCase is a mock implementation of SessionUseCase.
type MockSessionUseCase struct {
	mock.Mock
}

// Upload mocks the Upload method.
func (m *MockSessionUseCase) Upload(ctx context.Context, input domain.UploadInput) (*domain.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResult), args.Error(1)
}

// GetStatus mocks the GetStatus method.
func (m *MockSessionUseCase) GetStatus(ctx context.Context, userID, site string) (*domain.StatusView, error) {
	args := m.Called(ctx, userID, site)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusView), args.Error(1)
}

// GetAll mocks the GetAll method.
func (m *MockSessionUseCase) GetAll(ctx context.Context, userID string) ([]*domain.StatusView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StatusView), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockSessionUseCase) Delete(ctx context.Context, userID, site string) (bool, error) {
	args := m.Called(ctx, userID, site)
	return args.Bool(0), args.Error(1)
}

// Validate mocks the Validate method.
func (m *MockSessionUseCase) Validate(ctx context.Context, userID, site string) (*domain.ValidationResult, error) {
	args := m.Called(ctx, userID, site)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationResult), args.Error(1)
}

// OpenForReplay mocks the OpenForReplay method.
func (m *MockSessionUseCase) OpenForReplay(ctx context.Context, userID, site string) (*domain.ReplaySession, error) {
	args := m.Called(ctx, userID, site)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReplaySession), args.Error(1)
}

// MarkNeedsReauth mocks the MarkNeedsReauth method.
func (m *MockSessionUseCase) MarkNeedsReauth(ctx context.Context, userID, site, reason string) error {
	args := m.Called(ctx, userID, site, reason)
	return args.Error(0)
}

// MarkUsed mocks the MarkUsed method.
func (m *MockSessionUseCase) MarkUsed(ctx context.Context, userID, site string) error {
	args := m.Called(ctx, userID, site)
	return args.Error(0)
}
