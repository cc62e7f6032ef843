// Package mocks provides mock implementations for testing HTTP authentication.
package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a mock implementation of TokenService for testing.
type MockTokenService struct {
	mock.Mock
}

// Issue mocks the Issue method of TokenService.
func (m *MockTokenService) Issue(userID string, ttl time.Duration) (string, error) {
	args := m.Called(userID, ttl)
	return args.String(0), args.Error(1)
}

// ParseUserID mocks the ParseUserID method of TokenService.
func (m *MockTokenService) ParseUserID(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
