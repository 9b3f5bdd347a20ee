// Package mocks provides mock implementations for testing HTTP middleware.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/holograph/vault/internal/auth/domain"
)

// MockIdentityVerifier is a mock implementation of service.IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

// NewMockIdentityVerifier creates a MockIdentityVerifier that asserts its
// expectations during test cleanup.
func NewMockIdentityVerifier(t *testing.T) *MockIdentityVerifier {
	m := &MockIdentityVerifier{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Verify mocks the Verify method of IdentityVerifier.
func (m *MockIdentityVerifier) Verify(ctx context.Context, token string) (*authDomain.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}
