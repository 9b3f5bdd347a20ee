// Package mocks provides mock implementations of tenant use case
// dependencies for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/holograph/vault/internal/tenant/domain"
)

// MockTenantRepository is a mock implementation of usecase.TenantRepository.
type MockTenantRepository struct {
	mock.Mock
}

// NewMockTenantRepository creates a MockTenantRepository that asserts its
// expectations during test cleanup.
func NewMockTenantRepository(t *testing.T) *MockTenantRepository {
	m := &MockTenantRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of TenantRepository.
func (m *MockTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// GetByID mocks the GetByID method of TenantRepository.
func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// Delete mocks the Delete method of TenantRepository.
func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GetMembers mocks the GetMembers method of TenantRepository.
func (m *MockTenantRepository) GetMembers(ctx context.Context, tenantID uuid.UUID) (*domain.Members, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Members), args.Error(1)
}

// AddMembership mocks the AddMembership method of TenantRepository.
func (m *MockTenantRepository) AddMembership(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// RemoveMembership mocks the RemoveMembership method of TenantRepository.
func (m *MockTenantRepository) RemoveMembership(ctx context.Context, tenantID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}
