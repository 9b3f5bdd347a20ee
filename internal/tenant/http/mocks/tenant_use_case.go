// Package mocks provides hand-written testify mocks for tenant handler tests.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/holograph/vault/internal/tenant/domain"
	"github.com/holograph/vault/internal/tenant/usecase"
)

// MockTenantUseCase is a mock implementation of usecase.TenantUseCase.
type MockTenantUseCase struct {
	mock.Mock
}

// NewMockTenantUseCase creates a mock that asserts its expectations on
// test cleanup.
func NewMockTenantUseCase(t *testing.T) *MockTenantUseCase {
	m := &MockTenantUseCase{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTenantUseCase) Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Tenant, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantUseCase) Get(ctx context.Context, tenantID, userID uuid.UUID) (*usecase.TenantView, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TenantView), args.Error(1)
}

func (m *MockTenantUseCase) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}

func (m *MockTenantUseCase) AddMember(ctx context.Context, tenantID, callerID, userID uuid.UUID, role domain.Role) error {
	args := m.Called(ctx, tenantID, callerID, userID, role)
	return args.Error(0)
}

func (m *MockTenantUseCase) RemoveMember(ctx context.Context, tenantID, callerID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, callerID, userID)
	return args.Error(0)
}
