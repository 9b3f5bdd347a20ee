// Package mocks provides mock implementations of file use case dependencies
// for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/holograph/vault/internal/files/domain"
)

// MockFileRepository is a mock implementation of usecase.FileRepository.
type MockFileRepository struct {
	mock.Mock
}

// NewMockFileRepository creates a MockFileRepository that asserts its
// expectations during test cleanup.
func NewMockFileRepository(t *testing.T) *MockFileRepository {
	m := &MockFileRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of FileRepository.
func (m *MockFileRepository) Create(ctx context.Context, record *domain.FileRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// GetByID mocks the GetByID method of FileRepository.
func (m *MockFileRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.FileRecord, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

// ListByTenant mocks the ListByTenant method of FileRepository.
func (m *MockFileRepository) ListByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	section string,
	limit, offset int,
) ([]*domain.FileRecord, error) {
	args := m.Called(ctx, tenantID, section, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FileRecord), args.Error(1)
}

// Delete mocks the Delete method of FileRepository.
func (m *MockFileRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
