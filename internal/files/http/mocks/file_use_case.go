// Package mocks provides hand-written testify mocks for file handler tests.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/holograph/vault/internal/files/domain"
	"github.com/holograph/vault/internal/files/usecase"
)

// MockFileUseCase is a mock implementation of usecase.FileUseCase.
type MockFileUseCase struct {
	mock.Mock
}

// NewMockFileUseCase creates a mock that asserts its expectations on test
// cleanup.
func NewMockFileUseCase(t *testing.T) *MockFileUseCase {
	m := &MockFileUseCase{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFileUseCase) Upload(ctx context.Context, tenantID, userID uuid.UUID, input *usecase.UploadInput) (*domain.FileRecord, error) {
	args := m.Called(ctx, tenantID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileUseCase) Download(ctx context.Context, tenantID, userID, fileID uuid.UUID) (*usecase.DownloadOutput, error) {
	args := m.Called(ctx, tenantID, userID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DownloadOutput), args.Error(1)
}

func (m *MockFileUseCase) List(ctx context.Context, tenantID, userID uuid.UUID, section string, limit, offset int) ([]*usecase.FileView, error) {
	args := m.Called(ctx, tenantID, userID, section, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.FileView), args.Error(1)
}

func (m *MockFileUseCase) Delete(ctx context.Context, tenantID, userID, fileID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID, fileID)
	return args.Error(0)
}
