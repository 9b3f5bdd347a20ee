// Package mocks provides mock implementations of the vault use case for
// testing.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// MockVaultUseCase is a mock implementation of usecase.VaultUseCase.
type MockVaultUseCase struct {
	mock.Mock
}

// NewMockVaultUseCase creates a MockVaultUseCase that asserts its
// expectations during test cleanup.
func NewMockVaultUseCase(t *testing.T) *MockVaultUseCase {
	m := &MockVaultUseCase{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ProvisionTenantKeys mocks the ProvisionTenantKeys method of VaultUseCase.
func (m *MockVaultUseCase) ProvisionTenantKeys(
	ctx context.Context,
	tenantID uuid.UUID,
) (vaultDomain.KeyArtifactPaths, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(vaultDomain.KeyArtifactPaths), args.Error(1)
}

// DeleteTenantKeys mocks the DeleteTenantKeys method of VaultUseCase.
func (m *MockVaultUseCase) DeleteTenantKeys(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// EncryptField mocks the EncryptField method of VaultUseCase.
func (m *MockVaultUseCase) EncryptField(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	plaintext string,
) (vaultDomain.EncryptedField, error) {
	args := m.Called(ctx, tenantID, userID, plaintext)
	return args.Get(0).(vaultDomain.EncryptedField), args.Error(1)
}

// DecryptField mocks the DecryptField method of VaultUseCase.
func (m *MockVaultUseCase) DecryptField(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	field vaultDomain.EncryptedField,
) (string, bool, error) {
	args := m.Called(ctx, tenantID, userID, field)
	return args.String(0), args.Bool(1), args.Error(2)
}

// EncryptFile mocks the EncryptFile method of VaultUseCase.
func (m *MockVaultUseCase) EncryptFile(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	data []byte,
) ([]byte, error) {
	args := m.Called(ctx, tenantID, userID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DecryptFile mocks the DecryptFile method of VaultUseCase.
func (m *MockVaultUseCase) DecryptFile(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	blob []byte,
) ([]byte, error) {
	args := m.Called(ctx, tenantID, userID, blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ReleaseFileKey mocks the ReleaseFileKey method of VaultUseCase.
func (m *MockVaultUseCase) ReleaseFileKey(
	ctx context.Context,
	tenantID, userID uuid.UUID,
) ([]byte, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
