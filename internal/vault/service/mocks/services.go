// Package mocks provides mock implementations of the vault service
// interfaces for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// MockProvisioner is a mock implementation of service.Provisioner.
type MockProvisioner struct {
	mock.Mock
}

// NewMockProvisioner creates a MockProvisioner that asserts its expectations
// during test cleanup.
func NewMockProvisioner(t *testing.T) *MockProvisioner {
	m := &MockProvisioner{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Provision mocks the Provision method of Provisioner.
func (m *MockProvisioner) Provision(ctx context.Context, tenantID string) (vaultDomain.KeyArtifactPaths, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(vaultDomain.KeyArtifactPaths), args.Error(1)
}

// DeleteKeys mocks the DeleteKeys method of Provisioner.
func (m *MockProvisioner) DeleteKeys(ctx context.Context, tenantID string) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// FileKey mocks the FileKey method of Provisioner.
func (m *MockProvisioner) FileKey(ctx context.Context, tenantID string) ([]byte, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockFieldCipher is a mock implementation of service.FieldCipher.
type MockFieldCipher struct {
	mock.Mock
}

// NewMockFieldCipher creates a MockFieldCipher that asserts its expectations
// during test cleanup.
func NewMockFieldCipher(t *testing.T) *MockFieldCipher {
	m := &MockFieldCipher{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EncryptField mocks the EncryptField method of FieldCipher.
func (m *MockFieldCipher) EncryptField(
	ctx context.Context,
	tenantID, plaintext string,
) (vaultDomain.EncryptedField, error) {
	args := m.Called(ctx, tenantID, plaintext)
	return args.Get(0).(vaultDomain.EncryptedField), args.Error(1)
}

// DecryptField mocks the DecryptField method of FieldCipher.
func (m *MockFieldCipher) DecryptField(
	ctx context.Context,
	tenantID string,
	field vaultDomain.EncryptedField,
) (string, bool) {
	args := m.Called(ctx, tenantID, field)
	return args.String(0), args.Bool(1)
}

// MockFileCipher is a mock implementation of service.FileCipher.
type MockFileCipher struct {
	mock.Mock
}

// NewMockFileCipher creates a MockFileCipher that asserts its expectations
// during test cleanup.
func NewMockFileCipher(t *testing.T) *MockFileCipher {
	m := &MockFileCipher{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EncryptFile mocks the EncryptFile method of FileCipher.
func (m *MockFileCipher) EncryptFile(ctx context.Context, tenantID string, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, tenantID, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DecryptFile mocks the DecryptFile method of FileCipher.
func (m *MockFileCipher) DecryptFile(ctx context.Context, tenantID string, blob []byte) ([]byte, error) {
	args := m.Called(ctx, tenantID, blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
