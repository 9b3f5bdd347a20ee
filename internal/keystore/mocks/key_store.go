// Package mocks provides a mock implementation of keystore.KeyStore for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockKeyStore is a mock implementation of keystore.KeyStore.
type MockKeyStore struct {
	mock.Mock
}

// NewMockKeyStore creates a MockKeyStore that asserts its expectations
// during test cleanup.
func NewMockKeyStore(t *testing.T) *MockKeyStore {
	m := &MockKeyStore{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get mocks the Get method of KeyStore.
func (m *MockKeyStore) Get(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Put mocks the Put method of KeyStore.
func (m *MockKeyStore) Put(ctx context.Context, path string, data []byte) error {
	args := m.Called(ctx, path, data)
	return args.Error(0)
}

// Delete mocks the Delete method of KeyStore.
func (m *MockKeyStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// DeletePrefix mocks the DeletePrefix method of KeyStore.
func (m *MockKeyStore) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

// Close mocks the Close method of KeyStore.
func (m *MockKeyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
