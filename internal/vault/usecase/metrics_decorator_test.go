package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/holograph/vault/internal/errors"
	"github.com/holograph/vault/internal/metrics"
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
	vaultUsecaseMocks "github.com/holograph/vault/internal/vault/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

// TestNewVaultUseCaseWithMetrics tests the metrics decorator constructor.
func TestNewVaultUseCaseWithMetrics(t *testing.T) {
	decorator := NewVaultUseCaseWithMetrics(vaultUsecaseMocks.NewMockVaultUseCase(t), &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*VaultUseCase)(nil), decorator)
}

// TestMetricsDecorator_ReleaseFileKey tests key release metrics recording.
func TestMetricsDecorator_ReleaseFileKey(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := vaultUsecaseMocks.NewMockVaultUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("ReleaseFileKey", ctx, tenantID, userID).Return(make([]byte, 32), nil)
		mockMetrics.On("RecordOperation", ctx, "vault", "key_release", "success").Return()
		mockMetrics.On("RecordDuration", ctx, "vault", "key_release", mock.AnythingOfType("time.Duration"), "success").Return()

		decorator := NewVaultUseCaseWithMetrics(mockUseCase, mockMetrics)
		key, err := decorator.ReleaseFileKey(ctx, tenantID, userID)

		assert.NoError(t, err)
		assert.Len(t, key, 32)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Forbidden_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := vaultUsecaseMocks.NewMockVaultUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("ReleaseFileKey", ctx, tenantID, userID).Return(nil, apperrors.ErrForbidden)
		mockMetrics.On("RecordOperation", ctx, "vault", "key_release", "error").Return()
		mockMetrics.On("RecordDuration", ctx, "vault", "key_release", mock.AnythingOfType("time.Duration"), "error").Return()

		decorator := NewVaultUseCaseWithMetrics(mockUseCase, mockMetrics)
		_, err := decorator.ReleaseFileKey(ctx, tenantID, userID)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockMetrics.AssertExpectations(t)
	})
}

// TestMetricsDecorator_DecryptField tests that a failed decryption is
// reported as its own status, distinct from errors.
func TestMetricsDecorator_DecryptField(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())
	field := vaultDomain.EncryptedField{Ciphertext: "YQ==", WrappedKey: "Yg==", IV: "Yw=="}

	t.Run("Decrypted_RecordsSuccess", func(t *testing.T) {
		mockUseCase := vaultUsecaseMocks.NewMockVaultUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("DecryptField", ctx, tenantID, userID, field).Return("plaintext", true, nil)
		mockMetrics.On("RecordOperation", ctx, "vault", "field_decrypt", "success").Return()
		mockMetrics.On("RecordDuration", ctx, "vault", "field_decrypt", mock.AnythingOfType("time.Duration"), "success").Return()

		decorator := NewVaultUseCaseWithMetrics(mockUseCase, mockMetrics)
		plaintext, decrypted, err := decorator.DecryptField(ctx, tenantID, userID, field)

		assert.NoError(t, err)
		assert.True(t, decrypted)
		assert.Equal(t, "plaintext", plaintext)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Undecryptable_RecordsDecryptFailed", func(t *testing.T) {
		mockUseCase := vaultUsecaseMocks.NewMockVaultUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("DecryptField", ctx, tenantID, userID, field).
			Return(vaultDomain.FieldDecryptionFallback, false, nil)
		mockMetrics.On("RecordOperation", ctx, "vault", "field_decrypt", "decrypt_failed").Return()
		mockMetrics.On("RecordDuration", ctx, "vault", "field_decrypt", mock.AnythingOfType("time.Duration"), "decrypt_failed").Return()

		decorator := NewVaultUseCaseWithMetrics(mockUseCase, mockMetrics)
		plaintext, decrypted, err := decorator.DecryptField(ctx, tenantID, userID, field)

		assert.NoError(t, err)
		assert.False(t, decrypted)
		assert.Equal(t, vaultDomain.FieldDecryptionFallback, plaintext)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Forbidden_RecordsError", func(t *testing.T) {
		mockUseCase := vaultUsecaseMocks.NewMockVaultUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("DecryptField", ctx, tenantID, userID, field).
			Return("", false, apperrors.ErrForbidden)
		mockMetrics.On("RecordOperation", ctx, "vault", "field_decrypt", "error").Return()
		mockMetrics.On("RecordDuration", ctx, "vault", "field_decrypt", mock.AnythingOfType("time.Duration"), "error").Return()

		decorator := NewVaultUseCaseWithMetrics(mockUseCase, mockMetrics)
		_, _, err := decorator.DecryptField(ctx, tenantID, userID, field)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockMetrics.AssertExpectations(t)
	})
}
