package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/holograph/vault/internal/metrics"
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// ProvisionTenantKeys records metrics for key provisioning operations.
func (v *vaultUseCaseWithMetrics) ProvisionTenantKeys(
	ctx context.Context,
	tenantID uuid.UUID,
) (vaultDomain.KeyArtifactPaths, error) {
	start := time.Now()
	paths, err := v.next.ProvisionTenantKeys(ctx, tenantID)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "keys_provision", status)
	v.metrics.RecordDuration(ctx, "vault", "keys_provision", time.Since(start), status)

	return paths, err
}

// DeleteTenantKeys records metrics for key deletion operations.
func (v *vaultUseCaseWithMetrics) DeleteTenantKeys(ctx context.Context, tenantID uuid.UUID) error {
	start := time.Now()
	err := v.next.DeleteTenantKeys(ctx, tenantID)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "keys_delete", status)
	v.metrics.RecordDuration(ctx, "vault", "keys_delete", time.Since(start), status)

	return err
}

// EncryptField records metrics for field encryption operations.
func (v *vaultUseCaseWithMetrics) EncryptField(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	plaintext string,
) (vaultDomain.EncryptedField, error) {
	start := time.Now()
	field, err := v.next.EncryptField(ctx, tenantID, userID, plaintext)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "field_encrypt", status)
	v.metrics.RecordDuration(ctx, "vault", "field_encrypt", time.Since(start), status)

	return field, err
}

// DecryptField records metrics for field decryption operations. A field that
// could not be decrypted is a distinct status from an authorization error:
// it signals data corruption or lost keys rather than a bad caller.
func (v *vaultUseCaseWithMetrics) DecryptField(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	field vaultDomain.EncryptedField,
) (string, bool, error) {
	start := time.Now()
	plaintext, decrypted, err := v.next.DecryptField(ctx, tenantID, userID, field)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case !decrypted:
		status = "decrypt_failed"
	}

	v.metrics.RecordOperation(ctx, "vault", "field_decrypt", status)
	v.metrics.RecordDuration(ctx, "vault", "field_decrypt", time.Since(start), status)

	return plaintext, decrypted, err
}

// EncryptFile records metrics for file encryption operations.
func (v *vaultUseCaseWithMetrics) EncryptFile(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	data []byte,
) ([]byte, error) {
	start := time.Now()
	blob, err := v.next.EncryptFile(ctx, tenantID, userID, data)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "file_encrypt", status)
	v.metrics.RecordDuration(ctx, "vault", "file_encrypt", time.Since(start), status)

	return blob, err
}

// DecryptFile records metrics for file decryption operations.
func (v *vaultUseCaseWithMetrics) DecryptFile(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	blob []byte,
) ([]byte, error) {
	start := time.Now()
	data, err := v.next.DecryptFile(ctx, tenantID, userID, blob)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "file_decrypt", status)
	v.metrics.RecordDuration(ctx, "vault", "file_decrypt", time.Since(start), status)

	return data, err
}

// ReleaseFileKey records metrics for raw key releases.
func (v *vaultUseCaseWithMetrics) ReleaseFileKey(
	ctx context.Context,
	tenantID, userID uuid.UUID,
) ([]byte, error) {
	start := time.Now()
	key, err := v.next.ReleaseFileKey(ctx, tenantID, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "key_release", status)
	v.metrics.RecordDuration(ctx, "vault", "key_release", time.Since(start), status)

	return key, err
}
