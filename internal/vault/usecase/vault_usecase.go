package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	tenantDomain "github.com/holograph/vault/internal/tenant/domain"
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
	vaultService "github.com/holograph/vault/internal/vault/service"

	apperrors "github.com/holograph/vault/internal/errors"
)

// vaultUseCase implements VaultUseCase.
type vaultUseCase struct {
	provisioner vaultService.Provisioner
	fieldCipher vaultService.FieldCipher
	fileCipher  vaultService.FileCipher
	memberships MembershipReader
	logger      *slog.Logger
}

// NewVaultUseCase creates a new vault use case.
func NewVaultUseCase(
	provisioner vaultService.Provisioner,
	fieldCipher vaultService.FieldCipher,
	fileCipher vaultService.FileCipher,
	memberships MembershipReader,
	logger *slog.Logger,
) VaultUseCase {
	return &vaultUseCase{
		provisioner: provisioner,
		fieldCipher: fieldCipher,
		fileCipher:  fileCipher,
		memberships: memberships,
		logger:      logger,
	}
}

// ProvisionTenantKeys generates and stores a fresh keyset for the tenant.
func (u *vaultUseCase) ProvisionTenantKeys(
	ctx context.Context,
	tenantID uuid.UUID,
) (vaultDomain.KeyArtifactPaths, error) {
	paths, err := u.provisioner.Provision(ctx, tenantID.String())
	if err != nil {
		return vaultDomain.KeyArtifactPaths{}, err
	}

	u.logger.Info("tenant keys provisioned", slog.String("tenant_id", tenantID.String()))
	return paths, nil
}

// DeleteTenantKeys removes the tenant's key material.
func (u *vaultUseCase) DeleteTenantKeys(ctx context.Context, tenantID uuid.UUID) error {
	if err := u.provisioner.DeleteKeys(ctx, tenantID.String()); err != nil {
		return err
	}

	u.logger.Info("tenant keys deleted", slog.String("tenant_id", tenantID.String()))
	return nil
}

// EncryptField encrypts a text field for storage.
func (u *vaultUseCase) EncryptField(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	plaintext string,
) (vaultDomain.EncryptedField, error) {
	if err := u.requireMember(ctx, tenantID, userID); err != nil {
		return vaultDomain.EncryptedField{}, err
	}
	return u.fieldCipher.EncryptField(ctx, tenantID.String(), plaintext)
}

// DecryptField recovers a stored field, degrading to the fallback sentinel on
// any decryption failure.
func (u *vaultUseCase) DecryptField(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	field vaultDomain.EncryptedField,
) (string, bool, error) {
	if err := u.requireMember(ctx, tenantID, userID); err != nil {
		return "", false, err
	}
	plaintext, decrypted := u.fieldCipher.DecryptField(ctx, tenantID.String(), field)
	return plaintext, decrypted, nil
}

// EncryptFile encrypts a blob with the tenant's persistent file key.
func (u *vaultUseCase) EncryptFile(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	data []byte,
) ([]byte, error) {
	if err := u.requireMember(ctx, tenantID, userID); err != nil {
		return nil, err
	}
	return u.fileCipher.EncryptFile(ctx, tenantID.String(), data)
}

// DecryptFile decrypts a blob, failing loud on corrupt input.
func (u *vaultUseCase) DecryptFile(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	blob []byte,
) ([]byte, error) {
	if err := u.requireMember(ctx, tenantID, userID); err != nil {
		return nil, err
	}
	return u.fileCipher.DecryptFile(ctx, tenantID.String(), blob)
}

// ReleaseFileKey returns the raw AES file key to an authorized member. This
// hands key material to the browser, so the membership check runs before the
// keystore is touched and every release is logged.
func (u *vaultUseCase) ReleaseFileKey(ctx context.Context, tenantID, userID uuid.UUID) ([]byte, error) {
	if err := u.requireMember(ctx, tenantID, userID); err != nil {
		return nil, err
	}

	key, err := u.provisioner.FileKey(ctx, tenantID.String())
	if err != nil {
		return nil, err
	}

	u.logger.Info("file key released",
		slog.String("tenant_id", tenantID.String()),
		slog.String("user_id", userID.String()),
	)

	return key, nil
}

// requireMember allows the owner, principals, and delegates. Unknown tenants
// map to ErrForbidden, never ErrNotFound, so the caller cannot probe for
// tenant existence.
func (u *vaultUseCase) requireMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	members, err := u.memberships.GetMembers(ctx, tenantID)
	if err != nil {
		if apperrors.Is(err, tenantDomain.ErrTenantNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	if !members.Contains(userID) {
		return apperrors.ErrForbidden
	}
	return nil
}
