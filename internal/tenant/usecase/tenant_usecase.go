package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/holograph/vault/internal/database"
	"github.com/holograph/vault/internal/keystore"
	"github.com/holograph/vault/internal/tenant/domain"
	vaultService "github.com/holograph/vault/internal/vault/service"

	apperrors "github.com/holograph/vault/internal/errors"
)

// tenantUseCase implements TenantUseCase.
type tenantUseCase struct {
	txManager   database.TxManager
	tenantRepo  TenantRepository
	provisioner vaultService.Provisioner
	fieldCipher vaultService.FieldCipher
	fileStore   keystore.KeyStore
	logger      *slog.Logger
}

// NewTenantUseCase creates a new tenant use case. fileStore is the bucket
// holding the tenant's encrypted document blobs, cleaned up on tenant deletion.
func NewTenantUseCase(
	txManager database.TxManager,
	tenantRepo TenantRepository,
	provisioner vaultService.Provisioner,
	fieldCipher vaultService.FieldCipher,
	fileStore keystore.KeyStore,
	logger *slog.Logger,
) TenantUseCase {
	return &tenantUseCase{
		txManager:   txManager,
		tenantRepo:  tenantRepo,
		provisioner: provisioner,
		fieldCipher: fieldCipher,
		fileStore:   fileStore,
		logger:      logger,
	}
}

// Create inserts the tenant row and provisions key material inside one
// transaction. Provisioning keys before the commit means a provisioning
// failure rolls back the row; a commit failure can orphan a keyset in storage,
// which a later provisioning for the same tenant would overwrite.
func (u *tenantUseCase) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
) (*domain.Tenant, error) {
	tenantID := uuid.Must(uuid.NewV7())

	var tenant *domain.Tenant
	err := u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		// Keys must exist before the name can be encrypted.
		if _, err := u.provisioner.Provision(txCtx, tenantID.String()); err != nil {
			return err
		}

		encryptedName, err := u.fieldCipher.EncryptField(txCtx, tenantID.String(), name)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		tenant = &domain.Tenant{
			ID:        tenantID,
			OwnerID:   ownerID,
			Name:      encryptedName,
			CreatedAt: now,
			UpdatedAt: now,
		}

		return u.tenantRepo.Create(txCtx, tenant)
	})
	if err != nil {
		// The row is rolled back; remove whatever key artifacts made it to
		// storage so the failed tenant leaves nothing behind.
		if cleanupErr := u.provisioner.DeleteKeys(ctx, tenantID.String()); cleanupErr != nil {
			u.logger.Warn("failed to clean up keys after aborted tenant creation",
				slog.String("tenant_id", tenantID.String()),
				slog.Any("error", cleanupErr),
			)
		}
		return nil, err
	}

	return tenant, nil
}

// Get returns the tenant with its name decrypted. Only members may read it.
func (u *tenantUseCase) Get(ctx context.Context, tenantID, userID uuid.UUID) (*TenantView, error) {
	members, err := u.tenantRepo.GetMembers(ctx, tenantID)
	if err != nil {
		if apperrors.Is(err, domain.ErrTenantNotFound) {
			// Same response for "no such tenant" and "not a member" so the
			// API does not reveal tenant existence.
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	if !members.Contains(userID) {
		return nil, apperrors.ErrForbidden
	}

	tenant, err := u.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	name, decrypted := u.fieldCipher.DecryptField(ctx, tenantID.String(), tenant.Name)

	return &TenantView{
		Tenant:    tenant,
		Name:      name,
		Decrypted: decrypted,
	}, nil
}

// Delete removes the tenant row in a transaction, then best-effort deletes
// key material and file blobs. Storage failures are logged, never fatal:
// the parent record is gone either way.
func (u *tenantUseCase) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	if err := u.requireOwner(ctx, tenantID, userID); err != nil {
		return err
	}

	err := u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.tenantRepo.Delete(txCtx, tenantID)
	})
	if err != nil {
		return err
	}

	if err := u.provisioner.DeleteKeys(ctx, tenantID.String()); err != nil {
		u.logger.Warn("tenant deleted but key cleanup incomplete",
			slog.String("tenant_id", tenantID.String()),
			slog.Any("error", err),
		)
	}
	if err := u.fileStore.DeletePrefix(ctx, tenantID.String()+"/"); err != nil {
		u.logger.Warn("tenant deleted but file blob cleanup incomplete",
			slog.String("tenant_id", tenantID.String()),
			slog.Any("error", err),
		)
	}

	return nil
}

// AddMember grants a principal or delegate role.
func (u *tenantUseCase) AddMember(
	ctx context.Context,
	tenantID, callerID, userID uuid.UUID,
	role domain.Role,
) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	if role == domain.RoleOwner {
		return domain.ErrOwnerImmutable
	}

	if err := u.requireOwner(ctx, tenantID, callerID); err != nil {
		return err
	}

	return u.tenantRepo.AddMembership(ctx, &domain.Membership{
		TenantID:  tenantID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
}

// RemoveMember revokes a principal or delegate role.
func (u *tenantUseCase) RemoveMember(ctx context.Context, tenantID, callerID, userID uuid.UUID) error {
	if err := u.requireOwner(ctx, tenantID, callerID); err != nil {
		return err
	}

	members, err := u.tenantRepo.GetMembers(ctx, tenantID)
	if err != nil {
		return err
	}
	if members.OwnerID == userID {
		return domain.ErrOwnerImmutable
	}

	return u.tenantRepo.RemoveMembership(ctx, tenantID, userID)
}

// requireOwner verifies callerID owns the tenant. Unknown tenants and
// non-owners both map to ErrForbidden.
func (u *tenantUseCase) requireOwner(ctx context.Context, tenantID, callerID uuid.UUID) error {
	members, err := u.tenantRepo.GetMembers(ctx, tenantID)
	if err != nil {
		if apperrors.Is(err, domain.ErrTenantNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	if members.OwnerID != callerID {
		return apperrors.ErrForbidden
	}
	return nil
}
