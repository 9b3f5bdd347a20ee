package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	vaultService "github.com/holograph/vault/internal/vault/service"
)

// RunProvisionTenantKeys generates and stores a full keyset (certificate, RSA
// private key, AES file key) for an existing tenant. Normally provisioning
// happens during tenant creation; this command covers recovery after key loss
// or environments seeded out of band.
//
// Provisioning overwrites any keyset already in place, which makes previously
// encrypted data unrecoverable. Use with care.
func RunProvisionTenantKeys(
	ctx context.Context,
	provisioner vaultService.Provisioner,
	logger *slog.Logger,
	tenantIDStr string,
) error {
	tenantID, err := uuid.Parse(tenantIDStr)
	if err != nil {
		return fmt.Errorf("invalid tenant id %q: %w", tenantIDStr, err)
	}

	logger.Info("provisioning tenant keys", slog.String("tenant_id", tenantID.String()))

	paths, err := provisioner.Provision(ctx, tenantID.String())
	if err != nil {
		return fmt.Errorf("failed to provision tenant keys: %w", err)
	}

	logger.Info("tenant keys provisioned",
		slog.String("tenant_id", tenantID.String()),
		slog.String("public_key", paths.PublicKeyPath),
		slog.String("private_key", paths.PrivateKeyPath),
		slog.String("aes_key", paths.AESKeyPath),
	)

	return nil
}

// RunDeleteTenantKeys removes a tenant's keyset from the keystore. Data
// encrypted under the keyset becomes unrecoverable.
func RunDeleteTenantKeys(
	ctx context.Context,
	provisioner vaultService.Provisioner,
	logger *slog.Logger,
	tenantIDStr string,
) error {
	tenantID, err := uuid.Parse(tenantIDStr)
	if err != nil {
		return fmt.Errorf("invalid tenant id %q: %w", tenantIDStr, err)
	}

	logger.Info("deleting tenant keys", slog.String("tenant_id", tenantID.String()))

	if err := provisioner.DeleteKeys(ctx, tenantID.String()); err != nil {
		return fmt.Errorf("failed to delete tenant keys: %w", err)
	}

	logger.Info("tenant keys deleted", slog.String("tenant_id", tenantID.String()))
	return nil
}
