// Package usecase orchestrates the tenant encryption operations exposed to
// the HTTP API and the CLI: key provisioning, field and file encryption, and
// release of the raw file key to authorized browsers.
package usecase

import (
	"context"

	"github.com/google/uuid"

	tenantDomain "github.com/holograph/vault/internal/tenant/domain"
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// MembershipReader resolves a tenant's membership for access checks.
type MembershipReader interface {
	GetMembers(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Members, error)
}

// VaultUseCase defines the encryption operations. Every user-facing operation
// verifies tenant membership first; an unknown tenant and a non-member get
// the same ErrForbidden so responses never reveal whether a tenant exists.
type VaultUseCase interface {
	// ProvisionTenantKeys generates and stores a fresh keyset for the tenant.
	// Administrative: callers are the tenant lifecycle and the CLI, which
	// enforce their own authorization.
	ProvisionTenantKeys(ctx context.Context, tenantID uuid.UUID) (vaultDomain.KeyArtifactPaths, error)

	// DeleteTenantKeys removes the tenant's key material. Administrative.
	// After this call every field and file encrypted for the tenant is
	// permanently unreadable.
	DeleteTenantKeys(ctx context.Context, tenantID uuid.UUID) error

	// EncryptField encrypts a text field for storage.
	EncryptField(ctx context.Context, tenantID, userID uuid.UUID, plaintext string) (vaultDomain.EncryptedField, error)

	// DecryptField recovers a stored field. The error reports authorization
	// failures only; an undecryptable field yields the fallback sentinel and
	// decrypted=false with a nil error.
	DecryptField(ctx context.Context, tenantID, userID uuid.UUID, field vaultDomain.EncryptedField) (plaintext string, decrypted bool, err error)

	// EncryptFile encrypts a blob with the tenant's file key.
	EncryptFile(ctx context.Context, tenantID, userID uuid.UUID, data []byte) ([]byte, error)

	// DecryptFile decrypts a blob. Fails loud on corrupt input.
	DecryptFile(ctx context.Context, tenantID, userID uuid.UUID, blob []byte) ([]byte, error)

	// ReleaseFileKey returns the tenant's raw AES file key for browser-side
	// encryption. The caller must be the owner, a principal, or a delegate.
	ReleaseFileKey(ctx context.Context, tenantID, userID uuid.UUID) ([]byte, error)
}
