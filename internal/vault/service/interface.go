// Package service implements the per-tenant cryptographic operations: key
// provisioning, hybrid field encryption, and file encryption. All services are
// stateless; every operation is pure given its keystore inputs, so instances
// are safe for concurrent use.
package service

import (
	"context"

	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// Provisioner manages the lifecycle of a tenant's key material in the keystore.
type Provisioner interface {
	// Provision generates a fresh keyset (RSA-2048 keypair wrapped in a
	// self-signed certificate, plus a 32-byte AES file key) and persists all
	// artifacts. Any generation or persistence failure fails the whole
	// operation with ErrProvisioningFailed.
	//
	// Provision is not idempotent: a second call for the same tenant stores a
	// second keyset, silently replacing the first. Callers must not retry
	// concurrently for the same tenant.
	Provision(ctx context.Context, tenantID string) (vaultDomain.KeyArtifactPaths, error)

	// DeleteKeys removes the tenant's entire key prefix, best effort.
	// Individual object failures are logged, never fatal.
	DeleteKeys(ctx context.Context, tenantID string) error

	// FileKey reads the tenant's raw 32-byte AES file key.
	// Returns ErrKeyNotFound if the tenant has no provisioned keyset.
	FileKey(ctx context.Context, tenantID string) ([]byte, error)
}

// FieldCipher encrypts and decrypts short text fields with hybrid encryption.
type FieldCipher interface {
	// EncryptField encrypts plaintext under a fresh one-time AES-256-CBC key,
	// wraps that key under the tenant's RSA public key, and returns the
	// base64-encoded triple. Returns ErrKeyNotFound when the tenant's public
	// key is absent; encryption is never silently skipped.
	EncryptField(ctx context.Context, tenantID, plaintext string) (vaultDomain.EncryptedField, error)

	// DecryptField recovers the plaintext from a stored triple. On any failure
	// it returns (FieldDecryptionFallback, false) rather than an error, so a
	// single corrupt field cannot break listing a collection of records.
	DecryptField(ctx context.Context, tenantID string, field vaultDomain.EncryptedField) (string, bool)
}

// FileCipher encrypts and decrypts file blobs with the tenant's persistent
// AES file key. One symmetric key covers all files in the tenant; only the IV
// is fresh per file.
type FileCipher interface {
	// EncryptFile returns iv || AES-256-CBC(plaintext) as a single buffer,
	// with a freshly random 16-byte IV even for identical content.
	EncryptFile(ctx context.Context, tenantID string, plaintext []byte) ([]byte, error)

	// DecryptFile splits the 16-byte IV prefix and decrypts the remainder.
	// Returns ErrKeyNotFound if the key is absent and ErrDecryptionFailed for
	// malformed or truncated blobs. This path fails loud: it backs direct
	// downloads, and a corrupted file must surface an explicit error.
	DecryptFile(ctx context.Context, tenantID string, blob []byte) ([]byte, error)
}
