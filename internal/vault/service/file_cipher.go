package service

import (
	"context"
	"crypto/aes"
	"log/slog"

	apperrors "github.com/holograph/vault/internal/errors"
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// BlobFileCipher implements FileCipher using the tenant's persistent AES file
// key. Blob layout is iv (16 bytes) || AES-256-CBC(plaintext, fileKey, iv) —
// the same format the browser-side cipher produces, so server- and
// client-encrypted files decrypt identically.
type BlobFileCipher struct {
	provisioner Provisioner
	logger      *slog.Logger
}

// NewBlobFileCipher creates a new BlobFileCipher. The provisioner supplies
// the tenant's raw AES file key.
func NewBlobFileCipher(provisioner Provisioner, logger *slog.Logger) *BlobFileCipher {
	return &BlobFileCipher{
		provisioner: provisioner,
		logger:      logger,
	}
}

// EncryptFile encrypts a file buffer for the tenant.
func (c *BlobFileCipher) EncryptFile(
	ctx context.Context,
	tenantID string,
	plaintext []byte,
) ([]byte, error) {
	key, err := c.provisioner.FileKey(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	defer vaultDomain.Zero(key)

	// Fresh IV per file, even for identical content, so re-uploads never
	// produce correlatable ciphertext.
	iv, err := randomBytes(aes.BlockSize)
	if err != nil {
		return nil, apperrors.Wrap(err, "file encryption")
	}

	ciphertext, err := aesCBCEncrypt(key, iv, plaintext)
	if err != nil {
		return nil, apperrors.Wrap(err, "file encryption")
	}

	blob := make([]byte, 0, len(iv)+len(ciphertext))
	blob = append(blob, iv...)
	blob = append(blob, ciphertext...)

	return blob, nil
}

// DecryptFile decrypts a stored blob for the tenant. Unlike field decryption
// there is no graceful degrade here: a blob that cannot be decrypted is a
// fatal, user-visible error on the download.
func (c *BlobFileCipher) DecryptFile(
	ctx context.Context,
	tenantID string,
	blob []byte,
) ([]byte, error) {
	if len(blob) < aes.BlockSize {
		return nil, apperrors.Wrap(vaultDomain.ErrDecryptionFailed, "blob shorter than one IV")
	}

	key, err := c.provisioner.FileKey(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	defer vaultDomain.Zero(key)

	iv := blob[:aes.BlockSize]
	ciphertext := blob[aes.BlockSize:]

	plaintext, err := aesCBCDecrypt(key, iv, ciphertext)
	if err != nil {
		c.logger.Debug("file decryption failed",
			slog.String("tenant_id", tenantID),
			slog.Any("error", err),
		)
		return nil, vaultDomain.ErrDecryptionFailed
	}

	return plaintext, nil
}
