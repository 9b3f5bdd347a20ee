package service

import (
	"context"
	"crypto/aes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/holograph/vault/internal/errors"
	"github.com/holograph/vault/internal/keystore"
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// HybridFieldCipher implements FieldCipher using AES-256-CBC for the field
// value and RSA-2048 OAEP (SHA-256) for wrapping the one-time AES key.
//
// Key material is fetched from the keystore per operation: the public key
// (inside the tenant's certificate) for encryption, the private key for
// decryption. A fresh AES key and IV are generated for every encrypt call and
// never reused across fields.
type HybridFieldCipher struct {
	keyStore keystore.KeyStore
	logger   *slog.Logger
}

// NewHybridFieldCipher creates a new HybridFieldCipher.
func NewHybridFieldCipher(keyStore keystore.KeyStore, logger *slog.Logger) *HybridFieldCipher {
	return &HybridFieldCipher{
		keyStore: keyStore,
		logger:   logger,
	}
}

// EncryptField encrypts a plaintext field value for the tenant.
func (c *HybridFieldCipher) EncryptField(
	ctx context.Context,
	tenantID, plaintext string,
) (vaultDomain.EncryptedField, error) {
	publicKey, err := c.fetchPublicKey(ctx, tenantID)
	if err != nil {
		return vaultDomain.EncryptedField{}, err
	}

	aesKey, err := randomBytes(aesKeySize)
	if err != nil {
		return vaultDomain.EncryptedField{}, apperrors.Wrap(err, "field encryption")
	}
	defer vaultDomain.Zero(aesKey)

	iv, err := randomBytes(aes.BlockSize)
	if err != nil {
		return vaultDomain.EncryptedField{}, apperrors.Wrap(err, "field encryption")
	}

	ciphertext, err := aesCBCEncrypt(aesKey, iv, []byte(plaintext))
	if err != nil {
		return vaultDomain.EncryptedField{}, apperrors.Wrap(err, "field encryption")
	}

	wrappedKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, aesKey, nil)
	if err != nil {
		return vaultDomain.EncryptedField{}, apperrors.Wrap(err, "failed to wrap field key")
	}

	return vaultDomain.EncryptedField{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		WrappedKey: base64.StdEncoding.EncodeToString(wrappedKey),
		IV:         base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// DecryptField recovers the plaintext of a stored triple. The degrade-graceful
// contract: every failure path returns the fallback sentinel with ok=false,
// logged at debug level, never an error.
func (c *HybridFieldCipher) DecryptField(
	ctx context.Context,
	tenantID string,
	field vaultDomain.EncryptedField,
) (string, bool) {
	plaintext, err := c.decryptField(ctx, tenantID, field)
	if err != nil {
		c.logger.Debug("field decryption failed",
			slog.String("tenant_id", tenantID),
			slog.Any("error", err),
		)
		return vaultDomain.FieldDecryptionFallback, false
	}
	return plaintext, true
}

func (c *HybridFieldCipher) decryptField(
	ctx context.Context,
	tenantID string,
	field vaultDomain.EncryptedField,
) (string, error) {
	if !field.Complete() {
		return "", errors.New("incomplete encrypted field triple")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(field.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("malformed ciphertext: %w", err)
	}
	wrappedKey, err := base64.StdEncoding.DecodeString(field.WrappedKey)
	if err != nil {
		return "", fmt.Errorf("malformed wrapped key: %w", err)
	}
	iv, err := base64.StdEncoding.DecodeString(field.IV)
	if err != nil {
		return "", fmt.Errorf("malformed iv: %w", err)
	}

	privateKey, err := c.fetchPrivateKey(ctx, tenantID)
	if err != nil {
		return "", err
	}

	aesKey, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, privateKey, wrappedKey, nil)
	if err != nil {
		return "", fmt.Errorf("failed to unwrap field key: %w", err)
	}
	defer vaultDomain.Zero(aesKey)

	plaintext, err := aesCBCDecrypt(aesKey, iv, ciphertext)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// fetchPublicKey reads and parses the tenant's certificate from the keystore.
func (c *HybridFieldCipher) fetchPublicKey(ctx context.Context, tenantID string) (*rsa.PublicKey, error) {
	certPEM, err := c.keyStore.Get(ctx, keystore.PathsFor(tenantID).PublicKey)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, vaultDomain.ErrKeyNotFound
		}
		return nil, err
	}

	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, apperrors.Wrap(vaultDomain.ErrDecryptionFailed, "malformed tenant certificate")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, apperrors.Wrap(vaultDomain.ErrDecryptionFailed, "failed to parse tenant certificate")
	}

	publicKey, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, apperrors.Wrap(vaultDomain.ErrDecryptionFailed, "tenant certificate does not carry an RSA key")
	}

	return publicKey, nil
}

// fetchPrivateKey reads and parses the tenant's RSA private key from the keystore.
func (c *HybridFieldCipher) fetchPrivateKey(ctx context.Context, tenantID string) (*rsa.PrivateKey, error) {
	keyPEM, err := c.keyStore.Get(ctx, keystore.PathsFor(tenantID).PrivateKey)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, vaultDomain.ErrKeyNotFound
		}
		return nil, err
	}

	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, errors.New("malformed tenant private key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tenant private key: %w", err)
	}

	return privateKey, nil
}
