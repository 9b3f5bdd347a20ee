package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/holograph/vault/internal/errors"
	"github.com/holograph/vault/internal/keystore"
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

const (
	rsaKeyBits   = 2048
	certValidity = 365 * 24 * time.Hour
)

// KeyProvisioner implements Provisioner on top of a KeyStore.
//
// Provisioning writes four objects under ssl-keys/<tenant>/current/: an empty
// .placeholder materializing the prefix, the self-signed certificate, the RSA
// private key, and the raw AES file key. The certificate's CommonName is the
// tenant ID; it is an identity hint only, never chain-validated.
type KeyProvisioner struct {
	keyStore keystore.KeyStore
	logger   *slog.Logger
}

// NewKeyProvisioner creates a new KeyProvisioner.
func NewKeyProvisioner(keyStore keystore.KeyStore, logger *slog.Logger) *KeyProvisioner {
	return &KeyProvisioner{
		keyStore: keyStore,
		logger:   logger,
	}
}

// Provision generates and persists a complete keyset for the tenant.
// All-or-nothing from the caller's perspective: any generation, signing, or
// persistence failure fails the operation with ErrProvisioningFailed, and the
// tenant-creation workflow must treat the tenant as not created.
func (p *KeyProvisioner) Provision(
	ctx context.Context,
	tenantID string,
) (vaultDomain.KeyArtifactPaths, error) {
	material, err := generateKeyMaterial(tenantID)
	if err != nil {
		return vaultDomain.KeyArtifactPaths{}, apperrors.Wrap(vaultDomain.ErrProvisioningFailed, err.Error())
	}
	defer material.Zero()

	paths := keystore.PathsFor(tenantID)

	// The placeholder goes first so the prefix exists even if a later upload
	// fails and the partial keyset needs cleanup by prefix.
	if err := p.keyStore.Put(ctx, paths.Placeholder, nil); err != nil {
		return vaultDomain.KeyArtifactPaths{}, apperrors.Wrap(vaultDomain.ErrProvisioningFailed, err.Error())
	}

	// The three key artifacts are independent objects; upload them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.keyStore.Put(gctx, paths.PublicKey, material.CertificatePEM)
	})
	g.Go(func() error {
		return p.keyStore.Put(gctx, paths.PrivateKey, material.PrivateKeyPEM)
	})
	g.Go(func() error {
		return p.keyStore.Put(gctx, paths.AESKey, material.FileAESKey)
	})

	if err := g.Wait(); err != nil {
		return vaultDomain.KeyArtifactPaths{}, apperrors.Wrap(vaultDomain.ErrProvisioningFailed, err.Error())
	}

	p.logger.Info("tenant keys provisioned",
		slog.String("tenant_id", tenantID),
		slog.String("prefix", keystore.TenantPrefix(tenantID)),
	)

	return vaultDomain.KeyArtifactPaths{
		PublicKeyPath:  paths.PublicKey,
		PrivateKeyPath: paths.PrivateKey,
		AESKeyPath:     paths.AESKey,
	}, nil
}

// DeleteKeys removes every key object under the tenant's prefix. Failures are
// logged but not fatal: the tenant record is being removed regardless.
func (p *KeyProvisioner) DeleteKeys(ctx context.Context, tenantID string) error {
	if err := p.keyStore.DeletePrefix(ctx, keystore.TenantPrefix(tenantID)); err != nil {
		p.logger.Warn("incomplete tenant key deletion",
			slog.String("tenant_id", tenantID),
			slog.Any("error", err),
		)
		return err
	}

	p.logger.Info("tenant keys deleted", slog.String("tenant_id", tenantID))
	return nil
}

// FileKey reads the tenant's raw AES file key from the keystore.
func (p *KeyProvisioner) FileKey(ctx context.Context, tenantID string) ([]byte, error) {
	key, err := p.keyStore.Get(ctx, keystore.PathsFor(tenantID).AESKey)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, vaultDomain.ErrKeyNotFound
		}
		return nil, err
	}
	if len(key) != aesKeySize {
		return nil, vaultDomain.ErrDecryptionFailed
	}
	return key, nil
}

// generateKeyMaterial creates the RSA keypair, self-signed certificate, and
// AES file key for a tenant.
func generateKeyMaterial(tenantID string) (*vaultDomain.TenantKeyMaterial, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keypair: %w", err)
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("failed to generate certificate serial: %w", err)
	}

	now := time.Now().UTC()
	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject:      pkix.Name{CommonName: tenantID},
		Issuer:       pkix.Name{CommonName: tenantID},
		NotBefore:    now,
		NotAfter:     now.Add(certValidity),
		KeyUsage:     x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign certificate: %w", err)
	}

	fileAESKey, err := randomBytes(aesKeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate AES file key: %w", err)
	}

	return &vaultDomain.TenantKeyMaterial{
		TenantID:       tenantID,
		CertificatePEM: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER}),
		PrivateKeyPEM: pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
		}),
		FileAESKey: fileAESKey,
		CreatedAt:  now,
	}, nil
}
