package domain

import "time"

// TenantKeyMaterial is the full keyset provisioned for one tenant. The PEM
// fields and the raw AES key live in object storage, never in the database.
//
// PrivateKeyPEM must never leave the server-side trust boundary. FileAESKey
// may be released to an authorized client for browser-side file encryption,
// but only as raw bytes over an authenticated channel.
type TenantKeyMaterial struct {
	TenantID string
	// CertificatePEM is a self-signed X.509 certificate carrying the RSA-2048
	// public key. CommonName is the tenant ID; the certificate is an identity
	// hint only, with no chain validation or revocation semantics.
	CertificatePEM []byte
	// PrivateKeyPEM is the PKCS#1 PEM encoding of the RSA-2048 private key.
	PrivateKeyPEM []byte
	// FileAESKey is the 32-byte symmetric key covering all of the tenant's
	// file blobs.
	FileAESKey []byte
	CreatedAt  time.Time
}

// KeyArtifactPaths names the storage locations of a provisioned keyset,
// returned to the tenant-creation workflow for bookkeeping.
type KeyArtifactPaths struct {
	PublicKeyPath  string `json:"publicKeyPath"`
	PrivateKeyPath string `json:"privateKeyPath"`
	AESKeyPath     string `json:"aesKeyPath"`
}

// Zero wipes the sensitive byte fields in place.
func (m *TenantKeyMaterial) Zero() {
	Zero(m.PrivateKeyPEM)
	Zero(m.FileAESKey)
}
