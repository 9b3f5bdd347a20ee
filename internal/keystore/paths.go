package keystore

import "fmt"

// Key material object layout inside the keystore bucket:
//
//	ssl-keys/<tenantID>/current/public.crt   - self-signed certificate (field wrapping)
//	ssl-keys/<tenantID>/current/private.key  - RSA private key (field unwrapping)
//	ssl-keys/<tenantID>/current/aes.key      - 32 raw bytes (file encryption)
//	ssl-keys/<tenantID>/current/.placeholder - empty object materializing the prefix
//
// The "current" segment reserves room for key rotation; exactly one generation
// exists per tenant today.
const (
	basePrefix      = "ssl-keys"
	currentVersion  = "current"
	publicKeyFile   = "public.crt"
	privateKeyFile  = "private.key"
	aesKeyFile      = "aes.key"
	placeholderFile = ".placeholder"
)

// KeyPaths holds the deterministic object paths for one tenant's key material.
type KeyPaths struct {
	PublicKey   string
	PrivateKey  string
	AESKey      string
	Placeholder string
}

// PathsFor returns the key material paths for the given tenant.
func PathsFor(tenantID string) KeyPaths {
	base := fmt.Sprintf("%s/%s/%s", basePrefix, tenantID, currentVersion)
	return KeyPaths{
		PublicKey:   base + "/" + publicKeyFile,
		PrivateKey:  base + "/" + privateKeyFile,
		AESKey:      base + "/" + aesKeyFile,
		Placeholder: base + "/" + placeholderFile,
	}
}

// TenantPrefix returns the storage prefix covering every key object the tenant
// owns, including future versions. Used for deletion.
func TenantPrefix(tenantID string) string {
	return fmt.Sprintf("%s/%s/", basePrefix, tenantID)
}
