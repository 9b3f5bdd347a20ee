// Package domain defines the core models for the per-tenant hybrid encryption
// subsystem.
//
// Every tenant owns an RSA-2048 keypair plus a persistent 256-bit AES file key,
// all generated at tenant creation and held in object storage. Short database
// fields are protected with hybrid encryption (a one-time AES-256-CBC key
// wrapped under the tenant's RSA public key); uploaded files are protected with
// the tenant's persistent AES key.
package domain

// EncryptedField is the at-rest form of a sensitive text attribute (document
// name, institution, notes, ...). Each value carries its own one-time key
// material: the plaintext is AES-256-CBC encrypted under a fresh key, and that
// key is RSA-wrapped under the owning tenant's public key.
//
// All three sub-fields are present together or the field is absent entirely;
// a triple is meaningless without the matching tenant's private key and is
// never reusable across tenants.
type EncryptedField struct {
	// Ciphertext is the base64-encoded AES-256-CBC output.
	Ciphertext string `json:"ciphertext"`
	// WrappedKey is the base64-encoded one-time AES key, RSA-encrypted under
	// the tenant's public key.
	WrappedKey string `json:"wrappedKey"`
	// IV is the base64-encoded 16-byte initialization vector.
	IV string `json:"iv"`
}

// IsZero reports whether the field is entirely absent.
func (f EncryptedField) IsZero() bool {
	return f.Ciphertext == "" && f.WrappedKey == "" && f.IV == ""
}

// Complete reports whether all three sub-fields are present. A partially
// populated triple is invalid and treated as undecryptable.
func (f EncryptedField) Complete() bool {
	return f.Ciphertext != "" && f.WrappedKey != "" && f.IV != ""
}

// FieldDecryptionFallback is the fixed string rendered in place of a field
// value that could not be decrypted. Field decryption degrades to this
// sentinel instead of failing so one corrupt record never breaks a list view.
const FieldDecryptionFallback = "unable to decrypt"
