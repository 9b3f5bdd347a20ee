package dto

import (
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// EncryptedFieldResponse carries the encrypted triple back to the caller.
type EncryptedFieldResponse struct {
	Ciphertext string `json:"ciphertext"`
	WrappedKey string `json:"wrappedKey"`
	IV         string `json:"iv"`
}

// MapEncryptedFieldToResponse converts a domain triple to an API response.
func MapEncryptedFieldToResponse(field vaultDomain.EncryptedField) EncryptedFieldResponse {
	return EncryptedFieldResponse{
		Ciphertext: field.Ciphertext,
		WrappedKey: field.WrappedKey,
		IV:         field.IV,
	}
}

// DecryptFieldResponse carries a decrypted field. Decrypted is false when
// the plaintext could not be recovered and Plaintext holds the fallback
// sentinel.
type DecryptFieldResponse struct {
	Plaintext string `json:"plaintext"`
	Decrypted bool   `json:"decrypted"`
}

// EncryptFileResponse carries a server-side encrypted blob, base64 encoded.
type EncryptFileResponse struct {
	Blob string `json:"blob"`
}

// DecryptFileResponse carries decrypted blob content, base64 encoded.
type DecryptFileResponse struct {
	Data string `json:"data"`
}
