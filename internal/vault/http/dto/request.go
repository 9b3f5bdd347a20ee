// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/holograph/vault/internal/validation"
)

// EncryptFieldRequest contains the plaintext to encrypt for a tenant.
type EncryptFieldRequest struct {
	Plaintext string `json:"plaintext"`
}

// Validate checks if the encrypt field request is valid. Empty plaintext is
// allowed: clearing a stored value still produces a valid triple.
func (r *EncryptFieldRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			validation.Length(0, 65536),
		),
	)
}

// DecryptFieldRequest contains the encrypted triple to decrypt.
type DecryptFieldRequest struct {
	Ciphertext string `json:"ciphertext"`
	WrappedKey string `json:"wrappedKey"`
	IV         string `json:"iv"`
}

// Validate checks if the decrypt field request is valid.
func (r *DecryptFieldRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.WrappedKey,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.IV,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// EncryptFileRequest contains a base64-encoded blob to encrypt server side.
type EncryptFileRequest struct {
	Data string `json:"data"`
}

// Validate checks if the encrypt file request is valid.
func (r *EncryptFileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Data,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// DecryptFileRequest contains a base64-encoded iv||ciphertext blob.
type DecryptFileRequest struct {
	Blob string `json:"blob"`
}

// Validate checks if the decrypt file request is valid.
func (r *DecryptFileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Blob,
			validation.Required,
			customValidation.Base64,
		),
	)
}
