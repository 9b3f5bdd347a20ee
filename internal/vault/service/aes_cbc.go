package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

// aesKeySize is the key length for AES-256 in bytes.
const aesKeySize = 32

// aesCBCEncrypt encrypts plaintext with AES-256-CBC and PKCS#7 padding.
// The key must be 32 bytes and the IV exactly one AES block.
func aesCBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	if len(key) != aesKeySize {
		return nil, errors.New("key must be exactly 32 bytes")
	}
	if len(iv) != aes.BlockSize {
		return nil, errors.New("iv must be exactly 16 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return ciphertext, nil
}

// aesCBCDecrypt decrypts AES-256-CBC ciphertext and strips the PKCS#7 padding.
func aesCBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	if len(key) != aesKeySize {
		return nil, errors.New("key must be exactly 32 bytes")
	}
	if len(iv) != aes.BlockSize {
		return nil, errors.New("iv must be exactly 16 bytes")
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.New("ciphertext is not a whole number of blocks")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext)
}

// randomBytes returns n cryptographically random bytes.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
