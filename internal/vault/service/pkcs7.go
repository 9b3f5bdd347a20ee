package service

import (
	"crypto/aes"
	"errors"
)

// pkcs7Pad appends PKCS#7 padding, bringing data to a whole number of AES
// blocks. A full block of padding is added when the input is already aligned.
func pkcs7Pad(data []byte) []byte {
	padLen := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad strips PKCS#7 padding. Returns an error for empty, unaligned, or
// inconsistently padded input. CBC offers no authentication, so bad padding is
// the primary signal of a wrong key or corrupted ciphertext.
func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, errors.New("invalid padded length")
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aes.BlockSize || padLen > len(data) {
		return nil, errors.New("invalid padding length")
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, errors.New("inconsistent padding bytes")
		}
	}

	return data[:len(data)-padLen], nil
}
