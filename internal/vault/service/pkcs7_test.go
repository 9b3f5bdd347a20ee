package service

import (
	"bytes"
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPKCS7RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "Empty", data: []byte{}},
		{name: "OneByte", data: []byte{0x42}},
		{name: "FifteenBytes", data: bytes.Repeat([]byte{0x01}, 15)},
		{name: "ExactBlock", data: bytes.Repeat([]byte{0x02}, 16)},
		{name: "MultipleBlocks", data: bytes.Repeat([]byte{0x03}, 40)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			padded := pkcs7Pad(tc.data)
			assert.Zero(t, len(padded)%aes.BlockSize)
			assert.Greater(t, len(padded), len(tc.data), "padding always adds at least one byte")

			unpadded, err := pkcs7Unpad(padded)
			require.NoError(t, err)
			assert.Equal(t, tc.data, unpadded)
		})
	}
}

func TestPKCS7Unpad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "Empty", data: []byte{}},
		{name: "Unaligned", data: bytes.Repeat([]byte{0x01}, 17)},
		{name: "ZeroPadByte", data: append(bytes.Repeat([]byte{0x01}, 15), 0x00)},
		{name: "PadByteTooLarge", data: append(bytes.Repeat([]byte{0x01}, 15), 0x11)},
		{name: "InconsistentPadding", data: append(bytes.Repeat([]byte{0x01}, 14), 0x03, 0x03)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pkcs7Unpad(tc.data)
			assert.Error(t, err)
		})
	}
}

func TestAESCBC_KeyAndIVValidation(t *testing.T) {
	_, err := aesCBCEncrypt(make([]byte, 16), make([]byte, 16), []byte("x"))
	assert.Error(t, err, "short key must be rejected")

	_, err = aesCBCEncrypt(make([]byte, 32), make([]byte, 12), []byte("x"))
	assert.Error(t, err, "short iv must be rejected")

	_, err = aesCBCDecrypt(make([]byte, 32), make([]byte, 16), []byte("not a block"))
	assert.Error(t, err, "unaligned ciphertext must be rejected")
}
