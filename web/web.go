// Package web embeds browser assets served by the API: the client-side
// encryption script used for browser-side file encryption.
package web

import (
	_ "embed"
)

// EncryptionJS is the browser-side AES-CBC encryption helper. It is served
// verbatim at /static/encryption.js.
//
//go:embed static/encryption.js
var EncryptionJS []byte
