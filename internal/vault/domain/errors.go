package domain

import (
	"github.com/holograph/vault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so
// handlers can map them to HTTP status codes without inspecting raw crypto
// primitive failures. Primitive errors (bad padding, malformed base64, wrong
// key length) are caught at the service boundary and re-raised as one of
// these kinds; they must never leak to the API layer.
var (
	// ErrKeyNotFound indicates a tenant's key material is absent from the
	// keystore, either because provisioning never completed or the tenant was
	// deleted. Field encryption surfaces it; field decryption degrades to the
	// display sentinel instead.
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "tenant key material not found")

	// ErrDecryptionFailed indicates malformed ciphertext, a wrong key, or a
	// padding failure. For fields this is swallowed into the display sentinel;
	// for files it is fatal to the request, since a corrupted file must not
	// silently present as empty.
	//
	// The specific cause is not disclosed to avoid leaking information that
	// could aid an attacker.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrProvisioningFailed indicates key generation, certificate signing, or
	// artifact persistence failed during tenant key provisioning. Fatal to
	// tenant creation; no partial keyset is ever exposed as ready.
	ErrProvisioningFailed = errors.Wrap(errors.ErrInternal, "key provisioning failed")
)
