// Package service implements identity verification for incoming requests.
package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/holograph/vault/internal/auth/domain"

	apperrors "github.com/holograph/vault/internal/errors"
)

// IdentityVerifier resolves a bearer token to an authenticated identity.
// Production deployments back this with the session service; the static
// verifier below covers development and tests.
type IdentityVerifier interface {
	// Verify returns the identity for a bearer token, or ErrUnauthorized.
	Verify(ctx context.Context, token string) (*authDomain.Identity, error)
}

// StaticTokenVerifier accepts tokens of the form "<secret>:<user uuid>" and
// checks the secret against a single configured value. It stands in for the
// real session service in development; the user portion is trusted as-is, so
// it must never run in production.
type StaticTokenVerifier struct {
	secret string
}

// NewStaticTokenVerifier creates a StaticTokenVerifier with the given secret.
func NewStaticTokenVerifier(secret string) *StaticTokenVerifier {
	return &StaticTokenVerifier{secret: secret}
}

// Verify checks the shared secret in constant time and parses the user ID.
func (v *StaticTokenVerifier) Verify(_ context.Context, token string) (*authDomain.Identity, error) {
	if v.secret == "" {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "static token verification is not configured")
	}

	secret, userPart, found := strings.Cut(token, ":")
	if !found {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "malformed token")
	}

	if subtle.ConstantTimeCompare([]byte(secret), []byte(v.secret)) != 1 {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token")
	}

	userID, err := uuid.Parse(userPart)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid user id in token")
	}

	return &authDomain.Identity{UserID: userID}, nil
}
