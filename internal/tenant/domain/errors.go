package domain

import (
	"github.com/holograph/vault/internal/errors"
)

var (
	// ErrTenantNotFound indicates the requested tenant does not exist.
	ErrTenantNotFound = errors.Wrap(errors.ErrNotFound, "tenant not found")

	// ErrMembershipExists indicates the user already holds a role in the tenant.
	ErrMembershipExists = errors.Wrap(errors.ErrConflict, "membership already exists")

	// ErrMembershipNotFound indicates the user holds no role in the tenant.
	ErrMembershipNotFound = errors.Wrap(errors.ErrNotFound, "membership not found")

	// ErrInvalidRole indicates an unknown membership role.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid membership role")

	// ErrOwnerImmutable indicates an attempt to add or remove the owner role
	// through membership management. Ownership is fixed at tenant creation.
	ErrOwnerImmutable = errors.Wrap(errors.ErrInvalidInput, "owner membership cannot be modified")
)
