// Package domain defines the tenant ("Holograph") and membership models.
//
// A tenant is one estate-planning vault. The owner created it; principals are
// the people whose estate it documents; delegates hold limited read access.
// All three roles may retrieve the tenant's raw AES file key for browser-side
// file encryption, but only the relational layer defined here decides who
// holds which role.
package domain

import (
	"time"

	"github.com/google/uuid"

	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// Role is a membership role within a tenant.
type Role string

const (
	// RoleOwner is the user who created the tenant.
	RoleOwner Role = "owner"
	// RolePrincipal is a person the vault is about, with full read access.
	RolePrincipal Role = "principal"
	// RoleDelegate is a secondary user with limited viewing rights.
	RoleDelegate Role = "delegate"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RolePrincipal, RoleDelegate:
		return true
	}
	return false
}

// Tenant represents one vault. The display name is stored encrypted; only the
// key material in the keystore can recover it.
type Tenant struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      vaultDomain.EncryptedField
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership links a user to a tenant with a role.
type Membership struct {
	TenantID  uuid.UUID
	UserID    uuid.UUID
	Role      Role
	CreatedAt time.Time
}

// Members is the full membership of a tenant, as consumed by the key access
// gate: access to the raw AES key is granted to the owner, any principal, or
// any delegate, and nobody else.
type Members struct {
	OwnerID      uuid.UUID
	PrincipalIDs []uuid.UUID
	DelegateIDs  []uuid.UUID
}

// Contains reports whether userID holds any role in the tenant.
func (m Members) Contains(userID uuid.UUID) bool {
	if m.OwnerID == userID {
		return true
	}
	for _, id := range m.PrincipalIDs {
		if id == userID {
			return true
		}
	}
	for _, id := range m.DelegateIDs {
		if id == userID {
			return true
		}
	}
	return false
}
