// Package usecase implements business logic for tenant lifecycle and
// membership management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/holograph/vault/internal/tenant/domain"
)

// TenantRepository defines persistence operations for tenants and memberships.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetMembers(ctx context.Context, tenantID uuid.UUID) (*domain.Members, error)
	AddMembership(ctx context.Context, membership *domain.Membership) error
	RemoveMembership(ctx context.Context, tenantID, userID uuid.UUID) error
}

// TenantView is a tenant with its display name decrypted for the caller.
// Decrypted is false when the name could not be recovered and Name carries
// the fallback sentinel.
type TenantView struct {
	Tenant    *domain.Tenant
	Name      string
	Decrypted bool
}

// TenantUseCase defines the tenant lifecycle operations.
type TenantUseCase interface {
	// Create inserts the tenant and provisions its key material. The database
	// work runs inside a transaction: if key provisioning fails, the tenant
	// row is rolled back and no half-provisioned tenant becomes visible.
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Tenant, error)

	// Get returns the tenant with its name decrypted, for members only.
	Get(ctx context.Context, tenantID, userID uuid.UUID) (*TenantView, error)

	// Delete removes the tenant (owner only), then best-effort deletes its
	// key material and stored file blobs.
	Delete(ctx context.Context, tenantID, userID uuid.UUID) error

	// AddMember grants a principal or delegate role (owner only).
	AddMember(ctx context.Context, tenantID, callerID, userID uuid.UUID, role domain.Role) error

	// RemoveMember revokes a principal or delegate role (owner only).
	RemoveMember(ctx context.Context, tenantID, callerID, userID uuid.UUID) error
}
