package dto

import (
	"time"

	"github.com/holograph/vault/internal/tenant/usecase"
)

// TenantResponse is the API representation of a tenant with its display name
// decrypted for the caller.
type TenantResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Decrypted bool      `json:"decrypted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MapTenantViewToResponse converts a tenant view to its API representation.
func MapTenantViewToResponse(view *usecase.TenantView) TenantResponse {
	return TenantResponse{
		ID:        view.Tenant.ID.String(),
		OwnerID:   view.Tenant.OwnerID.String(),
		Name:      view.Name,
		Decrypted: view.Decrypted,
		CreatedAt: view.Tenant.CreatedAt,
		UpdatedAt: view.Tenant.UpdatedAt,
	}
}

// CreatedTenantResponse is returned when a tenant is created: the name echoes
// the plaintext the caller supplied, so no decryption round trip is needed.
type CreatedTenantResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
