// Package dto defines request and response payloads for tenant endpoints.
package dto

import (
	"github.com/jellydator/validation"

	customValidation "github.com/holograph/vault/internal/validation"
)

// CreateTenantRequest is the payload for creating a tenant.
type CreateTenantRequest struct {
	Name string `json:"name"`
}

// Validate validates the create tenant request.
func (r CreateTenantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 256),
			customValidation.NotBlank,
		),
	)
}

// AddMemberRequest is the payload for granting a membership role.
type AddMemberRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Validate validates the add member request.
func (r AddMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.UUID,
		),
		validation.Field(&r.Role,
			validation.Required,
			customValidation.MembershipRole,
		),
	)
}
