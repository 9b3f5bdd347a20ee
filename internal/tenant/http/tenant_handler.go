// Package http provides HTTP handlers for tenant lifecycle and membership
// management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/holograph/vault/internal/auth/http"
	"github.com/holograph/vault/internal/httputil"
	tenantDomain "github.com/holograph/vault/internal/tenant/domain"
	"github.com/holograph/vault/internal/tenant/http/dto"
	tenantUseCase "github.com/holograph/vault/internal/tenant/usecase"

	apperrors "github.com/holograph/vault/internal/errors"
	customValidation "github.com/holograph/vault/internal/validation"
)

// TenantHandler handles HTTP requests for tenant operations.
type TenantHandler struct {
	tenantUseCase tenantUseCase.TenantUseCase
	logger        *slog.Logger
}

// NewTenantHandler creates a new tenant handler with required dependencies.
func NewTenantHandler(useCase tenantUseCase.TenantUseCase, logger *slog.Logger) *TenantHandler {
	return &TenantHandler{
		tenantUseCase: useCase,
		logger:        logger,
	}
}

func callerIdentity(c *gin.Context) (uuid.UUID, error) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok || identity == nil {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return identity.UserID, nil
}

func tenantParam(c *gin.Context) (uuid.UUID, error) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid tenant id")
	}
	return tenantID, nil
}

// CreateTenantHandler creates a tenant owned by the caller and provisions its
// key material.
// POST /v1/tenants
// Returns 201 Created with the new tenant.
func (h *TenantHandler) CreateTenantHandler(c *gin.Context) {
	userID, err := callerIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	tenant, err := h.tenantUseCase.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedTenantResponse{
		ID:        tenant.ID.String(),
		OwnerID:   tenant.OwnerID.String(),
		Name:      req.Name,
		CreatedAt: tenant.CreatedAt,
	})
}

// GetTenantHandler returns a tenant with its name decrypted, members only.
// GET /v1/tenants/:id
// Returns 200 OK, or 403 Forbidden for non-members and unknown tenants alike.
func (h *TenantHandler) GetTenantHandler(c *gin.Context) {
	userID, err := callerIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	tenantID, err := tenantParam(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	view, err := h.tenantUseCase.Get(c.Request.Context(), tenantID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTenantViewToResponse(view))
}

// DeleteTenantHandler deletes a tenant, its key material, and its stored
// files. Owner only.
// DELETE /v1/tenants/:id
// Returns 204 No Content.
func (h *TenantHandler) DeleteTenantHandler(c *gin.Context) {
	userID, err := callerIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	tenantID, err := tenantParam(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.tenantUseCase.Delete(c.Request.Context(), tenantID, userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddMemberHandler grants a principal or delegate role. Owner only.
// POST /v1/tenants/:id/members
// Returns 201 Created.
func (h *TenantHandler) AddMemberHandler(c *gin.Context) {
	callerID, err := callerIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	tenantID, err := tenantParam(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	memberID, err := uuid.Parse(req.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"), h.logger)
		return
	}

	err = h.tenantUseCase.AddMember(c.Request.Context(), tenantID, callerID, memberID, tenantDomain.Role(req.Role))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusCreated)
}

// RemoveMemberHandler revokes a principal or delegate role. Owner only.
// DELETE /v1/tenants/:id/members/:userId
// Returns 204 No Content.
func (h *TenantHandler) RemoveMemberHandler(c *gin.Context) {
	callerID, err := callerIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	tenantID, err := tenantParam(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"), h.logger)
		return
	}

	if err := h.tenantUseCase.RemoveMember(c.Request.Context(), tenantID, callerID, memberID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
