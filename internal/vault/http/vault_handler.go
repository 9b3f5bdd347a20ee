// Package http provides HTTP handlers for the tenant encryption operations:
// field encryption, server-side file encryption, and raw key release.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/holograph/vault/internal/auth/http"
	"github.com/holograph/vault/internal/httputil"
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
	"github.com/holograph/vault/internal/vault/http/dto"
	vaultUseCase "github.com/holograph/vault/internal/vault/usecase"

	apperrors "github.com/holograph/vault/internal/errors"
	customValidation "github.com/holograph/vault/internal/validation"
)

// VaultHandler handles HTTP requests for encryption operations.
type VaultHandler struct {
	vaultUseCase vaultUseCase.VaultUseCase
	logger       *slog.Logger
}

// NewVaultHandler creates a new vault handler with required dependencies.
func NewVaultHandler(useCase vaultUseCase.VaultUseCase, logger *slog.Logger) *VaultHandler {
	return &VaultHandler{
		vaultUseCase: useCase,
		logger:       logger,
	}
}

// requestIdentity extracts the tenant ID from the URL and the authenticated
// user from the request context.
func requestIdentity(c *gin.Context) (tenantID, userID uuid.UUID, err error) {
	tenantID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid tenant id")
	}

	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok || identity == nil {
		return uuid.Nil, uuid.Nil, apperrors.ErrUnauthorized
	}

	return tenantID, identity.UserID, nil
}

// EncryptFieldHandler encrypts a text field for a tenant.
// POST /v1/tenants/:id/fields/encrypt
// Returns 200 OK with the ciphertext/wrappedKey/iv triple.
func (h *VaultHandler) EncryptFieldHandler(c *gin.Context) {
	tenantID, userID, err := requestIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.EncryptFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	field, err := h.vaultUseCase.EncryptField(c.Request.Context(), tenantID, userID, req.Plaintext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEncryptedFieldToResponse(field))
}

// DecryptFieldHandler decrypts a stored triple for a tenant.
// POST /v1/tenants/:id/fields/decrypt
// Returns 200 OK with the plaintext, or the fallback sentinel with
// decrypted=false when the triple cannot be recovered.
func (h *VaultHandler) DecryptFieldHandler(c *gin.Context) {
	tenantID, userID, err := requestIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.DecryptFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	field := vaultDomain.EncryptedField{
		Ciphertext: req.Ciphertext,
		WrappedKey: req.WrappedKey,
		IV:         req.IV,
	}

	plaintext, decrypted, err := h.vaultUseCase.DecryptField(c.Request.Context(), tenantID, userID, field)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptFieldResponse{
		Plaintext: plaintext,
		Decrypted: decrypted,
	})
}

// EncryptFileHandler encrypts a blob server side.
// POST /v1/tenants/:id/files/encrypt
// Returns 200 OK with the base64-encoded iv||ciphertext blob.
func (h *VaultHandler) EncryptFileHandler(c *gin.Context) {
	tenantID, userID, err := requestIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.EncryptFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 data: %w", err), h.logger)
		return
	}

	blob, err := h.vaultUseCase.EncryptFile(c.Request.Context(), tenantID, userID, data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptFileResponse{
		Blob: base64.StdEncoding.EncodeToString(blob),
	})
}

// DecryptFileHandler decrypts an iv||ciphertext blob server side.
// POST /v1/tenants/:id/files/decrypt
// Returns 200 OK with the base64-encoded plaintext, or 422 for corrupt blobs.
func (h *VaultHandler) DecryptFileHandler(c *gin.Context) {
	tenantID, userID, err := requestIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.DecryptFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	blob, err := base64.StdEncoding.DecodeString(req.Blob)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 blob: %w", err), h.logger)
		return
	}

	data, err := h.vaultUseCase.DecryptFile(c.Request.Context(), tenantID, userID, blob)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptFileResponse{
		Data: base64.StdEncoding.EncodeToString(data),
	})
}

// ReleaseKeyHandler returns the tenant's raw AES file key to an authorized
// member for browser-side encryption.
// GET /v1/tenants/:id/aes-key
// Returns 200 OK with the raw key bytes as application/octet-stream. The
// response must never be cached: it is key material.
func (h *VaultHandler) ReleaseKeyHandler(c *gin.Context) {
	tenantID, userID, err := requestIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	key, err := h.vaultUseCase.ReleaseFileKey(c.Request.Context(), tenantID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/octet-stream", key)
}
