package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/holograph/vault/internal/auth/domain"
	authHTTP "github.com/holograph/vault/internal/auth/http"
	tenantDomain "github.com/holograph/vault/internal/tenant/domain"
	tenantHTTPMocks "github.com/holograph/vault/internal/tenant/http/mocks"
	"github.com/holograph/vault/internal/tenant/usecase"

	apperrors "github.com/holograph/vault/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func identityMiddleware(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(
			authHTTP.WithIdentity(c.Request.Context(), &authDomain.Identity{UserID: userID}))
		c.Next()
	}
}

func newTenantRouter(handler *TenantHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(identityMiddleware(userID))
	router.POST("/v1/tenants", handler.CreateTenantHandler)
	router.GET("/v1/tenants/:id", handler.GetTenantHandler)
	router.DELETE("/v1/tenants/:id", handler.DeleteTenantHandler)
	router.POST("/v1/tenants/:id/members", handler.AddMemberHandler)
	router.DELETE("/v1/tenants/:id/members/:userId", handler.RemoveMemberHandler)
	return router
}

func TestTenantHandler_CreateTenantHandler(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		tenant := &tenantDomain.Tenant{
			ID:        uuid.Must(uuid.NewV7()),
			OwnerID:   ownerID,
			CreatedAt: time.Now().UTC(),
		}
		mockUseCase.On("Create", mock.Anything, ownerID, "Smith Family Estate").
			Return(tenant, nil)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants",
			bytes.NewBufferString(`{"name":"Smith Family Estate"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tenant.ID.String(), resp["id"])
		assert.Equal(t, ownerID.String(), resp["ownerId"])
		assert.Equal(t, "Smith Family Estate", resp["name"])
	})

	t.Run("BlankName", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants",
			bytes.NewBufferString(`{"name":"   "}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ProvisioningFailure", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		mockUseCase.On("Create", mock.Anything, ownerID, "Estate").
			Return(nil, apperrors.Wrap(apperrors.ErrInternal, "key provisioning failed"))

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants",
			bytes.NewBufferString(`{"name":"Estate"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTenantHandler_GetTenantHandler(t *testing.T) {
	tenantID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		view := &usecase.TenantView{
			Tenant: &tenantDomain.Tenant{
				ID:      tenantID,
				OwnerID: userID,
			},
			Name:      "Smith Family Estate",
			Decrypted: true,
		}
		mockUseCase.On("Get", mock.Anything, tenantID, userID).Return(view, nil)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/tenants/"+tenantID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Smith Family Estate", resp["name"])
		assert.Equal(t, true, resp["decrypted"])
	})

	t.Run("UndecryptableNameCarriesSentinel", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		view := &usecase.TenantView{
			Tenant:    &tenantDomain.Tenant{ID: tenantID, OwnerID: userID},
			Name:      "unable to decrypt",
			Decrypted: false,
		}
		mockUseCase.On("Get", mock.Anything, tenantID, userID).Return(view, nil)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/tenants/"+tenantID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unable to decrypt", resp["name"])
		assert.Equal(t, false, resp["decrypted"])
	})

	t.Run("UnknownTenantForbidden", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		mockUseCase.On("Get", mock.Anything, tenantID, userID).
			Return(nil, apperrors.ErrForbidden)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/tenants/"+tenantID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("InvalidTenantID", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/tenants/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestTenantHandler_DeleteTenantHandler(t *testing.T) {
	tenantID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		mockUseCase.On("Delete", mock.Anything, tenantID, ownerID).Return(nil)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/tenants/"+tenantID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		mockUseCase.On("Delete", mock.Anything, tenantID, ownerID).
			Return(apperrors.ErrForbidden)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/tenants/"+tenantID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestTenantHandler_AddMemberHandler(t *testing.T) {
	tenantID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	memberID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		mockUseCase.On("AddMember", mock.Anything, tenantID, ownerID, memberID, tenantDomain.RoleDelegate).
			Return(nil)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/"+tenantID.String()+"/members",
			bytes.NewBufferString(`{"userId":"`+memberID.String()+`","role":"delegate"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("OwnerRoleRejected", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/"+tenantID.String()+"/members",
			bytes.NewBufferString(`{"userId":"`+memberID.String()+`","role":"owner"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "AddMember",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DuplicateMembership", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		mockUseCase.On("AddMember", mock.Anything, tenantID, ownerID, memberID, tenantDomain.RolePrincipal).
			Return(tenantDomain.ErrMembershipExists)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/"+tenantID.String()+"/members",
			bytes.NewBufferString(`{"userId":"`+memberID.String()+`","role":"principal"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("InvalidUserID", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/"+tenantID.String()+"/members",
			bytes.NewBufferString(`{"userId":"not-a-uuid","role":"delegate"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestTenantHandler_RemoveMemberHandler(t *testing.T) {
	tenantID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	memberID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		mockUseCase.On("RemoveMember", mock.Anything, tenantID, ownerID, memberID).Return(nil)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete,
			"/v1/tenants/"+tenantID.String()+"/members/"+memberID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("OwnerNotRemovable", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		mockUseCase.On("RemoveMember", mock.Anything, tenantID, ownerID, ownerID).
			Return(tenantDomain.ErrOwnerImmutable)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete,
			"/v1/tenants/"+tenantID.String()+"/members/"+ownerID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("UnknownMembership", func(t *testing.T) {
		mockUseCase := tenantHTTPMocks.NewMockTenantUseCase(t)
		mockUseCase.On("RemoveMember", mock.Anything, tenantID, ownerID, memberID).
			Return(tenantDomain.ErrMembershipNotFound)

		router := newTenantRouter(NewTenantHandler(mockUseCase, testLogger()), ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete,
			"/v1/tenants/"+tenantID.String()+"/members/"+memberID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
