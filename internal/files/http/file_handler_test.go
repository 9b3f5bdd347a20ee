package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
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
	filesDomain "github.com/holograph/vault/internal/files/domain"
	fileHTTPMocks "github.com/holograph/vault/internal/files/http/mocks"
	"github.com/holograph/vault/internal/files/usecase"

	apperrors "github.com/holograph/vault/internal/errors"
)

const testMaxUploadSize = 1 << 20

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

func newFileRouter(handler *FileHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(identityMiddleware(userID))
	router.POST("/v1/tenants/:id/files", handler.UploadFileHandler)
	router.GET("/v1/tenants/:id/files", handler.ListFilesHandler)
	router.GET("/v1/tenants/:id/files/:fileId", handler.DownloadFileHandler)
	router.DELETE("/v1/tenants/:id/files/:fileId", handler.DeleteFileHandler)
	return router
}

// multipartUpload builds a multipart body with a file part and optional extra
// form fields.
func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestFileHandler_UploadFileHandler(t *testing.T) {
	tenantID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		record := &filesDomain.FileRecord{
			ID:          uuid.Must(uuid.NewV7()),
			TenantID:    tenantID,
			Section:     "tax_documents",
			Size:        1024,
			ContentType: "application/pdf",
			UploadedAt:  time.Now().UTC(),
		}
		mockUseCase.On("Upload", mock.Anything, tenantID, userID, mock.MatchedBy(func(input *usecase.UploadInput) bool {
			return input.Section == "tax_documents" &&
				input.Filename == "return.pdf" &&
				!input.AlreadyEncrypted &&
				bytes.Equal(input.Data, []byte("%PDF-1.7"))
		})).Return(record, nil)

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		body, contentType := multipartUpload(t, "return.pdf", []byte("%PDF-1.7"),
			map[string]string{"section": "tax_documents"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/"+tenantID.String()+"/files", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, record.ID.String(), resp["id"])
		assert.Equal(t, "return.pdf", resp["name"])
		assert.Equal(t, "tax_documents", resp["section"])
	})

	t.Run("ClientSideEncryptedFlag", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		record := &filesDomain.FileRecord{ID: uuid.Must(uuid.NewV7()), TenantID: tenantID, Section: "wills"}
		mockUseCase.On("Upload", mock.Anything, tenantID, userID, mock.MatchedBy(func(input *usecase.UploadInput) bool {
			return input.AlreadyEncrypted
		})).Return(record, nil)

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		body, contentType := multipartUpload(t, "will.pdf", []byte("ciphertext"),
			map[string]string{"section": "wills", "fileEncrypted": "true"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/"+tenantID.String()+"/files", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("MissingFilePart", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("section", "wills"))
		require.NoError(t, writer.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/"+tenantID.String()+"/files", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("OversizedUploadRejected", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		router := newFileRouter(NewFileHandler(mockUseCase, 64, testLogger()), userID)

		body, contentType := multipartUpload(t, "big.bin", bytes.Repeat([]byte{0xFF}, 4096),
			map[string]string{"section": "wills"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/"+tenantID.String()+"/files", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DelegateForbidden", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		mockUseCase.On("Upload", mock.Anything, tenantID, userID, mock.Anything).
			Return(nil, apperrors.ErrForbidden)

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		body, contentType := multipartUpload(t, "will.pdf", []byte("data"),
			map[string]string{"section": "wills"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tenants/"+tenantID.String()+"/files", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFileHandler_DownloadFileHandler(t *testing.T) {
	tenantID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())
	fileID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		output := &usecase.DownloadOutput{
			Record: &filesDomain.FileRecord{
				ID:          fileID,
				TenantID:    tenantID,
				ContentType: "application/pdf",
			},
			Name: "2024 Tax Return.pdf",
			Data: []byte("%PDF-1.7"),
		}
		mockUseCase.On("Download", mock.Anything, tenantID, userID, fileID).Return(output, nil)

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/tenants/"+tenantID.String()+"/files/"+fileID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "2024 Tax Return.pdf")
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		assert.Equal(t, []byte("%PDF-1.7"), w.Body.Bytes())
	})

	t.Run("CorruptBlobFailsLoud", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		mockUseCase.On("Download", mock.Anything, tenantID, userID, fileID).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "decryption failed"))

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/tenants/"+tenantID.String()+"/files/"+fileID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		mockUseCase.On("Download", mock.Anything, tenantID, userID, fileID).
			Return(nil, filesDomain.ErrFileNotFound)

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/tenants/"+tenantID.String()+"/files/"+fileID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidFileID", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/tenants/"+tenantID.String()+"/files/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestFileHandler_ListFilesHandler(t *testing.T) {
	tenantID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		views := []*usecase.FileView{
			{
				Record: &filesDomain.FileRecord{
					ID:       uuid.Must(uuid.NewV7()),
					TenantID: tenantID,
					Section:  "wills",
				},
				Name:      "will.pdf",
				Decrypted: true,
			},
			{
				Record: &filesDomain.FileRecord{
					ID:       uuid.Must(uuid.NewV7()),
					TenantID: tenantID,
					Section:  "wills",
				},
				Name:      "unable to decrypt",
				Decrypted: false,
			},
		}
		mockUseCase.On("List", mock.Anything, tenantID, userID, "wills", 25, 0).Return(views, nil)

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/tenants/"+tenantID.String()+"/files?section=wills&limit=25", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Files []map[string]any `json:"files"`
			Limit int              `json:"limit"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Files, 2)
		assert.Equal(t, "will.pdf", resp.Files[0]["name"])
		assert.Equal(t, "unable to decrypt", resp.Files[1]["name"])
		assert.Equal(t, 25, resp.Limit)
	})

	t.Run("InvalidPagination", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/tenants/"+tenantID.String()+"/files?limit=500", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NonMemberForbidden", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		mockUseCase.On("List", mock.Anything, tenantID, userID, "", 50, 0).
			Return(nil, apperrors.ErrForbidden)

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/tenants/"+tenantID.String()+"/files", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFileHandler_DeleteFileHandler(t *testing.T) {
	tenantID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())
	fileID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		mockUseCase.On("Delete", mock.Anything, tenantID, userID, fileID).Return(nil)

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete,
			"/v1/tenants/"+tenantID.String()+"/files/"+fileID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("DelegateForbidden", func(t *testing.T) {
		mockUseCase := fileHTTPMocks.NewMockFileUseCase(t)
		mockUseCase.On("Delete", mock.Anything, tenantID, userID, fileID).
			Return(apperrors.ErrForbidden)

		router := newFileRouter(NewFileHandler(mockUseCase, testMaxUploadSize, testLogger()), userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete,
			"/v1/tenants/"+tenantID.String()+"/files/"+fileID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
