// Package http provides HTTP handlers for encrypted document storage:
// multipart uploads, downloads, listings, and deletion.
package http

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/holograph/vault/internal/auth/http"
	"github.com/holograph/vault/internal/files/http/dto"
	fileUseCase "github.com/holograph/vault/internal/files/usecase"
	"github.com/holograph/vault/internal/httputil"

	apperrors "github.com/holograph/vault/internal/errors"
)

// FileHandler handles HTTP requests for file operations.
type FileHandler struct {
	fileUseCase   fileUseCase.FileUseCase
	maxUploadSize int64
	logger        *slog.Logger
}

// NewFileHandler creates a new file handler. maxUploadSize caps the accepted
// multipart body size in bytes.
func NewFileHandler(useCase fileUseCase.FileUseCase, maxUploadSize int64, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileUseCase:   useCase,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

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

// UploadFileHandler stores one document. The multipart form carries the file
// under "file", the target section under "section", and an optional
// "fileEncrypted" flag marking blobs the browser already encrypted.
// POST /v1/tenants/:id/files
// Returns 201 Created with the new record.
func (h *FileHandler) UploadFileHandler(c *gin.Context) {
	tenantID, userID, err := requestIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("missing or oversized file part: %w", err), h.logger)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(err, "failed to open uploaded file"), h.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(err, "failed to read uploaded file"), h.logger)
		return
	}

	alreadyEncrypted, _ := strconv.ParseBool(c.PostForm("fileEncrypted"))

	contentType := fileHeader.Header.Get("Content-Type")
	if _, _, err := mime.ParseMediaType(contentType); err != nil {
		contentType = "application/octet-stream"
	}

	input := &fileUseCase.UploadInput{
		Section:          c.PostForm("section"),
		Filename:         fileHeader.Filename,
		ContentType:      contentType,
		Data:             data,
		AlreadyEncrypted: alreadyEncrypted,
	}

	record, err := h.fileUseCase.Upload(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecordToUploadedResponse(record, fileHeader.Filename))
}

// DownloadFileHandler serves one decrypted document as an attachment, named
// with the decrypted original filename.
// GET /v1/tenants/:id/files/:fileId
func (h *FileHandler) DownloadFileHandler(c *gin.Context) {
	tenantID, userID, err := requestIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid file id"), h.logger)
		return
	}

	output, err := h.fileUseCase.Download(c.Request.Context(), tenantID, userID, fileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": output.Name,
	}))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, output.Record.ContentType, output.Data)
}

// ListFilesHandler returns a page of the tenant's files, optionally filtered
// by the "section" query parameter.
// GET /v1/tenants/:id/files
func (h *FileHandler) ListFilesHandler(c *gin.Context) {
	tenantID, userID, err := requestIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	views, err := h.fileUseCase.List(c.Request.Context(), tenantID, userID, c.Query("section"), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	files := make([]dto.FileResponse, 0, len(views))
	for _, view := range views {
		files = append(files, dto.MapFileViewToResponse(view))
	}

	c.JSON(http.StatusOK, dto.FileListResponse{
		Files:  files,
		Limit:  limit,
		Offset: offset,
	})
}

// DeleteFileHandler removes one document record and its stored blob.
// DELETE /v1/tenants/:id/files/:fileId
// Returns 204 No Content.
func (h *FileHandler) DeleteFileHandler(c *gin.Context) {
	tenantID, userID, err := requestIdentity(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid file id"), h.logger)
		return
	}

	if err := h.fileUseCase.Delete(c.Request.Context(), tenantID, userID, fileID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
