// Package dto defines response payloads for file endpoints. Uploads arrive as
// multipart forms, so there are no JSON request types here.
package dto

import (
	"time"

	"github.com/holograph/vault/internal/files/domain"
	"github.com/holograph/vault/internal/files/usecase"
)

// FileResponse is the API representation of a stored file with its filename
// decrypted for the caller.
type FileResponse struct {
	ID          string    `json:"id"`
	Section     string    `json:"section"`
	Name        string    `json:"name"`
	Decrypted   bool      `json:"decrypted"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// MapFileViewToResponse converts a file view to its API representation.
func MapFileViewToResponse(view *usecase.FileView) FileResponse {
	return FileResponse{
		ID:          view.Record.ID.String(),
		Section:     view.Record.Section,
		Name:        view.Name,
		Decrypted:   view.Decrypted,
		Size:        view.Record.Size,
		ContentType: view.Record.ContentType,
		UploadedAt:  view.Record.UploadedAt,
	}
}

// UploadedFileResponse is returned after a successful upload. The name echoes
// the plaintext filename the caller supplied.
type UploadedFileResponse struct {
	ID          string    `json:"id"`
	Section     string    `json:"section"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// MapRecordToUploadedResponse converts a freshly created record to its API
// representation.
func MapRecordToUploadedResponse(record *domain.FileRecord, name string) UploadedFileResponse {
	return UploadedFileResponse{
		ID:          record.ID.String(),
		Section:     record.Section,
		Name:        name,
		Size:        record.Size,
		ContentType: record.ContentType,
		UploadedAt:  record.UploadedAt,
	}
}

// FileListResponse is a paginated list of files.
type FileListResponse struct {
	Files  []FileResponse `json:"files"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
