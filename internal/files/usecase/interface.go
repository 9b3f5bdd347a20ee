// Package usecase implements business logic for encrypted document storage.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/holograph/vault/internal/files/domain"
	tenantDomain "github.com/holograph/vault/internal/tenant/domain"
)

// FileRepository defines persistence operations for file records.
type FileRepository interface {
	Create(ctx context.Context, record *domain.FileRecord) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.FileRecord, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, section string, limit, offset int) ([]*domain.FileRecord, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// MembershipReader resolves a tenant's membership for access checks.
type MembershipReader interface {
	GetMembers(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Members, error)
}

// UploadInput carries one document upload.
type UploadInput struct {
	Section     string
	Filename    string
	ContentType string
	Data        []byte

	// AlreadyEncrypted marks blobs the browser encrypted client side. The
	// server stores them as-is; re-encrypting would double-wrap the content
	// and break client-side decryption.
	AlreadyEncrypted bool
}

// FileView is a file record with its filename decrypted for the caller.
type FileView struct {
	Record    *domain.FileRecord
	Name      string
	Decrypted bool
}

// DownloadOutput is a decrypted document ready to serve.
type DownloadOutput struct {
	Record *domain.FileRecord
	// Name is the decrypted original filename, or the fallback sentinel.
	Name string
	// Data is the plaintext content. Client-side encrypted uploads decrypt
	// the same way as server-side ones: the browser uses the tenant's AES
	// key and the same iv||ciphertext layout.
	Data []byte
}

// FileUseCase defines the document storage operations. Uploads and deletes
// require the owner or a principal; downloads and listings are open to any
// member including delegates.
type FileUseCase interface {
	Upload(ctx context.Context, tenantID, userID uuid.UUID, input *UploadInput) (*domain.FileRecord, error)
	Download(ctx context.Context, tenantID, userID, fileID uuid.UUID) (*DownloadOutput, error)
	List(ctx context.Context, tenantID, userID uuid.UUID, section string, limit, offset int) ([]*FileView, error)
	Delete(ctx context.Context, tenantID, userID, fileID uuid.UUID) error
}
