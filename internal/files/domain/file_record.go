// Package domain defines the core types for encrypted document storage.
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

// FileRecord is the metadata row for one stored document blob. The original
// filename is encrypted like any other sensitive field; StoragePath locates
// the ciphertext blob in the files bucket.
type FileRecord struct {
	ID          uuid.UUID                 `json:"id"`
	TenantID    uuid.UUID                 `json:"tenantId"`
	Section     string                    `json:"section"`
	Name        vaultDomain.EncryptedField `json:"name"`
	StoragePath string                    `json:"storagePath"`
	Size        int64                     `json:"size"`
	ContentType string                    `json:"contentType"`
	UploadedAt  time.Time                 `json:"uploadedAt"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// BlobPath builds the storage key for a document:
// <tenantId>/<section>/<unix-ms>-<sanitized filename>.
func BlobPath(tenantID uuid.UUID, section, filename string, uploadedAt time.Time) string {
	return fmt.Sprintf("%s/%s/%s-%s",
		tenantID.String(),
		section,
		strconv.FormatInt(uploadedAt.UnixMilli(), 10),
		SanitizeFilename(filename),
	)
}

// SanitizeFilename strips path separators and characters that are unsafe in
// object keys, keeping the name recognizable. An empty result falls back to
// "file" so the blob path never ends with a bare dash.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	sanitized := strings.Trim(b.String(), ".")
	if sanitized == "" {
		return "file"
	}
	return sanitized
}

// ValidSection reports whether a section name is usable as a blob path
// segment. Sections come from the application layer (financial_accounts,
// insurance_policies, ...) and are not a fixed enum here, but they must not
// smuggle path separators into the storage key.
func ValidSection(section string) bool {
	if section == "" || len(section) > 64 {
		return false
	}
	for _, r := range section {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
