package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/holograph/vault/internal/database"
	"github.com/holograph/vault/internal/files/domain"
	"github.com/holograph/vault/internal/keystore"
	tenantDomain "github.com/holograph/vault/internal/tenant/domain"
	vaultService "github.com/holograph/vault/internal/vault/service"

	apperrors "github.com/holograph/vault/internal/errors"
)

// fileUseCase implements FileUseCase.
type fileUseCase struct {
	txManager   database.TxManager
	fileRepo    FileRepository
	memberships MembershipReader
	fieldCipher vaultService.FieldCipher
	fileCipher  vaultService.FileCipher
	fileStore   keystore.KeyStore
	logger      *slog.Logger
}

// NewFileUseCase creates a new file use case. fileStore is the bucket holding
// encrypted document blobs.
func NewFileUseCase(
	txManager database.TxManager,
	fileRepo FileRepository,
	memberships MembershipReader,
	fieldCipher vaultService.FieldCipher,
	fileCipher vaultService.FileCipher,
	fileStore keystore.KeyStore,
	logger *slog.Logger,
) FileUseCase {
	return &fileUseCase{
		txManager:   txManager,
		fileRepo:    fileRepo,
		memberships: memberships,
		fieldCipher: fieldCipher,
		fileCipher:  fileCipher,
		fileStore:   fileStore,
		logger:      logger,
	}
}

// Upload encrypts and stores one document. The blob is written before the
// record row commits; if the insert fails the blob is removed best effort so
// the bucket does not accumulate orphans.
func (u *fileUseCase) Upload(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	input *UploadInput,
) (*domain.FileRecord, error) {
	if err := u.requireEditor(ctx, tenantID, userID); err != nil {
		return nil, err
	}
	if !domain.ValidSection(input.Section) {
		return nil, domain.ErrInvalidSection
	}
	if len(input.Data) == 0 {
		return nil, domain.ErrEmptyFile
	}

	encryptedName, err := u.fieldCipher.EncryptField(ctx, tenantID.String(), input.Filename)
	if err != nil {
		return nil, err
	}

	blob := input.Data
	if !input.AlreadyEncrypted {
		blob, err = u.fileCipher.EncryptFile(ctx, tenantID.String(), input.Data)
		if err != nil {
			return nil, err
		}
	}

	uploadedAt := time.Now().UTC()
	record := &domain.FileRecord{
		ID:          uuid.Must(uuid.NewV7()),
		TenantID:    tenantID,
		Section:     input.Section,
		Name:        encryptedName,
		StoragePath: domain.BlobPath(tenantID, input.Section, input.Filename, uploadedAt),
		Size:        int64(len(blob)),
		ContentType: input.ContentType,
		UploadedAt:  uploadedAt,
		CreatedAt:   uploadedAt,
		UpdatedAt:   uploadedAt,
	}

	if err := u.fileStore.Put(ctx, record.StoragePath, blob); err != nil {
		return nil, apperrors.Wrap(err, "failed to store file blob")
	}

	err = u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.fileRepo.Create(txCtx, record)
	})
	if err != nil {
		if cleanupErr := u.fileStore.Delete(ctx, record.StoragePath); cleanupErr != nil {
			u.logger.Warn("failed to remove blob after aborted upload",
				slog.String("tenant_id", tenantID.String()),
				slog.String("storage_path", record.StoragePath),
				slog.Any("error", cleanupErr),
			)
		}
		return nil, err
	}

	return record, nil
}

// Download fetches and decrypts one document. Decryption failures are fatal
// here: the caller asked for this specific file and must not receive garbage.
func (u *fileUseCase) Download(
	ctx context.Context,
	tenantID, userID, fileID uuid.UUID,
) (*DownloadOutput, error) {
	if err := u.requireMember(ctx, tenantID, userID); err != nil {
		return nil, err
	}

	record, err := u.fileRepo.GetByID(ctx, tenantID, fileID)
	if err != nil {
		return nil, err
	}

	blob, err := u.fileStore.Get(ctx, record.StoragePath)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to fetch file blob")
	}

	data, err := u.fileCipher.DecryptFile(ctx, tenantID.String(), blob)
	if err != nil {
		return nil, err
	}

	name, _ := u.fieldCipher.DecryptField(ctx, tenantID.String(), record.Name)

	return &DownloadOutput{
		Record: record,
		Name:   name,
		Data:   data,
	}, nil
}

// List returns a page of the tenant's file records with filenames decrypted.
// A record whose filename cannot be decrypted still appears, carrying the
// fallback sentinel, so one corrupt row never hides the rest of the page.
func (u *fileUseCase) List(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	section string,
	limit, offset int,
) ([]*FileView, error) {
	if err := u.requireMember(ctx, tenantID, userID); err != nil {
		return nil, err
	}
	if section != "" && !domain.ValidSection(section) {
		return nil, domain.ErrInvalidSection
	}

	records, err := u.fileRepo.ListByTenant(ctx, tenantID, section, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]*FileView, 0, len(records))
	for _, record := range records {
		name, decrypted := u.fieldCipher.DecryptField(ctx, tenantID.String(), record.Name)
		views = append(views, &FileView{
			Record:    record,
			Name:      name,
			Decrypted: decrypted,
		})
	}

	return views, nil
}

// Delete removes the record row in a transaction, then the blob best effort.
func (u *fileUseCase) Delete(ctx context.Context, tenantID, userID, fileID uuid.UUID) error {
	if err := u.requireEditor(ctx, tenantID, userID); err != nil {
		return err
	}

	record, err := u.fileRepo.GetByID(ctx, tenantID, fileID)
	if err != nil {
		return err
	}

	err = u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.fileRepo.Delete(txCtx, tenantID, fileID)
	})
	if err != nil {
		return err
	}

	if err := u.fileStore.Delete(ctx, record.StoragePath); err != nil {
		u.logger.Warn("file record deleted but blob cleanup incomplete",
			slog.String("tenant_id", tenantID.String()),
			slog.String("storage_path", record.StoragePath),
			slog.Any("error", err),
		)
	}

	return nil
}

// requireMember allows the owner, principals, and delegates. Unknown tenants
// map to ErrForbidden so the API does not reveal tenant existence.
func (u *fileUseCase) requireMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	members, err := u.members(ctx, tenantID)
	if err != nil {
		return err
	}
	if !members.Contains(userID) {
		return apperrors.ErrForbidden
	}
	return nil
}

// requireEditor allows the owner and principals. Delegates hold read-only
// access to the estate.
func (u *fileUseCase) requireEditor(ctx context.Context, tenantID, userID uuid.UUID) error {
	members, err := u.members(ctx, tenantID)
	if err != nil {
		return err
	}
	if members.OwnerID == userID {
		return nil
	}
	for _, id := range members.PrincipalIDs {
		if id == userID {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

func (u *fileUseCase) members(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Members, error) {
	members, err := u.memberships.GetMembers(ctx, tenantID)
	if err != nil {
		if apperrors.Is(err, tenantDomain.ErrTenantNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	return members, nil
}
