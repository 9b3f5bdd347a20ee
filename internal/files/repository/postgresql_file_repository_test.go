package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/holograph/vault/internal/errors"
	"github.com/holograph/vault/internal/files/domain"
	vaultDomain "github.com/holograph/vault/internal/vault/domain"
)

var fileColumns = []string{
	"id", "tenant_id", "section", "name_ciphertext", "name_wrapped_key", "name_iv",
	"storage_path", "size", "content_type", "uploaded_at", "created_at", "updated_at",
}

// newTestFileRecord builds a record with an encrypted filename triple.
func newTestFileRecord() *domain.FileRecord {
	tenantID := uuid.Must(uuid.NewV7())
	uploadedAt := time.Now().UTC()
	return &domain.FileRecord{
		ID:       uuid.Must(uuid.NewV7()),
		TenantID: tenantID,
		Section:  "financial_accounts",
		Name: vaultDomain.EncryptedField{
			Ciphertext: "Y2lwaGVydGV4dA==",
			WrappedKey: "d3JhcHBlZA==",
			IV:         "aXYtYnl0ZXM=",
		},
		StoragePath: domain.BlobPath(tenantID, "financial_accounts", "will.pdf", uploadedAt),
		Size:        2048,
		ContentType: "application/pdf",
		UploadedAt:  uploadedAt,
	}
}

func recordRow(record *domain.FileRecord, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(fileColumns).AddRow(
		record.ID, record.TenantID, record.Section,
		record.Name.Ciphertext, record.Name.WrappedKey, record.Name.IV,
		record.StoragePath, record.Size, record.ContentType,
		record.UploadedAt, now, now,
	)
}

func TestPostgreSQLFileRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)
		record := newTestFileRecord()

		mock.ExpectExec("INSERT INTO file_records").
			WithArgs(
				record.ID, record.TenantID, record.Section,
				record.Name.Ciphertext, record.Name.WrappedKey, record.Name.IV,
				record.StoragePath, record.Size, record.ContentType, record.UploadedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Create(context.Background(), record)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownTenant", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)
		record := newTestFileRecord()

		mock.ExpectExec("INSERT INTO file_records").
			WillReturnError(apperrors.New(
				`pq: insert or update on table "file_records" violates foreign key constraint "file_records_tenant_id_fkey"`))

		err = repo.Create(context.Background(), record)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLFileRepository_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)
		record := newTestFileRecord()

		mock.ExpectQuery("SELECT (.+) FROM file_records WHERE id").
			WithArgs(record.ID, record.TenantID).
			WillReturnRows(recordRow(record, time.Now().UTC()))

		got, err := repo.GetByID(context.Background(), record.TenantID, record.ID)
		assert.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, record.StoragePath, got.StoragePath)
		assert.Equal(t, record.Name, got.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM file_records WHERE id").
			WillReturnRows(sqlmock.NewRows(fileColumns))

		_, err = repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})

	t.Run("WrongTenant", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)
		record := newTestFileRecord()
		otherTenantID := uuid.Must(uuid.NewV7())

		// Tenant scoping happens in the query: a mismatched tenant returns no rows.
		mock.ExpectQuery("SELECT (.+) FROM file_records WHERE id").
			WithArgs(record.ID, otherTenantID).
			WillReturnRows(sqlmock.NewRows(fileColumns))

		_, err = repo.GetByID(context.Background(), otherTenantID, record.ID)
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})
}

func TestPostgreSQLFileRepository_ListByTenant(t *testing.T) {
	t.Run("AllSections", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)
		record := newTestFileRecord()

		mock.ExpectQuery("SELECT (.+) FROM file_records WHERE tenant_id").
			WithArgs(record.TenantID, 20, 0).
			WillReturnRows(recordRow(record, time.Now().UTC()))

		records, err := repo.ListByTenant(context.Background(), record.TenantID, "", 20, 0)
		assert.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, record.ID, records[0].ID)
	})

	t.Run("SectionFilter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)
		record := newTestFileRecord()

		mock.ExpectQuery("SELECT (.+) FROM file_records WHERE tenant_id").
			WithArgs(record.TenantID, "financial_accounts", 20, 0).
			WillReturnRows(recordRow(record, time.Now().UTC()))

		records, err := repo.ListByTenant(context.Background(), record.TenantID, "financial_accounts", 20, 0)
		assert.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("Empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)
		tenantID := uuid.Must(uuid.NewV7())

		mock.ExpectQuery("SELECT (.+) FROM file_records WHERE tenant_id").
			WillReturnRows(sqlmock.NewRows(fileColumns))

		records, err := repo.ListByTenant(context.Background(), tenantID, "", 20, 0)
		assert.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestPostgreSQLFileRepository_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)
		record := newTestFileRecord()

		mock.ExpectExec("DELETE FROM file_records").
			WithArgs(record.ID, record.TenantID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Delete(context.Background(), record.TenantID, record.ID)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo := NewPostgreSQLFileRepository(db)

		mock.ExpectExec("DELETE FROM file_records").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Delete(context.Background(), uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})
}
