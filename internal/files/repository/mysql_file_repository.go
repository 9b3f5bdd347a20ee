package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/holograph/vault/internal/database"
	"github.com/holograph/vault/internal/files/domain"

	apperrors "github.com/holograph/vault/internal/errors"
)

// MySQLFileRepository handles file record persistence for MySQL.
type MySQLFileRepository struct {
	db *sql.DB
}

// NewMySQLFileRepository creates a new MySQLFileRepository.
func NewMySQLFileRepository(db *sql.DB) *MySQLFileRepository {
	return &MySQLFileRepository{
		db: db,
	}
}

const mysqlFileColumns = `id, tenant_id, section, name_ciphertext, name_wrapped_key, name_iv,
	storage_path, size, content_type, uploaded_at, created_at, updated_at`

// Create inserts a new file record.
func (r *MySQLFileRepository) Create(ctx context.Context, record *domain.FileRecord) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO file_records (id, tenant_id, section, name_ciphertext, name_wrapped_key, name_iv,
			  storage_path, size, content_type, uploaded_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		record.ID.String(), record.TenantID.String(), record.Section,
		record.Name.Ciphertext, record.Name.WrappedKey, record.Name.IV,
		record.StoragePath, record.Size, record.ContentType, record.UploadedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "file record already exists")
		}
		if isMySQLForeignKeyViolation(err) {
			return apperrors.Wrap(apperrors.ErrNotFound, "tenant not found")
		}
		return apperrors.Wrap(err, "failed to create file record")
	}

	return nil
}

// GetByID retrieves a file record scoped to a tenant.
func (r *MySQLFileRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.FileRecord, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlFileColumns + `
			  FROM file_records WHERE id = ? AND tenant_id = ?`

	record, err := scanMySQLFileRecord(querier.QueryRowContext(ctx, query, id.String(), tenantID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get file record by id")
	}

	return record, nil
}

// ListByTenant returns a page of a tenant's file records, optionally filtered
// by section, newest upload first.
func (r *MySQLFileRepository) ListByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	section string,
	limit, offset int,
) ([]*domain.FileRecord, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlFileColumns + `
			  FROM file_records WHERE tenant_id = ?`
	args := []any{tenantID.String()}

	if section != "" {
		query += ` AND section = ?`
		args = append(args, section)
	}
	query += ` ORDER BY uploaded_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list file records")
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.FileRecord
	for rows.Next() {
		record, err := scanMySQLFileRecord(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan file record")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate file records")
	}

	return records, nil
}

// Delete removes a file record scoped to a tenant.
func (r *MySQLFileRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx,
		`DELETE FROM file_records WHERE id = ? AND tenant_id = ?`, id.String(), tenantID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete file record")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted file record rows")
	}
	if rows == 0 {
		return domain.ErrFileNotFound
	}

	return nil
}

func scanMySQLFileRecord(row rowScanner) (*domain.FileRecord, error) {
	var record domain.FileRecord
	var id, tenantID string
	err := row.Scan(
		&id, &tenantID, &record.Section,
		&record.Name.Ciphertext, &record.Name.WrappedKey, &record.Name.IV,
		&record.StoragePath, &record.Size, &record.ContentType,
		&record.UploadedAt, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if record.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if record.TenantID, err = uuid.Parse(tenantID); err != nil {
		return nil, err
	}

	return &record, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL duplicate entry error.
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// isMySQLForeignKeyViolation checks if the error is a MySQL foreign key error.
func isMySQLForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1452
}
