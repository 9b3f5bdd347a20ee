// Package repository provides data persistence implementations for file
// records.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/holograph/vault/internal/database"
	"github.com/holograph/vault/internal/files/domain"

	apperrors "github.com/holograph/vault/internal/errors"
)

// PostgreSQLFileRepository handles file record persistence for PostgreSQL.
type PostgreSQLFileRepository struct {
	db *sql.DB
}

// NewPostgreSQLFileRepository creates a new PostgreSQLFileRepository.
func NewPostgreSQLFileRepository(db *sql.DB) *PostgreSQLFileRepository {
	return &PostgreSQLFileRepository{
		db: db,
	}
}

const postgresqlFileColumns = `id, tenant_id, section, name_ciphertext, name_wrapped_key, name_iv,
	storage_path, size, content_type, uploaded_at, created_at, updated_at`

// Create inserts a new file record.
func (r *PostgreSQLFileRepository) Create(ctx context.Context, record *domain.FileRecord) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO file_records (id, tenant_id, section, name_ciphertext, name_wrapped_key, name_iv,
			  storage_path, size, content_type, uploaded_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		record.ID, record.TenantID, record.Section,
		record.Name.Ciphertext, record.Name.WrappedKey, record.Name.IV,
		record.StoragePath, record.Size, record.ContentType, record.UploadedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "file record already exists")
		}
		if isPostgreSQLForeignKeyViolation(err) {
			return apperrors.Wrap(apperrors.ErrNotFound, "tenant not found")
		}
		return apperrors.Wrap(err, "failed to create file record")
	}

	return nil
}

// GetByID retrieves a file record scoped to a tenant. The tenant filter is
// part of the query so a valid file ID can never be read across tenants.
func (r *PostgreSQLFileRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.FileRecord, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresqlFileColumns + `
			  FROM file_records WHERE id = $1 AND tenant_id = $2`

	record, err := scanPostgreSQLFileRecord(querier.QueryRowContext(ctx, query, id, tenantID))
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
func (r *PostgreSQLFileRepository) ListByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	section string,
	limit, offset int,
) ([]*domain.FileRecord, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresqlFileColumns + `
			  FROM file_records WHERE tenant_id = $1`
	args := []any{tenantID}

	if section != "" {
		query += ` AND section = $2 ORDER BY uploaded_at DESC LIMIT $3 OFFSET $4`
		args = append(args, section, limit, offset)
	} else {
		query += ` ORDER BY uploaded_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list file records")
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.FileRecord
	for rows.Next() {
		record, err := scanPostgreSQLFileRecord(rows)
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
func (r *PostgreSQLFileRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx,
		`DELETE FROM file_records WHERE id = $1 AND tenant_id = $2`, id, tenantID)
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

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLFileRecord(row rowScanner) (*domain.FileRecord, error) {
	var record domain.FileRecord
	err := row.Scan(
		&record.ID, &record.TenantID, &record.Section,
		&record.Name.Ciphertext, &record.Name.WrappedKey, &record.Name.IV,
		&record.StoragePath, &record.Size, &record.ContentType,
		&record.UploadedAt, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key value")
}

// isPostgreSQLForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func isPostgreSQLForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "foreign key constraint")
}
