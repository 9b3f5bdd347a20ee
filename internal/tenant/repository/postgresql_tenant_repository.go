// Package repository provides data persistence implementations for tenants
// and their memberships.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/holograph/vault/internal/database"
	"github.com/holograph/vault/internal/tenant/domain"

	apperrors "github.com/holograph/vault/internal/errors"
)

// PostgreSQLTenantRepository handles tenant persistence for PostgreSQL.
type PostgreSQLTenantRepository struct {
	db *sql.DB
}

// NewPostgreSQLTenantRepository creates a new PostgreSQLTenantRepository.
func NewPostgreSQLTenantRepository(db *sql.DB) *PostgreSQLTenantRepository {
	return &PostgreSQLTenantRepository{
		db: db,
	}
}

// Create inserts a new tenant together with its owner membership.
func (r *PostgreSQLTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tenants (id, owner_id, name_ciphertext, name_wrapped_key, name_iv, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		tenant.ID, tenant.OwnerID, tenant.Name.Ciphertext, tenant.Name.WrappedKey, tenant.Name.IV,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "tenant already exists")
		}
		return apperrors.Wrap(err, "failed to create tenant")
	}

	membership := `INSERT INTO tenant_memberships (tenant_id, user_id, role, created_at)
				   VALUES ($1, $2, $3, NOW())`

	if _, err := querier.ExecContext(ctx, membership, tenant.ID, tenant.OwnerID, domain.RoleOwner); err != nil {
		return apperrors.Wrap(err, "failed to create owner membership")
	}

	return nil
}

// GetByID retrieves a tenant by ID.
func (r *PostgreSQLTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, name_ciphertext, name_wrapped_key, name_iv, created_at, updated_at
			  FROM tenants WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&tenant.ID, &tenant.OwnerID,
		&tenant.Name.Ciphertext, &tenant.Name.WrappedKey, &tenant.Name.IV,
		&tenant.CreatedAt, &tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get tenant by id")
	}

	return &tenant, nil
}

// Delete removes a tenant and, via ON DELETE CASCADE, its memberships.
func (r *PostgreSQLTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete tenant")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted tenant rows")
	}
	if rows == 0 {
		return domain.ErrTenantNotFound
	}

	return nil
}

// GetMembers returns the full membership of a tenant.
func (r *PostgreSQLTenantRepository) GetMembers(ctx context.Context, tenantID uuid.UUID) (*domain.Members, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT user_id, role FROM tenant_memberships WHERE tenant_id = $1`

	rows, err := querier.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get tenant members")
	}
	defer func() { _ = rows.Close() }()

	var members domain.Members
	var found bool
	for rows.Next() {
		var userID uuid.UUID
		var role domain.Role
		if err := rows.Scan(&userID, &role); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tenant member")
		}

		found = true
		switch role {
		case domain.RoleOwner:
			members.OwnerID = userID
		case domain.RolePrincipal:
			members.PrincipalIDs = append(members.PrincipalIDs, userID)
		case domain.RoleDelegate:
			members.DelegateIDs = append(members.DelegateIDs, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tenant members")
	}
	if !found {
		return nil, domain.ErrTenantNotFound
	}

	return &members, nil
}

// AddMembership inserts a principal or delegate membership.
func (r *PostgreSQLTenantRepository) AddMembership(ctx context.Context, membership *domain.Membership) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tenant_memberships (tenant_id, user_id, role, created_at)
			  VALUES ($1, $2, $3, NOW())`

	_, err := querier.ExecContext(ctx, query, membership.TenantID, membership.UserID, membership.Role)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrMembershipExists
		}
		if isPostgreSQLForeignKeyViolation(err) {
			return domain.ErrTenantNotFound
		}
		return apperrors.Wrap(err, "failed to add membership")
	}

	return nil
}

// RemoveMembership deletes a membership row.
func (r *PostgreSQLTenantRepository) RemoveMembership(ctx context.Context, tenantID, userID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx,
		`DELETE FROM tenant_memberships WHERE tenant_id = $1 AND user_id = $2`, tenantID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove membership")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check removed membership rows")
	}
	if rows == 0 {
		return domain.ErrMembershipNotFound
	}

	return nil
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
