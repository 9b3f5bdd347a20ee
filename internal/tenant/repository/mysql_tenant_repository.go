package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/holograph/vault/internal/database"
	"github.com/holograph/vault/internal/tenant/domain"

	apperrors "github.com/holograph/vault/internal/errors"
)

// MySQLTenantRepository handles tenant persistence for MySQL.
type MySQLTenantRepository struct {
	db *sql.DB
}

// NewMySQLTenantRepository creates a new MySQLTenantRepository.
func NewMySQLTenantRepository(db *sql.DB) *MySQLTenantRepository {
	return &MySQLTenantRepository{
		db: db,
	}
}

// Create inserts a new tenant together with its owner membership.
func (r *MySQLTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tenants (id, owner_id, name_ciphertext, name_wrapped_key, name_iv, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		tenant.ID.String(), tenant.OwnerID.String(),
		tenant.Name.Ciphertext, tenant.Name.WrappedKey, tenant.Name.IV,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "tenant already exists")
		}
		return apperrors.Wrap(err, "failed to create tenant")
	}

	membership := `INSERT INTO tenant_memberships (tenant_id, user_id, role, created_at)
				   VALUES (?, ?, ?, NOW())`

	if _, err := querier.ExecContext(ctx, membership,
		tenant.ID.String(), tenant.OwnerID.String(), domain.RoleOwner); err != nil {
		return apperrors.Wrap(err, "failed to create owner membership")
	}

	return nil
}

// GetByID retrieves a tenant by ID.
func (r *MySQLTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, name_ciphertext, name_wrapped_key, name_iv, created_at, updated_at
			  FROM tenants WHERE id = ?`

	var tenantID, ownerID string
	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&tenantID, &ownerID,
		&tenant.Name.Ciphertext, &tenant.Name.WrappedKey, &tenant.Name.IV,
		&tenant.CreatedAt, &tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get tenant by id")
	}

	tenant.ID, err = uuid.Parse(tenantID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse tenant id")
	}
	tenant.OwnerID, err = uuid.Parse(ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse tenant owner id")
	}

	return &tenant, nil
}

// Delete removes a tenant and, via ON DELETE CASCADE, its memberships.
func (r *MySQLTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tenants WHERE id = ?`, id.String())
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
func (r *MySQLTenantRepository) GetMembers(ctx context.Context, tenantID uuid.UUID) (*domain.Members, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT user_id, role FROM tenant_memberships WHERE tenant_id = ?`

	rows, err := querier.QueryContext(ctx, query, tenantID.String())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get tenant members")
	}
	defer func() { _ = rows.Close() }()

	var members domain.Members
	var found bool
	for rows.Next() {
		var rawUserID string
		var role domain.Role
		if err := rows.Scan(&rawUserID, &role); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tenant member")
		}

		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse member user id")
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
func (r *MySQLTenantRepository) AddMembership(ctx context.Context, membership *domain.Membership) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tenant_memberships (tenant_id, user_id, role, created_at)
			  VALUES (?, ?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query,
		membership.TenantID.String(), membership.UserID.String(), membership.Role)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrMembershipExists
		}
		if isMySQLForeignKeyViolation(err) {
			return domain.ErrTenantNotFound
		}
		return apperrors.Wrap(err, "failed to add membership")
	}

	return nil
}

// RemoveMembership deletes a membership row.
func (r *MySQLTenantRepository) RemoveMembership(ctx context.Context, tenantID, userID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx,
		`DELETE FROM tenant_memberships WHERE tenant_id = ? AND user_id = ?`,
		tenantID.String(), userID.String())
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

// isMySQLUniqueViolation checks if the error is a MySQL duplicate entry error.
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isMySQLForeignKeyViolation checks if the error is a MySQL foreign key violation.
func isMySQLForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1452
	}
	return strings.Contains(err.Error(), "foreign key constraint")
}
