package repository

import (
	"context"
	"database/sql"
	"errors"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
)

// MySQLAdminRepository implements Admin persistence for MySQL.
type MySQLAdminRepository struct {
	db *sql.DB
}

// NewMySQLAdminRepository creates a new MySQL Admin repository.
func NewMySQLAdminRepository(db *sql.DB) *MySQLAdminRepository {
	return &MySQLAdminRepository{db: db}
}

// Create inserts a new Admin. A duplicate email returns ErrAdminAlreadyExists.
func (m *MySQLAdminRepository) Create(ctx context.Context, admin *authDomain.Admin) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO admins (` + adminColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
		admin.Name,
		string(admin.Role),
		admin.IsActive,
		admin.FailedAttempts,
		admin.LockedUntil,
		admin.LastLoginAt,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return authDomain.ErrAdminAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create admin")
	}
	return nil
}

// Update writes every mutable column of an existing Admin.
func (m *MySQLAdminRepository) Update(ctx context.Context, admin *authDomain.Admin) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE admins
			  SET email = ?,
			      password_hash = ?,
			      name = ?,
			      role = ?,
			      is_active = ?,
			      failed_attempts = ?,
			      locked_until = ?,
			      last_login_at = ?,
			      updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		admin.Email,
		admin.PasswordHash,
		admin.Name,
		string(admin.Role),
		admin.IsActive,
		admin.FailedAttempts,
		admin.LockedUntil,
		admin.LastLoginAt,
		admin.UpdatedAt,
		admin.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return authDomain.ErrAdminAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update admin")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return authDomain.ErrAdminNotFound
	}
	return nil
}

// Get retrieves an Admin by id.
func (m *MySQLAdminRepository) Get(ctx context.Context, id string) (*authDomain.Admin, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = ?`

	admin, err := scanAdmin(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrAdminNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get admin")
	}
	return admin, nil
}

// GetByEmail retrieves an Admin by normalized email.
func (m *MySQLAdminRepository) GetByEmail(ctx context.Context, email string) (*authDomain.Admin, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = ?`

	admin, err := scanAdmin(querier.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrAdminNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get admin by email")
	}
	return admin, nil
}

// List returns admins ordered by email.
func (m *MySQLAdminRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.Admin, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY email ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list admins")
	}
	defer func() {
		_ = rows.Close()
	}()

	admins := make([]*authDomain.Admin, 0)
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan admin")
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate admins")
	}
	return admins, nil
}
