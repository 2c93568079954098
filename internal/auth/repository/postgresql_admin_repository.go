package repository

import (
	"context"
	"database/sql"
	"errors"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
)

// PostgreSQLAdminRepository implements Admin persistence for PostgreSQL.
type PostgreSQLAdminRepository struct {
	db *sql.DB
}

// NewPostgreSQLAdminRepository creates a new PostgreSQL Admin repository.
func NewPostgreSQLAdminRepository(db *sql.DB) *PostgreSQLAdminRepository {
	return &PostgreSQLAdminRepository{db: db}
}

// Create inserts a new Admin. A duplicate email returns ErrAdminAlreadyExists.
func (p *PostgreSQLAdminRepository) Create(ctx context.Context, admin *authDomain.Admin) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO admins (` + adminColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

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
func (p *PostgreSQLAdminRepository) Update(ctx context.Context, admin *authDomain.Admin) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE admins
			  SET email = $1,
			      password_hash = $2,
			      name = $3,
			      role = $4,
			      is_active = $5,
			      failed_attempts = $6,
			      locked_until = $7,
			      last_login_at = $8,
			      updated_at = $9
			  WHERE id = $10`

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
func (p *PostgreSQLAdminRepository) Get(ctx context.Context, id string) (*authDomain.Admin, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

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
func (p *PostgreSQLAdminRepository) GetByEmail(ctx context.Context, email string) (*authDomain.Admin, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`

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
func (p *PostgreSQLAdminRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.Admin, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY email ASC LIMIT $1 OFFSET $2`

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
