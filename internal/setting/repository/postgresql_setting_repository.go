package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
)

// PostgreSQLSettingRepository implements Setting persistence for PostgreSQL.
type PostgreSQLSettingRepository struct {
	db *sql.DB
}

// NewPostgreSQLSettingRepository creates a new PostgreSQL Setting repository.
func NewPostgreSQLSettingRepository(db *sql.DB) *PostgreSQLSettingRepository {
	return &PostgreSQLSettingRepository{db: db}
}

// Upsert inserts the setting or overwrites the existing row with the same key.
func (p *PostgreSQLSettingRepository) Upsert(ctx context.Context, setting *settingDomain.Setting) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO site_settings (` + settingColumns + `)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (setting_key) DO UPDATE
			  SET enabled = EXCLUDED.enabled,
			      description = EXCLUDED.description,
			      updated_by = EXCLUDED.updated_by,
			      updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		setting.Key,
		setting.Enabled,
		setting.Description,
		nullString(setting.UpdatedBy),
		setting.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert setting")
	}
	return nil
}

// Get retrieves a setting by key.
func (p *PostgreSQLSettingRepository) Get(ctx context.Context, key string) (*settingDomain.Setting, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + settingColumns + ` FROM site_settings WHERE setting_key = $1`

	setting, err := scanSetting(querier.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settingDomain.ErrSettingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get setting")
	}
	return setting, nil
}

// List returns every setting ordered by key.
func (p *PostgreSQLSettingRepository) List(ctx context.Context) ([]*settingDomain.Setting, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + settingColumns + ` FROM site_settings ORDER BY setting_key`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list settings")
	}
	defer func() {
		_ = rows.Close()
	}()

	settings, err := collectSettings(rows)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan settings")
	}
	return settings, nil
}
