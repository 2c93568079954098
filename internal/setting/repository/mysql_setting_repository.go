package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
)

// MySQLSettingRepository implements Setting persistence for MySQL.
type MySQLSettingRepository struct {
	db *sql.DB
}

// NewMySQLSettingRepository creates a new MySQL Setting repository.
func NewMySQLSettingRepository(db *sql.DB) *MySQLSettingRepository {
	return &MySQLSettingRepository{db: db}
}

// Upsert inserts the setting or overwrites the existing row with the same key.
func (m *MySQLSettingRepository) Upsert(ctx context.Context, setting *settingDomain.Setting) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO site_settings (` + settingColumns + `)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			      enabled = VALUES(enabled),
			      description = VALUES(description),
			      updated_by = VALUES(updated_by),
			      updated_at = VALUES(updated_at)`

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
func (m *MySQLSettingRepository) Get(ctx context.Context, key string) (*settingDomain.Setting, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + settingColumns + ` FROM site_settings WHERE setting_key = ?`

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
func (m *MySQLSettingRepository) List(ctx context.Context) ([]*settingDomain.Setting, error) {
	querier := database.GetTx(ctx, m.db)

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
