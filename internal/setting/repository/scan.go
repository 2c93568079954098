// Package repository implements site setting persistence for PostgreSQL and MySQL.
package repository

import (
	"database/sql"

	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
)

const settingColumns = `setting_key, enabled, description, updated_by, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSetting(row rowScanner) (*settingDomain.Setting, error) {
	var setting settingDomain.Setting
	var updatedBy sql.NullString

	if err := row.Scan(
		&setting.Key,
		&setting.Enabled,
		&setting.Description,
		&updatedBy,
		&setting.UpdatedAt,
	); err != nil {
		return nil, err
	}

	setting.UpdatedBy = updatedBy.String
	return &setting, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func collectSettings(rows *sql.Rows) ([]*settingDomain.Setting, error) {
	settings := make([]*settingDomain.Setting, 0)
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}
