package dto

import (
	"time"

	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
)

// SettingResponse represents a setting in API responses.
type SettingResponse struct {
	Key         string    `json:"key"`
	Enabled     bool      `json:"enabled"`
	Description string    `json:"description"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapSettingToResponse converts a domain setting to an API response.
func MapSettingToResponse(setting *settingDomain.Setting) SettingResponse {
	return SettingResponse{
		Key:         setting.Key,
		Enabled:     setting.Enabled,
		Description: setting.Description,
		UpdatedBy:   setting.UpdatedBy,
		UpdatedAt:   setting.UpdatedAt,
	}
}

// PublicSettingsResponse is the anonymous view: a flat key to flag map.
type PublicSettingsResponse struct {
	Settings map[string]bool `json:"settings"`
}

// MapSettingsToPublicResponse converts settings to the public flag map.
func MapSettingsToPublicResponse(settings []*settingDomain.Setting) PublicSettingsResponse {
	flags := make(map[string]bool, len(settings))
	for _, setting := range settings {
		flags[setting.Key] = setting.Enabled
	}
	return PublicSettingsResponse{Settings: flags}
}

// SettingListResponse is the admin view of every setting.
type SettingListResponse struct {
	Data []SettingResponse `json:"data"`
}

// MapSettingsToListResponse converts settings to the admin list response.
func MapSettingsToListResponse(settings []*settingDomain.Setting) SettingListResponse {
	data := make([]SettingResponse, 0, len(settings))
	for _, setting := range settings {
		data = append(data, MapSettingToResponse(setting))
	}
	return SettingListResponse{Data: data}
}
