// Package dto provides data transfer objects for site setting requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
)

// UpdateSettingRequest toggles a setting. Enabled is required so an omitted
// field is never read as false.
type UpdateSettingRequest struct {
	Enabled     *bool   `json:"enabled"`
	Description *string `json:"description"`
}

// Validate checks if the update request is valid.
func (r *UpdateSettingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Enabled, validation.NotNil),
		validation.Field(&r.Description, validation.Length(0, 255)),
	)
}

// ToInput converts the request to a domain input.
func (r *UpdateSettingRequest) ToInput() *settingDomain.UpdateSettingInput {
	input := &settingDomain.UpdateSettingInput{Description: r.Description}
	if r.Enabled != nil {
		input.Enabled = *r.Enabled
	}
	return input
}
