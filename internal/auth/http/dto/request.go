// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

// LoginRequest contains admin credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field
}

// Validate checks if the login request is valid. Password strength is not
// checked here so legacy passwords can still sign in.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, customValidation.MaxPasswordBytes)),
	)
}

// PasswordResetRequest starts the reset flow for an email.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// Validate checks if the reset request is valid.
func (r *PasswordResetRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
	)
}

// PasswordResetConfirmRequest completes the reset flow.
type PasswordResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"` //nolint:gosec // request field
}

// Validate checks presence only; strength is enforced once the token is verified.
func (r *PasswordResetConfirmRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// CreateAdminRequest contains the parameters for creating a new admin.
type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Validate checks if the create admin request is valid.
func (r *CreateAdminRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Password, validation.Required, customValidation.AdminPassword),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Role, validation.Required, validation.In(roleValues()...)),
	)
}

// ToInput converts the request to a domain input.
func (r *CreateAdminRequest) ToInput() *authDomain.CreateAdminInput {
	return &authDomain.CreateAdminInput{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Role:     authDomain.Role(r.Role),
	}
}

// UpdateAdminRequest contains the optional fields of an admin update.
type UpdateAdminRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"` //nolint:gosec // request field
}

// Validate checks the fields that are present.
func (r *UpdateAdminRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Role, validation.NilOrNotEmpty, validation.In(roleValues()...)),
		validation.Field(&r.Password, validation.NilOrNotEmpty, customValidation.AdminPassword),
	)
}

// ToInput converts the request to a domain input.
func (r *UpdateAdminRequest) ToInput() *authDomain.UpdateAdminInput {
	input := &authDomain.UpdateAdminInput{
		Name:     r.Name,
		IsActive: r.IsActive,
		Password: r.Password,
	}
	if r.Role != nil {
		role := authDomain.Role(*r.Role)
		input.Role = &role
	}
	return input
}

func roleValues() []any {
	values := make([]any, 0, len(authDomain.Roles))
	for _, role := range authDomain.Roles {
		values = append(values, string(role))
	}
	return values
}
