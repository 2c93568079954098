// Package dto provides data transfer objects for the contact form.
package dto

import (
	validation "github.com/jellydator/validation"

	contactDomain "github.com/allisson/schoolsite/internal/contact/domain"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

// ContactRequest is the public contact form body.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks if the contact request is valid.
func (r *ContactRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, contactDomain.MaxNameLength),
		),
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Subject,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, contactDomain.MaxSubjectLength),
		),
		validation.Field(&r.Message,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, contactDomain.MaxMessageLength),
		),
	)
}

// ToDomain converts the request to a contact message.
func (r *ContactRequest) ToDomain(ipAddress string) *contactDomain.Message {
	return &contactDomain.Message{
		Name:      r.Name,
		Email:     r.Email,
		Subject:   r.Subject,
		Body:      r.Message,
		IPAddress: ipAddress,
	}
}
