// Package validation provides custom validation rules built on jellydator/validation.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/schoolsite/internal/errors"
)

// MaxPasswordBytes is bcrypt's input limit; longer passwords are rejected
// rather than silently truncated.
const MaxPasswordBytes = 72

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AdminPassword is the strength policy applied to admin passwords.
var AdminPassword = PasswordStrength{
	MinLength:     10,
	RequireUpper:  true,
	RequireLower:  true,
	RequireNumber: true,
}

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength validates that a password meets minimum security requirements.
type PasswordStrength struct {
	MinLength     int
	RequireUpper  bool
	RequireLower  bool
	RequireNumber bool
}

// Validate checks if the password meets the configured requirements.
// A nil *string is skipped so optional update fields can use the rule.
func (p PasswordStrength) Validate(value interface{}) error {
	if ptr, isPtr := value.(*string); isPtr {
		if ptr == nil {
			return nil
		}
		value = *ptr
	}

	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}

	if len(s) > MaxPasswordBytes {
		return validation.NewError(
			"validation_password_max_length",
			"password must be at most "+strconv.Itoa(MaxPasswordBytes)+" bytes",
		)
	}

	if p.RequireUpper && !containsRune(s, unicode.IsUpper) {
		return validation.NewError(
			"validation_password_uppercase",
			"password must contain at least one uppercase letter",
		)
	}

	if p.RequireLower && !containsRune(s, unicode.IsLower) {
		return validation.NewError(
			"validation_password_lowercase",
			"password must contain at least one lowercase letter",
		)
	}

	if p.RequireNumber && !containsRune(s, unicode.IsNumber) {
		return validation.NewError("validation_password_number", "password must contain at least one number")
	}

	return nil
}

func containsRune(s string, pred func(rune) bool) bool {
	return strings.IndexFunc(s, pred) >= 0
}

// Email validates email format.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// SettingKey validates site setting keys: lowercase snake_case, starting with a letter.
var SettingKey = validation.Match(regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)).
	Error("must be lowercase letters, digits or underscores")

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
