package domain

import (
	"github.com/allisson/schoolsite/internal/errors"
)

// Authentication and admin management errors.
var (
	// ErrAdminNotFound indicates no admin matches the given id or email.
	ErrAdminNotFound = errors.Wrap(errors.ErrNotFound, "admin not found")

	// ErrAdminAlreadyExists indicates the email is already registered.
	ErrAdminAlreadyExists = errors.Wrap(errors.ErrConflict, "admin already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.WithPublicMessage(
		errors.Wrap(errors.ErrUnauthorized, "invalid credentials"),
		"Invalid email or password.",
	)

	// ErrAdminInactive indicates the account exists but is disabled.
	ErrAdminInactive = errors.Wrap(errors.ErrForbidden, "admin account is inactive")

	// ErrAdminLocked indicates too many failed logins.
	ErrAdminLocked = errors.Wrap(errors.ErrLocked, "admin account is locked")

	// ErrInvalidToken indicates a token that failed signature, expiry, type or revocation checks.
	ErrInvalidToken = errors.WithPublicMessage(
		errors.Wrap(errors.ErrUnauthorized, "invalid token"),
		"Invalid or expired token.",
	)

	// ErrAccountUnavailable indicates a valid token whose admin is missing or inactive.
	ErrAccountUnavailable = errors.Wrap(errors.ErrUnauthorized, "admin account not found or inactive")

	// ErrInvalidRole indicates a role outside Roles.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrCannotModifySelf prevents an admin from deactivating or demoting their own account.
	ErrCannotModifySelf = errors.Wrap(errors.ErrForbidden, "cannot deactivate or demote own account")

	// ErrSignatureInvalid indicates an audit log whose signature does not match its content.
	ErrSignatureInvalid = errors.New("audit log signature is invalid")
)
