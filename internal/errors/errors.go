// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return them and the HTTP layer
// maps them to status codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors shared by every module.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate email).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated admin doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrLocked indicates the account is temporarily locked after repeated failures.
	ErrLocked = errors.New("locked")

	// ErrTooManyRequests indicates the caller exceeded a rate limit.
	ErrTooManyRequests = errors.New("too many requests")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// publicError pairs an error chain with the text that is safe to show clients.
type publicError struct {
	err error
	msg string
}

func (e *publicError) Error() string { return e.err.Error() }
func (e *publicError) Unwrap() error { return e.err }

// WithPublicMessage attaches msg as the client facing text of err. Is, As and
// Error still see the full chain.
func WithPublicMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &publicError{err: err, msg: msg}
}

// PublicMessage returns the client facing text attached anywhere in err's chain.
func PublicMessage(err error) (string, bool) {
	var pub *publicError
	if errors.As(err, &pub) {
		return pub.msg, true
	}
	return "", false
}
