// Package domain defines the admin identity, session token claims and audit
// records that make up the admin authentication boundary.
package domain

import (
	"slices"
	"time"
)

// Role is the permission level of an admin account.
type Role string

const (
	// RoleSuperAdmin manages other admins and reads the audit log.
	RoleSuperAdmin Role = "superadmin"
	// RoleAdmin manages site settings.
	RoleAdmin Role = "admin"
	// RoleEditor can sign in to the admin panel with read access.
	RoleEditor Role = "editor"
)

// Roles lists every valid role.
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleEditor}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// Admin is a record in the credential store. PasswordHash is a bcrypt hash
// and is never serialized.
type Admin struct {
	ID             string
	Email          string
	PasswordHash   string `json:"-"` //nolint:gosec // bcrypt hash, never plaintext
	Name           string
	Role           Role
	IsActive       bool
	FailedAttempts int
	LockedUntil    *time.Time
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLocked reports whether the account is inside a lockout window at now.
func (a *Admin) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}

// HasRole reports whether the admin holds any of the given roles.
func (a *Admin) HasRole(roles ...Role) bool {
	return slices.Contains(roles, a.Role)
}

// ClearLockout resets the failed attempt counter and lockout window.
func (a *Admin) ClearLockout() {
	a.FailedAttempts = 0
	a.LockedUntil = nil
}

// CreateAdminInput contains the parameters for creating a new admin.
type CreateAdminInput struct {
	Email    string
	Password string //nolint:gosec // plaintext only in transit to the hasher
	Name     string
	Role     Role
}

// UpdateAdminInput contains the mutable fields of an admin.
// Nil fields are left unchanged.
type UpdateAdminInput struct {
	Name     *string
	Role     *Role
	IsActive *bool
	Password *string
}
