// Package http provides the admin auth gate, role checks and the HTTP handlers
// for sessions, password reset, admin management and the audit log.
package http

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

// adminKey is a context key type for storing the authenticated admin.
type adminKey struct{}

// WithAdmin stores the authenticated admin in the context.
// This is called by AdminAuthMiddleware after the admin has been re-resolved.
func WithAdmin(ctx context.Context, admin *authDomain.Admin) context.Context {
	return context.WithValue(ctx, adminKey{}, admin)
}

// GetAdmin retrieves the authenticated admin from the context.
// Returns (admin, true) if present, or (nil, false) if the gate did not run.
func GetAdmin(ctx context.Context) (*authDomain.Admin, bool) {
	admin, ok := ctx.Value(adminKey{}).(*authDomain.Admin)
	return admin, ok && admin != nil
}

// RequestMeta collects the request attributes recorded in the audit log.
func RequestMeta(c *gin.Context) authDomain.RequestMeta {
	return authDomain.RequestMeta{
		RequestID: requestid.Get(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// ActorID returns the ID of the authenticated admin, or "" when there is none.
func ActorID(c *gin.Context) string {
	if admin, ok := GetAdmin(c.Request.Context()); ok {
		return admin.ID
	}
	return ""
}
