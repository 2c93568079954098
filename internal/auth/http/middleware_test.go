package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authService "github.com/allisson/schoolsite/internal/auth/service"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
	"github.com/allisson/schoolsite/internal/auth/usecase/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newGatedRouter mounts the gate in front of a handler that echoes the resolved admin.
func newGatedRouter(sessionUseCase authUseCase.SessionUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AdminAuthMiddleware(sessionUseCase, discardLogger()), func(c *gin.Context) {
		admin, ok := GetAdmin(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": admin.ID, "email": admin.Email, "role": admin.Role})
	})
	return router
}

func get(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAdminAuthMiddleware(t *testing.T) {
	admin := &authDomain.Admin{ID: "a1", Email: "x@y.com", Role: authDomain.RoleAdmin, IsActive: true}

	tests := []struct {
		name          string
		authorization string
		setup         func(m *mocks.MockSessionUseCase)
		wantStatus    int
		wantBody      string
	}{
		{
			name:          "missing header",
			authorization: "",
			wantStatus:    http.StatusUnauthorized,
			wantBody:      `{"message":"Admin authentication required."}`,
		},
		{
			name:          "wrong scheme",
			authorization: "Basic dXNlcjpwYXNz",
			wantStatus:    http.StatusUnauthorized,
			wantBody:      `{"message":"Admin authentication required."}`,
		},
		{
			name:          "empty bearer token",
			authorization: "Bearer ",
			wantStatus:    http.StatusUnauthorized,
			wantBody:      `{"message":"Admin authentication required."}`,
		},
		{
			name:          "invalid token",
			authorization: "Bearer expired",
			setup: func(m *mocks.MockSessionUseCase) {
				m.On("Authenticate", mock.Anything, "expired").Return(nil, authDomain.ErrInvalidToken).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Invalid admin token."}`,
		},
		{
			name:          "inactive account",
			authorization: "Bearer valid",
			setup: func(m *mocks.MockSessionUseCase) {
				m.On("Authenticate", mock.Anything, "valid").Return(nil, authDomain.ErrAccountUnavailable).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Admin account not found or inactive"}`,
		},
		{
			name:          "datastore failure",
			authorization: "Bearer valid",
			setup: func(m *mocks.MockSessionUseCase) {
				m.On("Authenticate", mock.Anything, "valid").
					Return(nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Admin authentication error."}`,
		},
		{
			name:          "success with lowercase scheme",
			authorization: "bearer valid",
			setup: func(m *mocks.MockSessionUseCase) {
				m.On("Authenticate", mock.Anything, "valid").Return(admin, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"id":"a1","email":"x@y.com","role":"admin"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionUseCase := &mocks.MockSessionUseCase{}
			if tt.setup != nil {
				tt.setup(sessionUseCase)
			}

			w := get(newGatedRouter(sessionUseCase), tt.authorization)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			sessionUseCase.AssertExpectations(t)
		})
	}
}

// stubAdminRepository serves a single in-memory admin for end-to-end gate tests.
type stubAdminRepository struct {
	authUseCase.AdminRepository
	admin *authDomain.Admin
}

func (s *stubAdminRepository) Get(ctx context.Context, id string) (*authDomain.Admin, error) {
	if s.admin == nil || s.admin.ID != id {
		return nil, authDomain.ErrAdminNotFound
	}
	copied := *s.admin
	return &copied, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newRealSessionUseCase(
	t *testing.T,
	repo authUseCase.AdminRepository,
	opts ...authService.TokenIssuerOption,
) (authUseCase.SessionUseCase, authService.TokenIssuer) {
	t.Helper()
	issuer, err := authService.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), "schoolsite", opts...)
	require.NoError(t, err)

	uc := authUseCase.NewSessionUseCase(
		passthroughTxManager{},
		repo,
		authService.NewPasswordHasher(authService.DefaultPasswordCost),
		issuer,
		authService.NewNoOpDenylist(),
		&mocks.MockAuditLogUseCase{},
		authUseCase.LockoutConfig{MaxAttempts: 5, Duration: time.Minute},
	)
	return uc, issuer
}

func TestAdminAuthMiddleware_DeactivatedAccountReplay(t *testing.T) {
	repo := &stubAdminRepository{
		admin: &authDomain.Admin{ID: "a1", Email: "x@y.com", Role: authDomain.RoleAdmin, IsActive: true},
	}
	uc, issuer := newRealSessionUseCase(t, repo)
	router := newGatedRouter(uc)

	token, _, err := issuer.IssueSessionToken(authDomain.SessionClaims{
		SubjectID: "a1",
		Email:     "x@y.com",
		Role:      authDomain.RoleAdmin,
	})
	require.NoError(t, err)

	w := get(router, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"a1","email":"x@y.com","role":"admin"}`, w.Body.String())

	repo.admin.IsActive = false

	w = get(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Admin account not found or inactive"}`, w.Body.String())
}

func TestAdminAuthMiddleware_RealTokens(t *testing.T) {
	repo := &stubAdminRepository{
		admin: &authDomain.Admin{ID: "a1", Email: "x@y.com", Role: authDomain.RoleAdmin, IsActive: true},
	}

	t.Run("expired token", func(t *testing.T) {
		issuedAt := time.Now().Add(-8 * 24 * time.Hour)
		_, pastIssuer := newRealSessionUseCase(t, repo, authService.WithClock(func() time.Time { return issuedAt }))
		uc, _ := newRealSessionUseCase(t, repo)

		token, _, err := pastIssuer.IssueSessionToken(authDomain.SessionClaims{SubjectID: "a1"})
		require.NoError(t, err)

		w := get(newGatedRouter(uc), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Invalid admin token."}`, w.Body.String())
	})

	t.Run("reset token is not a session token", func(t *testing.T) {
		uc, issuer := newRealSessionUseCase(t, repo)

		token, _, err := issuer.IssueResetToken("a1", "fingerprint")
		require.NoError(t, err)

		w := get(newGatedRouter(uc), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Invalid admin token."}`, w.Body.String())
	})

	t.Run("unknown subject", func(t *testing.T) {
		uc, issuer := newRealSessionUseCase(t, repo)

		token, _, err := issuer.IssueSessionToken(authDomain.SessionClaims{SubjectID: "ghost"})
		require.NoError(t, err)

		w := get(newGatedRouter(uc), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Admin account not found or inactive"}`, w.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(admin *authDomain.Admin) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if admin != nil {
				c.Request = c.Request.WithContext(WithAdmin(c.Request.Context(), admin))
			}
			c.Next()
		})
		router.GET("/protected", RequireRole(discardLogger(), authDomain.RoleSuperAdmin), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("allowed", func(t *testing.T) {
		w := get(newRouter(&authDomain.Admin{ID: "s1", Role: authDomain.RoleSuperAdmin}), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		w := get(newRouter(&authDomain.Admin{ID: "e1", Role: authDomain.RoleEditor}), "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"message":"Insufficient admin permissions."}`, w.Body.String())
	})

	t.Run("gate not run", func(t *testing.T) {
		w := get(newRouter(nil), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
