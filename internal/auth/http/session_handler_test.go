package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/auth/http/dto"
	"github.com/allisson/schoolsite/internal/auth/usecase/mocks"
)

func TestSessionHandler_Login(t *testing.T) {
	expiresAt := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)
	admin := &authDomain.Admin{ID: "a1", Email: "x@y.com", Name: "X", Role: authDomain.RoleAdmin, IsActive: true}
	metaMatches := mock.MatchedBy(func(meta authDomain.RequestMeta) bool {
		return meta.IPAddress == "192.0.2.1" && meta.UserAgent == "handler-test"
	})

	t.Run("success", func(t *testing.T) {
		sessionUseCase := &mocks.MockSessionUseCase{}
		sessionUseCase.On("Login", mock.Anything, "x@y.com", "Secret123!", metaMatches).
			Return(&authDomain.LoginOutput{Token: "signed", ExpiresAt: expiresAt, Admin: admin}, nil).
			Once()

		router := newTestRouter()
		router.POST("/login", NewSessionHandler(sessionUseCase, discardLogger()).LoginHandler)

		w := performRequest(t, router, http.MethodPost, "/login",
			map[string]string{"email": "x@y.com", "password": "Secret123!"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.LoginResponse](t, w)
		assert.Equal(t, "signed", resp.Token)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.True(t, expiresAt.Equal(resp.ExpiresAt))
		assert.Equal(t, "a1", resp.Admin.ID)
		assert.NotContains(t, w.Body.String(), "password")
		sessionUseCase.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		sessionUseCase := &mocks.MockSessionUseCase{}
		sessionUseCase.On("Login", mock.Anything, "x@y.com", "wrong", mock.Anything).
			Return(nil, authDomain.ErrInvalidCredentials).
			Once()

		router := newTestRouter()
		router.POST("/login", NewSessionHandler(sessionUseCase, discardLogger()).LoginHandler)

		w := performRequest(t, router, http.MethodPost, "/login",
			map[string]string{"email": "x@y.com", "password": "wrong"}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"unauthorized","message":"Invalid email or password."}`, w.Body.String())
	})

	t.Run("locked account", func(t *testing.T) {
		sessionUseCase := &mocks.MockSessionUseCase{}
		sessionUseCase.On("Login", mock.Anything, "x@y.com", "Secret123!", mock.Anything).
			Return(nil, authDomain.ErrAdminLocked).
			Once()

		router := newTestRouter()
		router.POST("/login", NewSessionHandler(sessionUseCase, discardLogger()).LoginHandler)

		w := performRequest(t, router, http.MethodPost, "/login",
			map[string]string{"email": "x@y.com", "password": "Secret123!"}, nil)

		assert.Equal(t, http.StatusLocked, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		sessionUseCase := &mocks.MockSessionUseCase{}

		router := newTestRouter()
		router.POST("/login", NewSessionHandler(sessionUseCase, discardLogger()).LoginHandler)

		w := performRequest(t, router, http.MethodPost, "/login", map[string]string{"email": "x@y.com"}, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "password")
		sessionUseCase.AssertNotCalled(t, "Login")
	})

	t.Run("malformed json", func(t *testing.T) {
		sessionUseCase := &mocks.MockSessionUseCase{}

		router := newTestRouter()
		router.POST("/login", NewSessionHandler(sessionUseCase, discardLogger()).LoginHandler)

		w := performRequest(t, router, http.MethodPost, "/login", `{"email":`, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		sessionUseCase.AssertNotCalled(t, "Login")
	})
}

func TestSessionHandler_Logout(t *testing.T) {
	admin := &authDomain.Admin{ID: "a1", Role: authDomain.RoleAdmin, IsActive: true}

	t.Run("success", func(t *testing.T) {
		sessionUseCase := &mocks.MockSessionUseCase{}
		sessionUseCase.On("Logout", mock.Anything, "signed", mock.Anything).Return(nil).Once()

		router := newTestRouter()
		router.POST("/logout", withAdmin(admin), NewSessionHandler(sessionUseCase, discardLogger()).LogoutHandler)

		w := performRequest(t, router, http.MethodPost, "/logout", nil,
			map[string]string{"Authorization": "Bearer signed"})

		assert.Equal(t, http.StatusNoContent, w.Code)
		sessionUseCase.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		sessionUseCase := &mocks.MockSessionUseCase{}

		router := newTestRouter()
		router.POST("/logout", NewSessionHandler(sessionUseCase, discardLogger()).LogoutHandler)

		w := performRequest(t, router, http.MethodPost, "/logout", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Admin authentication required."}`, w.Body.String())
	})

	t.Run("denylist failure", func(t *testing.T) {
		sessionUseCase := &mocks.MockSessionUseCase{}
		sessionUseCase.On("Logout", mock.Anything, "signed", mock.Anything).
			Return(errors.New("redis: connection refused")).
			Once()

		router := newTestRouter()
		router.POST("/logout", NewSessionHandler(sessionUseCase, discardLogger()).LogoutHandler)

		w := performRequest(t, router, http.MethodPost, "/logout", nil,
			map[string]string{"Authorization": "Bearer signed"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "redis")
	})
}

func TestSessionHandler_Me(t *testing.T) {
	admin := &authDomain.Admin{ID: "a1", Email: "x@y.com", Name: "X", Role: authDomain.RoleEditor, IsActive: true}
	handler := NewSessionHandler(&mocks.MockSessionUseCase{}, discardLogger())

	router := newTestRouter()
	router.GET("/me", withAdmin(admin), handler.MeHandler)
	router.GET("/anonymous", handler.MeHandler)

	w := performRequest(t, router, http.MethodGet, "/me", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.AdminResponse](t, w)
	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, "editor", resp.Role)

	w = performRequest(t, router, http.MethodGet, "/anonymous", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
