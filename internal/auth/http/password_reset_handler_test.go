package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/auth/usecase/mocks"
)

func newPasswordResetRouter(uc *mocks.MockPasswordResetUseCase) *gin.Engine {
	handler := NewPasswordResetHandler(uc, discardLogger())
	router := newTestRouter()
	router.POST("/password-reset", handler.RequestHandler)
	router.POST("/password-reset/confirm", handler.ConfirmHandler)
	return router
}

func TestPasswordResetHandler_Request(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		uc := &mocks.MockPasswordResetUseCase{}
		uc.On("RequestReset", mock.Anything, "x@y.com", mock.Anything).Return(nil).Once()

		w := performRequest(t, newPasswordResetRouter(uc), http.MethodPost, "/password-reset",
			map[string]string{"email": "x@y.com"}, nil)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"message":"`+MsgResetRequested+`"}`, w.Body.String())
		uc.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		uc := &mocks.MockPasswordResetUseCase{}

		w := performRequest(t, newPasswordResetRouter(uc), http.MethodPost, "/password-reset",
			map[string]string{"email": "not-an-email"}, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "RequestReset")
	})
}

func TestPasswordResetHandler_Confirm(t *testing.T) {
	body := map[string]string{"token": "reset-token", "password": "NewSecret123"}

	t.Run("success", func(t *testing.T) {
		uc := &mocks.MockPasswordResetUseCase{}
		uc.On("ConfirmReset", mock.Anything, "reset-token", "NewSecret123", mock.Anything).Return(nil).Once()

		w := performRequest(t, newPasswordResetRouter(uc), http.MethodPost, "/password-reset/confirm", body, nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("stale token", func(t *testing.T) {
		uc := &mocks.MockPasswordResetUseCase{}
		uc.On("ConfirmReset", mock.Anything, "reset-token", "NewSecret123", mock.Anything).
			Return(authDomain.ErrInvalidToken).
			Once()

		w := performRequest(t, newPasswordResetRouter(uc), http.MethodPost, "/password-reset/confirm", body, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"unauthorized","message":"Invalid or expired token."}`, w.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		uc := &mocks.MockPasswordResetUseCase{}

		w := performRequest(t, newPasswordResetRouter(uc), http.MethodPost, "/password-reset/confirm",
			map[string]string{"password": "NewSecret123"}, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "ConfirmReset")
	})
}
