// Package http provides the public contact form endpoint.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/schoolsite/internal/contact/http/dto"
	contactUseCase "github.com/allisson/schoolsite/internal/contact/usecase"
	"github.com/allisson/schoolsite/internal/httputil"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

// MsgContactAccepted is returned once a submission is queued for delivery.
const MsgContactAccepted = "Thank you. Your message has been received."

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactUseCase contactUseCase.ContactUseCase
	logger         *slog.Logger
}

// NewContactHandler creates a new contact handler with required dependencies.
func NewContactHandler(contactUseCase contactUseCase.ContactUseCase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contactUseCase,
		logger:         logger,
	}
}

// SubmitHandler queues a contact message.
// POST /v1/contact - rate limited per IP. Returns 202 Accepted.
func (h *ContactHandler) SubmitHandler(c *gin.Context) {
	var req dto.ContactRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.contactUseCase.Submit(c.Request.Context(), req.ToDomain(c.ClientIP())); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, httputil.MessageResponse{Message: MsgContactAccepted})
}
