package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/schoolsite/internal/auth/http/dto"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
	"github.com/allisson/schoolsite/internal/httputil"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

// AdminHandler handles HTTP requests for admin account management.
type AdminHandler struct {
	adminUseCase authUseCase.AdminUseCase
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler with required dependencies.
func NewAdminHandler(adminUseCase authUseCase.AdminUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

// CreateHandler creates a new admin account.
// POST /v1/admin/admins - superadmin only. Returns 201 Created.
func (h *AdminHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAdminRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	admin, err := h.adminUseCase.Create(c.Request.Context(), ActorID(c), req.ToInput(), RequestMeta(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAdminToResponse(admin))
}

// GetHandler retrieves an admin by ID.
// GET /v1/admin/admins/:id - superadmin only.
func (h *AdminHandler) GetHandler(c *gin.Context) {
	admin, err := h.adminUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAdminToResponse(admin))
}

// ListHandler lists admins ordered by email.
// GET /v1/admin/admins?offset=0&limit=25 - superadmin only.
func (h *AdminHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	admins, err := h.adminUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.NewPageResponse(dto.MapAdminsToResponse(admins), offset, limit))
}

// UpdateHandler applies a partial update to an admin.
// PATCH /v1/admin/admins/:id - superadmin only.
func (h *AdminHandler) UpdateHandler(c *gin.Context) {
	var req dto.UpdateAdminRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	admin, err := h.adminUseCase.Update(
		c.Request.Context(),
		ActorID(c),
		c.Param("id"),
		req.ToInput(),
		RequestMeta(c),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAdminToResponse(admin))
}

// DeleteHandler deactivates an admin.
// DELETE /v1/admin/admins/:id - superadmin only. Returns 204 No Content.
func (h *AdminHandler) DeleteHandler(c *gin.Context) {
	err := h.adminUseCase.Delete(c.Request.Context(), ActorID(c), c.Param("id"), RequestMeta(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
