// Package http provides HTTP handlers for site settings.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/schoolsite/internal/auth/http"
	"github.com/allisson/schoolsite/internal/httputil"
	"github.com/allisson/schoolsite/internal/setting/http/dto"
	settingUseCase "github.com/allisson/schoolsite/internal/setting/usecase"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

// SettingHandler handles HTTP requests for site settings.
type SettingHandler struct {
	settingUseCase settingUseCase.SettingUseCase
	logger         *slog.Logger
}

// NewSettingHandler creates a new setting handler with required dependencies.
func NewSettingHandler(settingUseCase settingUseCase.SettingUseCase, logger *slog.Logger) *SettingHandler {
	return &SettingHandler{
		settingUseCase: settingUseCase,
		logger:         logger,
	}
}

// PublicListHandler returns the flag map consumed by the public site.
// GET /v1/settings - no authentication.
func (h *SettingHandler) PublicListHandler(c *gin.Context) {
	settings, err := h.settingUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToPublicResponse(settings))
}

// AdminListHandler returns every setting with its audit fields.
// GET /v1/admin/settings - any authenticated admin.
func (h *SettingHandler) AdminListHandler(c *gin.Context) {
	settings, err := h.settingUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToListResponse(settings))
}

// UpdateHandler upserts a setting.
// PUT /v1/admin/settings/:key - admin or superadmin.
func (h *SettingHandler) UpdateHandler(c *gin.Context) {
	var req dto.UpdateSettingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	setting, err := h.settingUseCase.Update(
		c.Request.Context(),
		authHTTP.ActorID(c),
		c.Param("key"),
		req.ToInput(),
		authHTTP.RequestMeta(c),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingToResponse(setting))
}
