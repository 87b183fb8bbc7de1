package controller

import (
	"errors"
	"net/http"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/dto"
	settingdomain "github.com/dukkanlabs/dukkan-erp/internal/domain/setting"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
	"github.com/gin-gonic/gin"
)

// SettingController handles store configuration requests
type SettingController struct {
	settingRepo settingdomain.Repository
	logger      logger.Logger
}

// NewSettingController creates a new SettingController
func NewSettingController(settingRepo settingdomain.Repository, logger logger.Logger) *SettingController {
	return &SettingController{
		settingRepo: settingRepo,
		logger:      logger,
	}
}

// List returns all settings
// @Summary List settings
// @Tags settings
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SettingListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /settings [get]
func (c *SettingController) List(ctx *gin.Context) {
	settings, err := c.settingRepo.List(ctx)
	if err != nil {
		c.logger.Error("failed to list settings", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list settings", err.Error()))
		return
	}

	items := make([]dto.SettingResponse, len(settings))
	for i, s := range settings {
		items[i] = *dto.ToSettingResponse(s)
	}
	ctx.JSON(http.StatusOK, dto.SettingListResponse{Items: items})
}

// Get returns a setting by key
// @Summary Get setting
// @Tags settings
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param key path string true "Setting key"
// @Success 200 {object} dto.SettingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /settings/{key} [get]
func (c *SettingController) Get(ctx *gin.Context) {
	key := ctx.Param("key")

	s, err := c.settingRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, settingdomain.ErrSettingNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "setting not found", ""))
			return
		}
		c.logger.Error("failed to get setting", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to get setting", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingResponse(s))
}

// Put creates or replaces a setting
// @Summary Put setting
// @Tags settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param key path string true "Setting key"
// @Param setting body dto.SettingRequest true "Setting value"
// @Success 200 {object} dto.SettingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /settings/{key} [put]
func (c *SettingController) Put(ctx *gin.Context) {
	key := ctx.Param("key")

	var req dto.SettingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	s, err := settingdomain.NewSetting(key, req.Value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to store setting", err.Error()))
		return
	}

	if err := c.settingRepo.Put(ctx, s); err != nil {
		c.logger.Error("failed to store setting", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to store setting", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingResponse(s))
}

// Delete removes a setting
// @Summary Delete setting
// @Tags settings
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param key path string true "Setting key"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /settings/{key} [delete]
func (c *SettingController) Delete(ctx *gin.Context) {
	key := ctx.Param("key")

	if err := c.settingRepo.Delete(ctx, key); err != nil {
		if errors.Is(err, settingdomain.ErrSettingNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "setting not found", ""))
			return
		}
		c.logger.Error("failed to delete setting", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete setting", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("setting deleted", nil))
}
