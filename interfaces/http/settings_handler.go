package http

import (
	"net/http"

	"video-distributor/domain/dto"
	"video-distributor/infrastructure/logger"
	"video-distributor/usecase"

	"github.com/gin-gonic/gin"
)

type ISettingsHandler interface {
	Get(ctx *gin.Context)
	SaveAPIKey(ctx *gin.Context)
}

type SettingsHandler struct {
	settingsUsecase usecase.ISettingsUsecase
	model           string
}

func NewSettingsHandler(settingsUsecase usecase.ISettingsUsecase, model string) ISettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase, model: model}
}

// Get never returns the key itself. A client seeing hasApiKey=false should
// open its settings prompt.
func (h *SettingsHandler) Get(ctx *gin.Context) {
	has, err := h.settingsUsecase.HasAPIKey(ctx.Request.Context())
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to read stored API key")
		ctx.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeInternal, "Failed to read settings"))
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(dto.SettingsResponse{HasAPIKey: has, Model: h.model}))
}

func (h *SettingsHandler) SaveAPIKey(ctx *gin.Context) {
	var req dto.SaveAPIKeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := h.settingsUsecase.SaveAPIKey(ctx.Request.Context(), req.APIKey); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to save API key")
		ctx.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeInternal, "Failed to save settings"))
		return
	}
	h.Get(ctx)
}
