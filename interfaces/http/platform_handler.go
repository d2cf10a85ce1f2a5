package http

import (
	"net/http"

	"video-distributor/domain/dto"
	"video-distributor/domain/model"

	"github.com/gin-gonic/gin"
)

type IPlatformHandler interface {
	List(ctx *gin.Context)
}

type PlatformHandler struct{}

func NewPlatformHandler() IPlatformHandler {
	return &PlatformHandler{}
}

func (h *PlatformHandler) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.Success(model.Platforms()))
}
