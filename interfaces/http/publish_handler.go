package http

import (
	"net/http"

	"video-distributor/domain/dto"
	"video-distributor/usecase"

	"github.com/gin-gonic/gin"
)

type IPublishHandler interface {
	Publish(ctx *gin.Context)
	Reset(ctx *gin.Context)
}

type PublishHandler struct {
	publishUsecase usecase.IPublishUsecase
}

func NewPublishHandler(publishUsecase usecase.IPublishUsecase) IPublishHandler {
	return &PublishHandler{publishUsecase: publishUsecase}
}

// Publish returns as soon as the run is scheduled. Completions arrive on the
// session stream.
func (h *PublishHandler) Publish(ctx *gin.Context) {
	run, err := h.publishUsecase.Publish(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, dto.Success(dto.PublishResponse{
		SessionID: run.SessionID,
		Targets:   run.Targets,
		Skipped:   run.Skipped,
	}))
}

func (h *PublishHandler) Reset(ctx *gin.Context) {
	s, err := h.publishUsecase.Reset(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(dto.NewSessionResponse(s)))
}
