package http

import (
	"net/http"

	"video-distributor/domain/dto"
	"video-distributor/interfaces/middleware"
	"video-distributor/usecase"

	"github.com/gin-gonic/gin"
)

type IGenerationHandler interface {
	Generate(ctx *gin.Context)
}

type GenerationHandler struct {
	generationUsecase usecase.IGenerationUsecase
}

func NewGenerationHandler(generationUsecase usecase.IGenerationUsecase) IGenerationHandler {
	return &GenerationHandler{generationUsecase: generationUsecase}
}

// Generate blocks until the model answers. A bearer key on the request takes
// precedence over the stored one.
func (h *GenerationHandler) Generate(ctx *gin.Context) {
	s, err := h.generationUsecase.Generate(ctx.Request.Context(), ctx.Param("id"), ctx.GetString(middleware.APIKeyContextKey))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(dto.NewSessionResponse(s)))
}
