package http

import (
	"io"
	"net/http"

	"video-distributor/domain/dto"
	"video-distributor/domain/model"
	"video-distributor/infrastructure/realtime"
	"video-distributor/usecase"

	"github.com/gin-gonic/gin"
)

type ISessionHandler interface {
	Create(ctx *gin.Context)
	Get(ctx *gin.Context)
	Delete(ctx *gin.Context)
	SetFile(ctx *gin.Context)
	UploadFile(ctx *gin.Context)
	SetContext(ctx *gin.Context)
	ToggleSelection(ctx *gin.Context)
	ReplaceContent(ctx *gin.Context)
	UpdateContent(ctx *gin.Context)
	Stream(ctx *gin.Context)
}

type SessionHandler struct {
	sessionUsecase usecase.ISessionUsecase
	hub            *realtime.Hub
}

func NewSessionHandler(sessionUsecase usecase.ISessionUsecase, hub *realtime.Hub) ISessionHandler {
	return &SessionHandler{sessionUsecase: sessionUsecase, hub: hub}
}

func (h *SessionHandler) respond(ctx *gin.Context, s *model.Session, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(dto.NewSessionResponse(s)))
}

func (h *SessionHandler) Create(ctx *gin.Context) {
	s := h.sessionUsecase.Create(ctx.Request.Context())
	ctx.JSON(http.StatusCreated, dto.Success(dto.NewSessionResponse(s)))
}

func (h *SessionHandler) Get(ctx *gin.Context) {
	s, err := h.sessionUsecase.Get(ctx.Request.Context(), ctx.Param("id"))
	h.respond(ctx, s, err)
}

func (h *SessionHandler) Delete(ctx *gin.Context) {
	if err := h.sessionUsecase.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(nil))
}

// SetFile records file metadata sent as JSON.
func (h *SessionHandler) SetFile(ctx *gin.Context) {
	var req dto.SetFileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	h.setFile(ctx, req.Name, req.Size, req.MediaType)
}

// UploadFile accepts a multipart form but keeps only the "file" part's
// header. The video bytes are counted and discarded, never buffered.
func (h *SessionHandler) UploadFile(ctx *gin.Context) {
	reader, err := ctx.Request.MultipartReader()
	if err != nil {
		respondBadRequest(ctx, "multipart form expected")
		return
	}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			respondBadRequest(ctx, "malformed multipart form")
			return
		}
		if part.FormName() != "file" {
			_ = part.Close()
			continue
		}
		size, err := io.Copy(io.Discard, part)
		_ = part.Close()
		if err != nil {
			respondBadRequest(ctx, "malformed multipart form")
			return
		}
		h.setFile(ctx, part.FileName(), size, part.Header.Get("Content-Type"))
		return
	}
	respondBadRequest(ctx, "multipart field \"file\" is required")
}

func (h *SessionHandler) setFile(ctx *gin.Context, name string, size int64, mediaType string) {
	file, err := model.NewSourceFile(name, size, mediaType)
	if err != nil {
		respondError(ctx, err)
		return
	}
	s, err := h.sessionUsecase.SetFile(ctx.Request.Context(), ctx.Param("id"), file)
	h.respond(ctx, s, err)
}

func (h *SessionHandler) SetContext(ctx *gin.Context) {
	var req dto.SetContextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	s, err := h.sessionUsecase.SetContext(ctx.Request.Context(), ctx.Param("id"), req.Context)
	h.respond(ctx, s, err)
}

func (h *SessionHandler) ToggleSelection(ctx *gin.Context) {
	platform, ok := platformParam(ctx)
	if !ok {
		return
	}
	s, err := h.sessionUsecase.ToggleSelection(ctx.Request.Context(), ctx.Param("id"), platform)
	h.respond(ctx, s, err)
}

func (h *SessionHandler) ReplaceContent(ctx *gin.Context) {
	platform, ok := platformParam(ctx)
	if !ok {
		return
	}
	var req dto.ReplaceContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	content := model.GeneratedContent{Title: req.Title, Description: req.Description, Tags: req.Tags}
	s, err := h.sessionUsecase.ReplaceContent(ctx.Request.Context(), ctx.Param("id"), platform, content)
	h.respond(ctx, s, err)
}

func (h *SessionHandler) UpdateContent(ctx *gin.Context) {
	platform, ok := platformParam(ctx)
	if !ok {
		return
	}
	var req dto.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	patch := model.ContentPatch{Title: req.Title, Description: req.Description, Tags: req.Tags}
	s, err := h.sessionUsecase.UpdateContent(ctx.Request.Context(), ctx.Param("id"), platform, patch)
	h.respond(ctx, s, err)
}

func (h *SessionHandler) Stream(ctx *gin.Context) {
	sessionID := ctx.Param("id")
	err := h.hub.Serve(ctx, sessionID, func() (*model.Session, error) {
		return h.sessionUsecase.Get(ctx.Request.Context(), sessionID)
	})
	if err != nil {
		respondError(ctx, err)
	}
}
