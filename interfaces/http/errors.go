package http

import (
	"errors"
	"net/http"

	"video-distributor/domain/dto"
	"video-distributor/domain/model"
	"video-distributor/domain/repository"
	"video-distributor/infrastructure/logger"
	"video-distributor/usecase"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingCredential = "Gemini API key is not configured, open settings to add one"
	msgGenerationFailed  = "Failed to generate content, check the API key and try again"
)

// statusFor maps a usecase error onto an HTTP status and the envelope code.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, repository.ErrMissingCredential):
		return http.StatusUnauthorized, dto.CodeUnauthorized, msgMissingCredential
	case errors.Is(err, repository.ErrGenerationFailed), errors.Is(err, usecase.ErrIncompleteContent):
		return http.StatusBadGateway, dto.CodeUpstream, msgGenerationFailed
	case errors.Is(err, usecase.ErrSessionNotFound):
		return http.StatusNotFound, dto.CodeNotFound, err.Error()
	case errors.Is(err, usecase.ErrGenerationInProgress),
		errors.Is(err, usecase.ErrPublishInProgress),
		errors.Is(err, usecase.ErrNoSourceFile),
		errors.Is(err, usecase.ErrNothingToPublish):
		return http.StatusConflict, dto.CodeConflict, err.Error()
	case errors.Is(err, model.ErrUnknownPlatform),
		errors.Is(err, usecase.ErrBlankContext),
		errors.Is(err, model.ErrEmptyFile),
		errors.Is(err, model.ErrFileNameTooLong),
		errors.Is(err, model.ErrNotVideo):
		return http.StatusBadRequest, dto.CodeBadRequest, err.Error()
	}
	return http.StatusInternalServerError, dto.CodeInternal, "Internal server error"
}

func respondError(ctx *gin.Context, err error) {
	status, code, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.GetLogger().WithField("path", ctx.FullPath()).WithField("error", err).Error("Request failed")
	}
	ctx.JSON(status, dto.Fail(code, msg))
}

func respondBadRequest(ctx *gin.Context, msg string) {
	ctx.JSON(http.StatusBadRequest, dto.Fail(dto.CodeBadRequest, msg))
}

func platformParam(ctx *gin.Context) (model.PlatformID, bool) {
	id, err := model.ParsePlatformID(ctx.Param("platform"))
	if err != nil {
		respondError(ctx, err)
		return "", false
	}
	return id, true
}
