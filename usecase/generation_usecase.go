package usecase

import (
	"context"
	"errors"
	"strings"

	"video-distributor/domain/model"
	"video-distributor/domain/repository"
	"video-distributor/infrastructure/logger"
)

var (
	ErrBlankContext         = errors.New("video context is blank")
	ErrGenerationInProgress = errors.New("generation already in progress")
)

type IGenerationUsecase interface {
	// Generate fills every platform's content from the session context. An
	// empty apiKey falls back to the stored credential.
	Generate(ctx context.Context, sessionID, apiKey string) (*model.Session, error)
}

type generationUsecase struct {
	registry   ISessionRegistry
	credential repository.ICredential
	generator  repository.IContentGenerator
}

func NewGenerationUsecase(registry ISessionRegistry, credential repository.ICredential, generator repository.IContentGenerator) IGenerationUsecase {
	return &generationUsecase{registry: registry, credential: credential, generator: generator}
}

func (u *generationUsecase) Generate(ctx context.Context, sessionID, apiKey string) (*model.Session, error) {
	lg := logger.GetLogger().WithField("session_id", sessionID)
	store, err := u.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		stored, err := u.credential.GetAPIKey(ctx)
		if err != nil {
			return nil, err
		}
		apiKey = stored
	}
	if apiKey == "" {
		return nil, repository.ErrMissingCredential
	}

	// The context is read in the same replacement that sets the flag, so the
	// generator sees exactly the text present when the run began.
	var videoContext string
	_, err = store.Update(func(next *model.Session) error {
		if strings.TrimSpace(next.Context) == "" {
			return ErrBlankContext
		}
		if next.IsGenerating {
			return ErrGenerationInProgress
		}
		next.IsGenerating = true
		videoContext = next.Context
		return nil
	})
	if err != nil {
		return nil, err
	}

	// An in-flight call is not aborted when the requester goes away.
	results, err := u.generator.Generate(context.WithoutCancel(ctx), apiKey, videoContext)
	if err != nil {
		store.EndGenerating()
		lg.WithField("error", err).Warn("generation failed, keeping existing content")
		return nil, err
	}

	snap, err := store.Update(func(next *model.Session) error {
		next.IsGenerating = false
		return replaceAllContent(next, results)
	})
	if err != nil {
		store.EndGenerating()
		lg.WithField("error", err).Warn("generator returned partial content, keeping existing content")
		return nil, err
	}
	lg.Info("platform content replaced from generation")
	return snap, nil
}
