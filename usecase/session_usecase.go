package usecase

import (
	"context"

	"video-distributor/domain/model"
)

type ISessionUsecase interface {
	Create(ctx context.Context) *model.Session
	Get(ctx context.Context, sessionID string) (*model.Session, error)
	Delete(ctx context.Context, sessionID string) error
	SetFile(ctx context.Context, sessionID string, file *model.SourceFile) (*model.Session, error)
	SetContext(ctx context.Context, sessionID, text string) (*model.Session, error)
	ToggleSelection(ctx context.Context, sessionID string, platform model.PlatformID) (*model.Session, error)
	ReplaceContent(ctx context.Context, sessionID string, platform model.PlatformID, content model.GeneratedContent) (*model.Session, error)
	UpdateContent(ctx context.Context, sessionID string, platform model.PlatformID, patch model.ContentPatch) (*model.Session, error)
}

type sessionUsecase struct {
	registry ISessionRegistry
}

func NewSessionUsecase(registry ISessionRegistry) ISessionUsecase {
	return &sessionUsecase{registry: registry}
}

func (u *sessionUsecase) Create(context.Context) *model.Session {
	return u.registry.Create().Snapshot()
}

func (u *sessionUsecase) Get(_ context.Context, sessionID string) (*model.Session, error) {
	store, err := u.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return store.Snapshot(), nil
}

func (u *sessionUsecase) Delete(_ context.Context, sessionID string) error {
	return u.registry.Delete(sessionID)
}

func (u *sessionUsecase) SetFile(_ context.Context, sessionID string, file *model.SourceFile) (*model.Session, error) {
	store, err := u.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return store.SetFile(file)
}

func (u *sessionUsecase) SetContext(_ context.Context, sessionID, text string) (*model.Session, error) {
	store, err := u.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return store.SetContext(text)
}

func (u *sessionUsecase) ToggleSelection(_ context.Context, sessionID string, platform model.PlatformID) (*model.Session, error) {
	store, err := u.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return store.ToggleSelection(platform)
}

func (u *sessionUsecase) ReplaceContent(_ context.Context, sessionID string, platform model.PlatformID, content model.GeneratedContent) (*model.Session, error) {
	store, err := u.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return store.ReplaceContent(platform, content)
}

func (u *sessionUsecase) UpdateContent(_ context.Context, sessionID string, platform model.PlatformID, patch model.ContentPatch) (*model.Session, error) {
	store, err := u.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return store.UpdateContent(platform, patch)
}
