package usecase

import (
	"context"
	"strings"

	"video-distributor/domain/repository"
	"video-distributor/infrastructure/logger"
)

type ISettingsUsecase interface {
	HasAPIKey(ctx context.Context) (bool, error)
	SaveAPIKey(ctx context.Context, apiKey string) error
}

type settingsUsecase struct {
	credential repository.ICredential
}

func NewSettingsUsecase(credential repository.ICredential) ISettingsUsecase {
	return &settingsUsecase{credential: credential}
}

func (u *settingsUsecase) HasAPIKey(ctx context.Context) (bool, error) {
	key, err := u.credential.GetAPIKey(ctx)
	if err != nil {
		return false, err
	}
	return key != "", nil
}

func (u *settingsUsecase) SaveAPIKey(ctx context.Context, apiKey string) error {
	if err := u.credential.SaveAPIKey(ctx, strings.TrimSpace(apiKey)); err != nil {
		return err
	}
	logger.GetLogger().WithField("cleared", strings.TrimSpace(apiKey) == "").Info("API key updated")
	return nil
}
