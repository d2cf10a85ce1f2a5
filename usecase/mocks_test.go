package usecase_test

import (
	"context"

	"video-distributor/domain/model"

	"github.com/stretchr/testify/mock"
)

type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) Generate(ctx context.Context, apiKey, videoContext string) (map[model.PlatformID]model.GeneratedContent, error) {
	args := m.Called(ctx, apiKey, videoContext)
	out, _ := args.Get(0).(map[model.PlatformID]model.GeneratedContent)
	return out, args.Error(1)
}

type MockCredential struct {
	mock.Mock
}

func (m *MockCredential) GetAPIKey(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCredential) SaveAPIKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
