package usecase_test

import (
	"context"
	"testing"
	"time"

	"video-distributor/domain/model"
	"video-distributor/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_CreateGetDelete(t *testing.T) {
	reg := usecase.NewSessionRegistry(nil)

	store := reg.Create()
	_, err := uuid.Parse(store.ID())
	require.NoError(t, err)

	got, err := reg.Get(store.ID())
	require.NoError(t, err)
	assert.Same(t, store, got)

	require.NoError(t, reg.Delete(store.ID()))
	_, err = reg.Get(store.ID())
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	assert.ErrorIs(t, reg.Delete(store.ID()), usecase.ErrSessionNotFound)
}

func TestSessionRegistry_Sweep(t *testing.T) {
	reg := usecase.NewSessionRegistry(nil)
	idle := reg.Create()
	busy := reg.Create()
	require.True(t, busy.BeginPublishing())

	assert.Equal(t, 0, reg.Sweep(time.Hour))
	assert.Equal(t, 2, reg.Len())

	assert.Equal(t, 1, reg.Sweep(0))
	_, err := reg.Get(idle.ID())
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	_, err = reg.Get(busy.ID())
	assert.NoError(t, err)
}

func TestSessionUsecase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSessionUsecase(usecase.NewSessionRegistry(nil))

	s := uc.Create(ctx)
	require.True(t, s.Complete())

	file, err := model.NewSourceFile("a.mp4", 10, "")
	require.NoError(t, err)
	s, err = uc.SetFile(ctx, s.ID, file)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", s.File.MediaType)

	s, err = uc.SetContext(ctx, s.ID, "Tokyo street-food vlog")
	require.NoError(t, err)
	assert.Equal(t, "Tokyo street-food vlog", s.Context)

	s, err = uc.ReplaceContent(ctx, s.ID, model.PlatformXiaohongshu, model.GeneratedContent{Title: "东京"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, s.Content[model.PlatformXiaohongshu].Tags)

	tags := []string{"美食"}
	s, err = uc.UpdateContent(ctx, s.ID, model.PlatformXiaohongshu, model.ContentPatch{Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, model.GeneratedContent{Title: "东京", Tags: []string{"美食"}}, s.Content[model.PlatformXiaohongshu])

	_, err = uc.Get(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	_, err = uc.ToggleSelection(ctx, "missing", model.PlatformYouTube)
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}
