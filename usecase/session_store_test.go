package usecase_test

import (
	"sync"
	"testing"

	"video-distributor/domain/model"
	"video-distributor/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContent(title string) model.GeneratedContent {
	return model.GeneratedContent{Title: title, Description: "desc " + title, Tags: []string{title}}
}

func fullContent(prefix string) map[model.PlatformID]model.GeneratedContent {
	out := make(map[model.PlatformID]model.GeneratedContent)
	for _, id := range model.PlatformIDs() {
		out[id] = sampleContent(prefix + string(id))
	}
	return out
}

func TestSessionStore_ToggleTwiceRestoresSelection(t *testing.T) {
	store := usecase.NewSessionStore("s", nil)
	_, err := store.ReplaceContent(model.PlatformDouyin, sampleContent("d"))
	require.NoError(t, err)
	before := store.Snapshot()

	for _, id := range model.PlatformIDs() {
		after1, err := store.ToggleSelection(id)
		require.NoError(t, err)
		assert.Equal(t, !before.Selected[id], after1.Selected[id])
		for _, other := range model.PlatformIDs() {
			if other == id {
				continue
			}
			assert.Equal(t, before.Selected[other], after1.Selected[other])
		}
		assert.Equal(t, before.Content, after1.Content)
		assert.Equal(t, before.Status, after1.Status)

		after2, err := store.ToggleSelection(id)
		require.NoError(t, err)
		assert.Equal(t, before.Selected, after2.Selected)
	}
}

func TestSessionStore_UnknownPlatformLeavesStateUnchanged(t *testing.T) {
	store := usecase.NewSessionStore("s", nil)
	before := store.Snapshot()

	_, err := store.ToggleSelection("instagram")
	assert.ErrorIs(t, err, model.ErrUnknownPlatform)
	_, err = store.ReplaceContent("instagram", sampleContent("x"))
	assert.ErrorIs(t, err, model.ErrUnknownPlatform)
	_, err = store.SetPublishStatus("instagram", model.PublishSuccess)
	assert.ErrorIs(t, err, model.ErrUnknownPlatform)

	after := store.Snapshot()
	assert.Equal(t, before.Selected, after.Selected)
	assert.Equal(t, before.Content, after.Content)
	assert.Equal(t, before.Status, after.Status)
	assert.True(t, after.Complete())
}

func TestSessionStore_OperationSequenceKeepsMapsComplete(t *testing.T) {
	store := usecase.NewSessionStore("s", nil)
	file, err := model.NewSourceFile("tokyo.mp4", 1024, "video/mp4")
	require.NoError(t, err)

	steps := []func() (*model.Session, error){
		func() (*model.Session, error) { return store.SetFile(file) },
		func() (*model.Session, error) { return store.SetContext("Tokyo street-food vlog") },
		func() (*model.Session, error) { return store.ToggleSelection(model.PlatformWeChat) },
		func() (*model.Session, error) { return store.ReplaceAllContent(fullContent("gen-")) },
		func() (*model.Session, error) {
			title := "edited"
			return store.UpdateContent(model.PlatformKuaishou, model.ContentPatch{Title: &title})
		},
		func() (*model.Session, error) {
			return store.SetPublishStatus(model.PlatformYouTube, model.PublishUploading)
		},
	}
	for i, step := range steps {
		snap, err := step()
		require.NoError(t, err, "step %d", i)
		assert.True(t, snap.Complete(), "step %d", i)
	}

	final := store.Snapshot()
	assert.Equal(t, "edited", final.Content[model.PlatformKuaishou].Title)
	assert.Equal(t, "desc gen-kuaishou", final.Content[model.PlatformKuaishou].Description)
	assert.Equal(t, "tokyo.mp4", final.File.Name)
}

func TestSessionStore_ReplaceAllContentIsAtomic(t *testing.T) {
	store := usecase.NewSessionStore("s", nil)
	_, err := store.ReplaceAllContent(fullContent("v1-"))
	require.NoError(t, err)

	partial := fullContent("v2-")
	delete(partial, model.PlatformWeChat)
	_, err = store.ReplaceAllContent(partial)
	assert.ErrorIs(t, err, usecase.ErrIncompleteContent)

	snap := store.Snapshot()
	for _, id := range model.PlatformIDs() {
		assert.Equal(t, "v1-"+string(id), snap.Content[id].Title)
	}

	_, err = store.ReplaceAllContent(fullContent("v2-"))
	require.NoError(t, err)
	snap = store.Snapshot()
	for _, id := range model.PlatformIDs() {
		assert.Equal(t, "v2-"+string(id), snap.Content[id].Title)
	}
}

func TestSessionStore_SnapshotIsIsolated(t *testing.T) {
	store := usecase.NewSessionStore("s", nil)
	snap := store.Snapshot()
	snap.Selected[model.PlatformKuaishou] = true
	snap.Content[model.PlatformYouTube] = sampleContent("leak")

	fresh := store.Snapshot()
	assert.False(t, fresh.Selected[model.PlatformKuaishou])
	assert.Empty(t, fresh.Content[model.PlatformYouTube].Title)
}

func TestSessionStore_BusyFlags(t *testing.T) {
	store := usecase.NewSessionStore("s", nil)

	assert.True(t, store.BeginGenerating())
	assert.False(t, store.BeginGenerating())
	store.EndGenerating()
	assert.True(t, store.BeginGenerating())

	assert.True(t, store.BeginPublishing())
	assert.False(t, store.BeginPublishing())
	store.EndPublishing()
	assert.False(t, store.Snapshot().IsPublishing)
}

func TestSessionStore_ListenerSeesEveryMutation(t *testing.T) {
	var mu sync.Mutex
	var seen []*model.Session
	store := usecase.NewSessionStore("s", func(s *model.Session) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	_, _ = store.SetContext("a")
	_, _ = store.ToggleSelection(model.PlatformWeChat)
	_, _ = store.ToggleSelection("nope")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, "a", seen[0].Context)
	assert.True(t, seen[1].Selected[model.PlatformWeChat])
}
