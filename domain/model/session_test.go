package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession("s-1")

	require.True(t, s.Complete())
	assert.Nil(t, s.File)
	assert.False(t, s.IsGenerating)
	assert.False(t, s.IsPublishing)
	assert.Equal(t, []PlatformID{PlatformYouTube, PlatformDouyin}, s.SelectedPlatforms())
	for _, id := range PlatformIDs() {
		assert.Equal(t, PublishIdle, s.Status[id])
		assert.Equal(t, EmptyContent(), s.Content[id])
	}
}

func TestSession_CloneDoesNotAlias(t *testing.T) {
	s := NewSession("s-1")
	s.Content[PlatformYouTube] = GeneratedContent{Title: "t", Tags: []string{"a"}}
	s.File = &SourceFile{Name: "a.mp4", Size: 1, MediaType: "video/mp4"}

	c := s.Clone()
	c.Content[PlatformYouTube].Tags[0] = "changed"
	c.Selected[PlatformKuaishou] = true
	c.Status[PlatformDouyin] = PublishSuccess
	c.File.Name = "b.mp4"

	assert.Equal(t, "a", s.Content[PlatformYouTube].Tags[0])
	assert.False(t, s.Selected[PlatformKuaishou])
	assert.Equal(t, PublishIdle, s.Status[PlatformDouyin])
	assert.Equal(t, "a.mp4", s.File.Name)
}

func TestSession_CompleteDetectsMissingKey(t *testing.T) {
	s := NewSession("s-1")
	delete(s.Status, PlatformWeChat)
	assert.False(t, s.Complete())
}

func TestGeneratedContent_Apply(t *testing.T) {
	base := GeneratedContent{Title: "old", Description: "desc", Tags: []string{"x"}}
	title := "new"
	tags := []string{"y", "z"}

	out := base.Apply(ContentPatch{Title: &title, Tags: &tags})
	assert.Equal(t, GeneratedContent{Title: "new", Description: "desc", Tags: []string{"y", "z"}}, out)
	assert.Equal(t, "old", base.Title)
}

func TestNewSourceFile(t *testing.T) {
	tests := []struct {
		name      string
		fileName  string
		size      int64
		mediaType string
		wantType  string
		wantErr   error
	}{
		{name: "declared video type", fileName: "vlog.mov", size: 10, mediaType: "video/quicktime", wantType: "video/quicktime"},
		{name: "parameters stripped", fileName: "vlog.webm", size: 10, mediaType: "Video/WebM; codecs=vp9", wantType: "video/webm"},
		{name: "inferred from extension", fileName: "vlog.mp4", size: 10, wantType: "video/mp4"},
		{name: "generic type inferred", fileName: "clip.MKV", size: 10, mediaType: "application/octet-stream", wantType: "video/x-matroska"},
		{name: "empty file", fileName: "vlog.mp4", size: 0, wantErr: ErrEmptyFile},
		{name: "audio rejected", fileName: "song.mp3", size: 10, mediaType: "audio/mpeg", wantErr: ErrNotVideo},
		{name: "unknown extension", fileName: "notes.zzz", size: 10, wantErr: ErrNotVideo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewSourceFile(tt.fileName, tt.size, tt.mediaType)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, f.MediaType)
			assert.Equal(t, tt.size, f.Size)
		})
	}
}
