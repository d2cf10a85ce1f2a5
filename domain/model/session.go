package model

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// PublishStatus is the per-platform stage of a simulated publish run.
type PublishStatus string

const (
	PublishIdle      PublishStatus = "idle"
	PublishUploading PublishStatus = "uploading"
	PublishSuccess   PublishStatus = "success"
	PublishError     PublishStatus = "error"
)

func (s PublishStatus) Terminal() bool {
	return s == PublishSuccess || s == PublishError
}

const MaxFileNameLength = 255

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileNameTooLong = errors.New("filename too long - maximum 255 characters")
	ErrNotVideo        = errors.New("invalid file type - only video files are accepted")
)

// SourceFile is the metadata of the user-selected video. The binary content
// is never read.
type SourceFile struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	MediaType string    `json:"mediaType"`
	AddedAt   time.Time `json:"addedAt"`
}

// NewSourceFile validates file metadata. An empty or generic media type is
// inferred from the file extension.
func NewSourceFile(name string, size int64, mediaType string) (*SourceFile, error) {
	name = strings.TrimSpace(name)
	if size <= 0 {
		return nil, ErrEmptyFile
	}
	if len(name) > MaxFileNameLength {
		return nil, ErrFileNameTooLong
	}
	if mediaType == "" || mediaType == octetStream {
		mediaType = guessMediaType(name)
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if !strings.HasPrefix(mediaType, "video/") {
		return nil, ErrNotVideo
	}
	return &SourceFile{Name: name, Size: size, MediaType: mediaType, AddedAt: time.Now().UTC()}, nil
}

const octetStream = "application/octet-stream"

var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
}

func guessMediaType(name string) string {
	if ct, ok := videoExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return octetStream
}

// Session is the full in-memory state of one editing/publishing workflow.
// Every platform-keyed map holds exactly the registry keys.
type Session struct {
	ID           string                          `json:"id"`
	File         *SourceFile                     `json:"file,omitempty"`
	Context      string                          `json:"context"`
	Content      map[PlatformID]GeneratedContent `json:"platformContent"`
	Selected     map[PlatformID]bool             `json:"selectedPlatforms"`
	Status       map[PlatformID]PublishStatus    `json:"publishStatus"`
	IsGenerating bool                            `json:"isGenerating"`
	IsPublishing bool                            `json:"isPublishing"`
	CreatedAt    time.Time                       `json:"createdAt"`
	UpdatedAt    time.Time                       `json:"updatedAt"`
}

func NewSession(id string) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        id,
		Content:   make(map[PlatformID]GeneratedContent, len(platforms)),
		Selected:  make(map[PlatformID]bool, len(platforms)),
		Status:    make(map[PlatformID]PublishStatus, len(platforms)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, p := range platforms {
		s.Content[p.ID] = EmptyContent()
		s.Selected[p.ID] = p.SelectedDefault
		s.Status[p.ID] = PublishIdle
	}
	return s
}

// Clone deep-copies the session so the result can be mutated or handed to
// readers without aliasing.
func (s *Session) Clone() *Session {
	out := *s
	if s.File != nil {
		f := *s.File
		out.File = &f
	}
	out.Content = make(map[PlatformID]GeneratedContent, len(s.Content))
	for k, v := range s.Content {
		out.Content[k] = v.Clone()
	}
	out.Selected = make(map[PlatformID]bool, len(s.Selected))
	for k, v := range s.Selected {
		out.Selected[k] = v
	}
	out.Status = make(map[PlatformID]PublishStatus, len(s.Status))
	for k, v := range s.Status {
		out.Status[k] = v
	}
	return &out
}

// SelectedPlatforms returns the selected identifiers in registry order.
func (s *Session) SelectedPlatforms() []PlatformID {
	var ids []PlatformID
	for _, p := range platforms {
		if s.Selected[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Complete reports whether every platform-keyed map holds exactly the
// registry keys.
func (s *Session) Complete() bool {
	n := len(platforms)
	if len(s.Content) != n || len(s.Selected) != n || len(s.Status) != n {
		return false
	}
	for _, p := range platforms {
		if _, ok := s.Content[p.ID]; !ok {
			return false
		}
		if _, ok := s.Selected[p.ID]; !ok {
			return false
		}
		if _, ok := s.Status[p.ID]; !ok {
			return false
		}
	}
	return true
}
