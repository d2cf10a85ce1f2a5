package dto

import (
	"time"

	"video-distributor/domain/model"
)

// SetFileRequest carries file metadata only; the video itself is never sent.
type SetFileRequest struct {
	Name      string `json:"name" binding:"required"`
	Size      int64  `json:"size"`
	MediaType string `json:"mediaType"`
}

type SetContextRequest struct {
	Context string `json:"context"`
}

type ReplaceContentRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// UpdateContentRequest is a field-level edit. Pointer fields distinguish an
// omitted field from an explicit empty value.
type UpdateContentRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

type SaveAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}

type SettingsResponse struct {
	HasAPIKey bool   `json:"hasApiKey"`
	Model     string `json:"model"`
}

// PlatformCard is one platform as rendered for a session.
type PlatformCard struct {
	model.Platform
	Selected       bool                   `json:"selected"`
	Content        model.GeneratedContent `json:"content"`
	Status         model.PublishStatus    `json:"status"`
	TitleLength    int                    `json:"titleLength"`
	TitleOverLimit bool                   `json:"titleOverLimit"`
}

type SessionResponse struct {
	ID           string            `json:"id"`
	File         *model.SourceFile `json:"file,omitempty"`
	Context      string            `json:"context"`
	IsGenerating bool              `json:"isGenerating"`
	IsPublishing bool              `json:"isPublishing"`
	Platforms    []PlatformCard    `json:"platforms"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// NewSessionResponse renders a snapshot in registry order.
func NewSessionResponse(s *model.Session) SessionResponse {
	res := SessionResponse{
		ID:           s.ID,
		File:         s.File,
		Context:      s.Context,
		IsGenerating: s.IsGenerating,
		IsPublishing: s.IsPublishing,
		UpdatedAt:    s.UpdatedAt,
	}
	for _, p := range model.Platforms() {
		content := s.Content[p.ID]
		res.Platforms = append(res.Platforms, PlatformCard{
			Platform:       p,
			Selected:       s.Selected[p.ID],
			Content:        content,
			Status:         s.Status[p.ID],
			TitleLength:    p.TitleLength(content.Title),
			TitleOverLimit: !p.TitleWithinLimit(content.Title),
		})
	}
	return res
}

type PublishResponse struct {
	SessionID string             `json:"sessionId"`
	Targets   []model.PlatformID `json:"targets"`
	Skipped   []model.PlatformID `json:"skipped,omitempty"`
}
