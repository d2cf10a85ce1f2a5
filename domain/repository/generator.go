package repository

import (
	"context"
	"errors"

	"video-distributor/domain/model"
)

var (
	// ErrMissingCredential is returned before any network call when no API
	// key is available.
	ErrMissingCredential = errors.New("missing generation API key")
	// ErrGenerationFailed covers transport errors, rejected requests and
	// responses that do not match the expected schema.
	ErrGenerationFailed = errors.New("content generation failed")
)

// IContentGenerator produces per-platform metadata from a free-text context.
// It returns either a complete mapping with one entry per registered
// platform, or nil and an error.
type IContentGenerator interface {
	Generate(ctx context.Context, apiKey, videoContext string) (map[model.PlatformID]model.GeneratedContent, error)
}
