package repository

import "context"

// ICredential stores the single generation API key.
type ICredential interface {
	// GetAPIKey returns "" when no key has been saved.
	GetAPIKey(ctx context.Context) (string, error)
	SaveAPIKey(ctx context.Context, apiKey string) error
}
