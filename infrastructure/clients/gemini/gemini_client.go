package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"video-distributor/domain/model"
	"video-distributor/domain/repository"
	"video-distributor/infrastructure/logger"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Config holds the per-process generation settings. The API key is not part
// of it; callers pass the key on every Generate call.
type Config struct {
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// textFunc issues one structured generation request and returns the raw text.
type textFunc func(ctx context.Context, apiKey, modelName, prompt string, cfg *genai.GenerateContentConfig) (string, error)

// Client implements repository.IContentGenerator on top of the Gemini API.
type Client struct {
	model       string
	temperature float32
	timeout     time.Duration
	platforms   []model.Platform
	generate    textFunc
}

var _ repository.IContentGenerator = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		platforms:   model.Platforms(),
		generate:    generateText,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

func (c *Client) Generate(ctx context.Context, apiKey, videoContext string) (map[model.PlatformID]model.GeneratedContent, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, repository.ErrMissingCredential
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	temp := c.temperature
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   BuildSchema(c.platforms),
		Temperature:      &temp,
	}
	prompt := BuildPrompt(videoContext, c.platforms)

	text, err := c.generate(ctx, apiKey, c.model, prompt, cfg)
	if err != nil {
		logger.GetLogger().WithField("model", c.model).WithField("error", err).Error("Gemini generation error")
		return nil, fmt.Errorf("%w: %v", repository.ErrGenerationFailed, err)
	}

	result, err := ParseContent(text, c.platforms)
	if err != nil {
		logger.GetLogger().WithField("model", c.model).WithField("error", err).Error("Gemini returned unusable content")
		return nil, fmt.Errorf("%w: %v", repository.ErrGenerationFailed, err)
	}
	logger.GetLogger().WithField("model", c.model).WithField("platforms", len(result)).Info("Generated platform content")
	return result, nil
}

func generateText(ctx context.Context, apiKey, modelName, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}
	res, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return res.Text(), nil
}

type rawContent struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

var errEmptyResponse = errors.New("empty response text")

// ParseContent decodes the structured response. Every platform must be
// present with all three fields; anything less is rejected as a whole.
func ParseContent(text string, platforms []model.Platform) (map[model.PlatformID]model.GeneratedContent, error) {
	text = cleanJSON(text)
	if text == "" {
		return nil, errEmptyResponse
	}
	var raw map[string]rawContent
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	out := make(map[model.PlatformID]model.GeneratedContent, len(platforms))
	for _, p := range platforms {
		rc, ok := raw[string(p.ID)]
		if !ok {
			return nil, fmt.Errorf("response missing platform %q", p.ID)
		}
		if rc.Title == nil || rc.Description == nil || rc.Tags == nil {
			return nil, fmt.Errorf("response for %q missing required field", p.ID)
		}
		tags := make([]string, 0, len(*rc.Tags))
		tags = append(tags, (*rc.Tags)...)
		out[p.ID] = model.GeneratedContent{
			Title:       *rc.Title,
			Description: *rc.Description,
			Tags:        tags,
		}
	}
	return out, nil
}

// cleanJSON strips a markdown code fence some models wrap JSON in.
func cleanJSON(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
