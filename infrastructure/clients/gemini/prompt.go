package gemini

import (
	"fmt"
	"strings"

	"video-distributor/domain/model"

	"google.golang.org/genai"
)

const promptHeader = `You are an expert social media manager for the Chinese market.
I have a video with the following context/summary: %q.

Please generate optimized metadata (Title, Description, Tags) in CHINESE (Simplified) for the following platforms:
`

const promptFooter = `
Ensure the tone matches each platform's unique culture in China.
Return the result in strictly structured JSON, one object per platform keyed by its id.`

// BuildPrompt renders the instruction for every registered platform from
// the registry's style table.
func BuildPrompt(videoContext string, platforms []model.Platform) string {
	var b strings.Builder
	fmt.Fprintf(&b, promptHeader, strings.TrimSpace(videoContext))
	for i, p := range platforms {
		fmt.Fprintf(&b, "%d. %s [id: %s] (%s)", i+1, p.PromptLabel, p.ID, p.Style)
		if !p.HasDescription {
			b.WriteString(" - caption only, keep description empty")
		}
		fmt.Fprintf(&b, " - title at most %d characters\n", p.MaxTitleLength)
	}
	b.WriteString(promptFooter)
	return b.String()
}

func contentSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required:         []string{"title", "description", "tags"},
		PropertyOrdering: []string{"title", "description", "tags"},
	}
}

// BuildSchema requires exactly one content object per platform.
func BuildSchema(platforms []model.Platform) *genai.Schema {
	s := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(platforms)),
	}
	for _, p := range platforms {
		s.Properties[string(p.ID)] = contentSchema()
		s.Required = append(s.Required, string(p.ID))
		s.PropertyOrdering = append(s.PropertyOrdering, string(p.ID))
	}
	return s
}
