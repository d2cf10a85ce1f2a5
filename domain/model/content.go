package model

// GeneratedContent is the title/description/tags triple for one platform.
type GeneratedContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func EmptyContent() GeneratedContent {
	return GeneratedContent{Tags: []string{}}
}

// Clone returns a copy that shares no backing array with c.
func (c GeneratedContent) Clone() GeneratedContent {
	tags := make([]string, len(c.Tags))
	copy(tags, c.Tags)
	return GeneratedContent{Title: c.Title, Description: c.Description, Tags: tags}
}

// ContentPatch carries a field-level edit. Nil fields are left untouched.
type ContentPatch struct {
	Title       *string
	Description *string
	Tags        *[]string
}

func (c GeneratedContent) Apply(patch ContentPatch) GeneratedContent {
	out := c.Clone()
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Tags != nil {
		out.Tags = append([]string{}, (*patch.Tags)...)
	}
	return out
}
