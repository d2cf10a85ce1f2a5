package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// PlatformID identifies one of the supported destination services.
type PlatformID string

const (
	PlatformYouTube     PlatformID = "youtube"
	PlatformDouyin      PlatformID = "douyin"
	PlatformXiaohongshu PlatformID = "xiaohongshu"
	PlatformWeChat      PlatformID = "wechat"
	PlatformKuaishou    PlatformID = "kuaishou"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// Platform is the static, immutable configuration of a destination.
type Platform struct {
	ID               PlatformID `json:"id"`
	Name             string     `json:"name"`
	MaxTitleLength   int        `json:"maxTitleLength"`
	HasDescription   bool       `json:"hasDescription"`
	HasTags          bool       `json:"hasTags"`
	DescriptionLabel string     `json:"descriptionLabel,omitempty"`
	SelectedDefault  bool       `json:"selectedByDefault"`

	// Used when building the generation prompt.
	PromptLabel string `json:"-"`
	Style       string `json:"-"`
}

// platforms is kept in declaration order; that order drives rendering,
// prompt construction and publish sequencing.
var platforms = []Platform{
	{
		ID:              PlatformYouTube,
		Name:            "YouTube (油管)",
		MaxTitleLength:  100,
		HasDescription:  true,
		HasTags:         true,
		SelectedDefault: true,
		PromptLabel:     "YouTube",
		Style:           "SEO focused, Bilingual English/Chinese title if appropriate, detailed description",
	},
	{
		ID:              PlatformDouyin,
		Name:            "抖音 (Douyin)",
		MaxTitleLength:  50,
		HasDescription:  true,
		HasTags:         true,
		SelectedDefault: true,
		PromptLabel:     "Douyin (TikTok China)",
		Style:           "Catchy, short, viral hooks, trending memes",
	},
	{
		ID:               PlatformXiaohongshu,
		Name:             "小红书 (Red Book)",
		MaxTitleLength:   20,
		HasDescription:   true,
		HasTags:          true,
		DescriptionLabel: "笔记内容",
		PromptLabel:      "Xiaohongshu (Little Red Book)",
		Style:            `Emoji heavy, lifestyle vibe, "Note" style, emotional connection`,
	},
	{
		ID:             PlatformWeChat,
		Name:           "视频号 (Channels)",
		MaxTitleLength: 60,
		HasDescription: false,
		HasTags:        true,
		PromptLabel:    "WeChat Channels",
		Style:          "Professional, engaging, slightly more formal than Douyin",
	},
	{
		ID:             PlatformKuaishou,
		Name:           "快手 (Kuaishou)",
		MaxTitleLength: 50,
		HasDescription: true,
		HasTags:        true,
		PromptLabel:    "Kuaishou",
		Style:          "Down-to-earth, direct, high energy",
	},
}

// Platforms returns the registry in declaration order.
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// PlatformIDs returns the identifiers in declaration order.
func PlatformIDs() []PlatformID {
	ids := make([]PlatformID, 0, len(platforms))
	for _, p := range platforms {
		ids = append(ids, p.ID)
	}
	return ids
}

func LookupPlatform(id PlatformID) (Platform, bool) {
	for _, p := range platforms {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}

// ParsePlatformID normalises raw input (path params, JSON keys) into a
// registered identifier.
func ParsePlatformID(raw string) (PlatformID, error) {
	id := PlatformID(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := LookupPlatform(id); !ok {
		return "", ErrUnknownPlatform
	}
	return id, nil
}

// TitleLength counts characters, not bytes, so CJK titles are measured the
// way the platforms display them.
func (p Platform) TitleLength(title string) int {
	return utf8.RuneCountInString(title)
}

// TitleWithinLimit reports whether title fits the advisory cap. The cap is
// never enforced by truncation.
func (p Platform) TitleWithinLimit(title string) bool {
	return p.TitleLength(title) <= p.MaxTitleLength
}
