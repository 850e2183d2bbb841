package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// LinkType selects type-specific validation and rendering for a link.
type LinkType string

const (
	LinkTypeDefault   LinkType = "default"
	LinkTypeYouTube   LinkType = "youtube"
	LinkTypeTwitter   LinkType = "twitter"
	LinkTypeInstagram LinkType = "instagram"
	LinkTypeTikTok    LinkType = "tiktok"
	LinkTypeGitHub    LinkType = "github"
	LinkTypeLinkedIn  LinkType = "linkedin"
	LinkTypeEmail     LinkType = "email"
	LinkTypeCustom    LinkType = "custom"
)

var linkTypes = map[LinkType]string{
	LinkTypeDefault:   "Default Link",
	LinkTypeYouTube:   "YouTube",
	LinkTypeTwitter:   "Twitter/X",
	LinkTypeInstagram: "Instagram",
	LinkTypeTikTok:    "TikTok",
	LinkTypeGitHub:    "GitHub",
	LinkTypeLinkedIn:  "LinkedIn",
	LinkTypeEmail:     "Email",
	LinkTypeCustom:    "Custom",
}

// Valid reports whether t is one of the known link types.
func (t LinkType) Valid() bool {
	_, ok := linkTypes[t]
	return ok
}

// Label is the human readable name of the type.
func (t LinkType) Label() string {
	return linkTypes[t]
}

// Link is a single entry on a profile page.
type Link struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Icon        string   `json:"icon,omitempty"`
	Enabled     bool     `json:"enabled"`
	Order       int      `json:"order"`
	Pinned      bool     `json:"pinned,omitempty"`
	Type        LinkType `json:"type"`
	CustomColor string   `json:"customColor,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
}

// LinkInput is the user supplied part of a link, as submitted by the editor
// form. Enabled is a pointer so an omitted checkbox can default to true.
type LinkInput struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Icon        string   `json:"icon,omitempty"`
	Enabled     *bool    `json:"enabled,omitempty"`
	Type        LinkType `json:"type,omitempty"`
	CustomColor string   `json:"customColor,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
}

var (
	schemePattern  = regexp.MustCompile(`(?i)^https?://`)
	mailtoPattern  = regexp.MustCompile(`(?i)^mailto:`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	youtubeHost    = regexp.MustCompile(`(?i)^([a-z0-9-]+\.)*(youtube\.com|youtu\.be)$`)
	youtubeIDMatch = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)
)

// NormalizeLink validates input and returns a link whose URL carries a
// scheme. It does not assign ID or Order.
func NormalizeLink(input LinkInput) (Link, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Link{}, newValidationError("title", "title is required")
	}
	raw := strings.TrimSpace(input.URL)
	if raw == "" {
		return Link{}, newValidationError("url", "url is required")
	}

	typ := input.Type
	if typ == "" {
		typ = LinkTypeDefault
	}
	if !typ.Valid() {
		return Link{}, newValidationError("type", "unknown link type "+string(typ))
	}

	normalized, err := normalizeURL(raw, typ)
	if err != nil {
		return Link{}, err
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	return Link{
		Title:       title,
		URL:         normalized,
		Icon:        input.Icon,
		Enabled:     enabled,
		Type:        typ,
		CustomColor: input.CustomColor,
		Subtitle:    strings.TrimSpace(input.Subtitle),
	}, nil
}

func normalizeURL(raw string, typ LinkType) (string, error) {
	if typ == LinkTypeEmail {
		address := mailtoPattern.ReplaceAllString(raw, "")
		if !emailPattern.MatchString(address) {
			return "", newValidationError("url", "must be a valid email address")
		}
		return "mailto:" + address, nil
	}

	candidate := raw
	if !schemePattern.MatchString(candidate) {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return "", newValidationError("url", "must be a valid URL")
	}

	if typ == LinkTypeYouTube && !youtubeHost.MatchString(u.Hostname()) {
		return "", newValidationError("url", "must be a youtube.com or youtu.be URL")
	}

	return candidate, nil
}

// YouTubeVideoID extracts the 11 character video id from a YouTube URL.
func YouTubeVideoID(rawURL string) (string, bool) {
	m := youtubeIDMatch.FindStringSubmatch(rawURL)
	if m == nil || len(m[2]) != 11 {
		return "", false
	}
	return m[2], true
}
