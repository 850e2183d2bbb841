package domain

import (
	"slices"
	"strings"
	"time"
)

// UserProfile is the aggregate root: a user's links, theme and settings.
// Username is fixed at creation and addresses the public page.
type UserProfile struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	Avatar       string       `json:"avatar,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Links        []Link       `json:"links"`
	Theme        Theme        `json:"theme"`
	Settings     UserSettings `json:"settings"`
	PasswordHash string       `json:"-"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type UserSettings struct {
	AllowAnalytics  bool   `json:"allowAnalytics"`
	IsProfilePublic bool   `json:"isProfilePublic"`
	CustomDomain    string `json:"customDomain,omitempty"`
	CacheVersion    int64  `json:"cacheVersion,omitempty"`
}

// ProfileUpdate is a single typed field update applied by UpdateProfile.
type ProfileUpdate interface {
	apply(p *UserProfile)
}

type SetEmail string

func (u SetEmail) apply(p *UserProfile) { p.Email = string(u) }

type SetBio string

func (u SetBio) apply(p *UserProfile) { p.Bio = string(u) }

type SetAvatar string

func (u SetAvatar) apply(p *UserProfile) { p.Avatar = string(u) }

type SetTheme Theme

func (u SetTheme) apply(p *UserProfile) { p.Theme = Theme(u) }

type SetSettings UserSettings

func (u SetSettings) apply(p *UserProfile) { p.Settings = UserSettings(u) }

// ReplaceLinks swaps the whole links array; there is no per-link merge.
type ReplaceLinks []Link

func (u ReplaceLinks) apply(p *UserProfile) { p.Links = slices.Clone([]Link(u)) }

// UpdateProfile returns a new snapshot of current with updates applied in
// order. current is not modified and the result shares no links storage
// with it. Callers validate field contents beforehand.
func UpdateProfile(current UserProfile, updates ...ProfileUpdate) UserProfile {
	next := current
	next.Links = slices.Clone(current.Links)
	for _, u := range updates {
		u.apply(&next)
	}
	return next
}

// BumpCacheVersion returns settings with the cache version incremented.
func (s UserSettings) BumpCacheVersion() UserSettings {
	s.CacheVersion++
	return s
}

// ShareURL is the public address of the profile.
func (p UserProfile) ShareURL(origin string) string {
	return strings.TrimRight(origin, "/") + "/" + p.Username
}

// FindLink returns the link with the given id.
func FindLink(links []Link, id string) (Link, error) {
	i := slices.IndexFunc(links, func(l Link) bool { return l.ID == id })
	if i < 0 {
		return Link{}, &NotFoundError{Resource: "link", ID: id}
	}
	return links[i], nil
}

// AddLink appends link, placing it after the existing ones.
func AddLink(links []Link, link Link) []Link {
	link.Order = len(links) + 1
	out := slices.Clone(links)
	return append(out, link)
}

// EditLink replaces the editable fields of the link with the given id,
// keeping its id, order and pin state.
func EditLink(links []Link, id string, edited Link) ([]Link, error) {
	return replaceLink(links, id, func(l *Link) {
		l.Title = edited.Title
		l.URL = edited.URL
		l.Icon = edited.Icon
		l.Enabled = edited.Enabled
		l.Type = edited.Type
		l.CustomColor = edited.CustomColor
		l.Subtitle = edited.Subtitle
	})
}

func ToggleLink(links []Link, id string, enabled bool) ([]Link, error) {
	return replaceLink(links, id, func(l *Link) { l.Enabled = enabled })
}

func PinLink(links []Link, id string, pinned bool) ([]Link, error) {
	return replaceLink(links, id, func(l *Link) { l.Pinned = pinned })
}

// DeleteLink removes the link with the given id. Remaining order values are
// left as they are.
func DeleteLink(links []Link, id string) ([]Link, error) {
	i := slices.IndexFunc(links, func(l Link) bool { return l.ID == id })
	if i < 0 {
		return nil, &NotFoundError{Resource: "link", ID: id}
	}
	out := slices.Clone(links)
	return slices.Delete(out, i, i+1), nil
}

func replaceLink(links []Link, id string, mutate func(*Link)) ([]Link, error) {
	i := slices.IndexFunc(links, func(l Link) bool { return l.ID == id })
	if i < 0 {
		return nil, &NotFoundError{Resource: "link", ID: id}
	}
	out := slices.Clone(links)
	mutate(&out[i])
	return out, nil
}

// PublicLink is a link as shown to visitors.
type PublicLink struct {
	Link
	TypeLabel      string `json:"typeLabel"`
	YouTubeVideoID string `json:"youtubeVideoId,omitempty"`
}

// PublicProfile is the rendered view of a profile.
type PublicProfile struct {
	Username     string       `json:"username"`
	Avatar       string       `json:"avatar,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Links        []PublicLink `json:"links"`
	Style        ThemeStyle   `json:"style"`
	ShareURL     string       `json:"shareUrl"`
	CacheVersion int64        `json:"cacheVersion"`
}

// Render builds the visitor (or owner, when editable) view of p.
func Render(p UserProfile, catalog []ThemeOption, origin string, editable bool) PublicProfile {
	view := PublicProfile{
		Username:     p.Username,
		Avatar:       p.Avatar,
		Bio:          p.Bio,
		Links:        []PublicLink{},
		Style:        Style(ResolveTheme(p.Theme.ID, catalog), p.Theme),
		ShareURL:     p.ShareURL(origin),
		CacheVersion: p.Settings.CacheVersion,
	}
	for l := range VisibleLinks(p.Links, editable) {
		pl := PublicLink{Link: l, TypeLabel: l.Type.Label()}
		if l.Type == LinkTypeYouTube {
			pl.YouTubeVideoID, _ = YouTubeVideoID(l.URL)
		}
		view.Links = append(view.Links, pl)
	}
	return view
}
