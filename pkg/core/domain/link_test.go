package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		name    string
		input   LinkInput
		wantURL string
		field   string
	}{
		{
			name:    "bare domain gets https",
			input:   LinkInput{Title: "Blog", URL: "medium.com", Type: LinkTypeDefault},
			wantURL: "https://medium.com",
		},
		{
			name:    "http scheme kept",
			input:   LinkInput{Title: "Old", URL: "http://example.com/a"},
			wantURL: "http://example.com/a",
		},
		{
			name:    "scheme match is case insensitive",
			input:   LinkInput{Title: "Caps", URL: "HTTPS://Example.com"},
			wantURL: "HTTPS://Example.com",
		},
		{
			name:    "email gets mailto",
			input:   LinkInput{Title: "Contact", URL: "me@x.com", Type: LinkTypeEmail},
			wantURL: "mailto:me@x.com",
		},
		{
			name:    "email with mailto is not prefixed twice",
			input:   LinkInput{Title: "Contact", URL: "mailto:me@x.com", Type: LinkTypeEmail},
			wantURL: "mailto:me@x.com",
		},
		{
			name:    "youtube short host",
			input:   LinkInput{Title: "Vid", URL: "youtu.be/dQw4w9WgXcQ", Type: LinkTypeYouTube},
			wantURL: "https://youtu.be/dQw4w9WgXcQ",
		},
		{
			name:    "youtube subdomain",
			input:   LinkInput{Title: "Vid", URL: "https://m.youtube.com/watch?v=dQw4w9WgXcQ", Type: LinkTypeYouTube},
			wantURL: "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:  "youtube type rejects other hosts",
			input: LinkInput{Title: "Vid", URL: "notyoutube.com/x", Type: LinkTypeYouTube},
			field: "url",
		},
		{
			name:  "invalid email",
			input: LinkInput{Title: "Contact", URL: "not-an-email", Type: LinkTypeEmail},
			field: "url",
		},
		{
			name:  "missing title",
			input: LinkInput{Title: "   ", URL: "example.com"},
			field: "title",
		},
		{
			name:  "missing url",
			input: LinkInput{Title: "Empty", URL: " "},
			field: "url",
		},
		{
			name:  "unknown type",
			input: LinkInput{Title: "X", URL: "example.com", Type: "myspace"},
			field: "type",
		},
		{
			name:  "no host",
			input: LinkInput{Title: "X", URL: "https://"},
			field: "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := NormalizeLink(tt.input)
			if tt.field != "" {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
				assert.Equal(t, tt.field, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, link.URL)
		})
	}
}

func TestNormalizeLinkDefaults(t *testing.T) {
	link, err := NormalizeLink(LinkInput{Title: "  Site  ", URL: " example.com "})
	require.NoError(t, err)

	assert.Equal(t, "Site", link.Title)
	assert.Equal(t, LinkTypeDefault, link.Type)
	assert.True(t, link.Enabled, "omitted enabled defaults to true")
	assert.Empty(t, link.ID)
	assert.Zero(t, link.Order)

	link, err = NormalizeLink(LinkInput{Title: "Hidden", URL: "example.com", Enabled: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, link.Enabled)
}

func TestNormalizeLinkIdempotent(t *testing.T) {
	inputs := []LinkInput{
		{Title: "Blog", URL: "medium.com"},
		{Title: "Site", URL: "http://example.com/path?q=1"},
		{Title: "Mail", URL: "me@x.com", Type: LinkTypeEmail},
		{Title: "Vid", URL: "youtube.com/watch?v=dQw4w9WgXcQ", Type: LinkTypeYouTube},
		{Title: "Code", URL: "github.com/someone", Type: LinkTypeGitHub},
	}

	for _, in := range inputs {
		first, err := NormalizeLink(in)
		require.NoError(t, err)

		again := in
		again.URL = first.URL
		second, err := NormalizeLink(again)
		require.NoError(t, err)

		assert.Equal(t, first.URL, second.URL, "normalizing %q twice", in.URL)
	}
}

func TestYouTubeVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=short", "", false},
		{"https://www.youtube.com/@channel", "", false},
	}

	for _, tt := range tests {
		got, ok := YouTubeVideoID(tt.url)
		if ok != tt.ok || got != tt.want {
			t.Errorf("YouTubeVideoID(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLinkTypeLabel(t *testing.T) {
	assert.Equal(t, "YouTube", LinkTypeYouTube.Label())
	assert.Equal(t, "Default Link", LinkTypeDefault.Label())
	assert.True(t, LinkTypeCustom.Valid())
	assert.False(t, LinkType("myspace").Valid())
}
