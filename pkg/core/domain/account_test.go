package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Alice", "alice", false},
		{"  bob_99 ", "bob_99", false},
		{"j.doe-x", "j.doe-x", false},
		{"ab", "", true},
		{"has space", "", true},
		{"emoji😀", "", true},
		{"admin", "", true},
		{"API", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeUsername(tt.in)
		if tt.wantErr {
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != "username" {
				t.Errorf("NormalizeUsername(%q) error = %v, want username ValidationError", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeUsername(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Me@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", got)

	for _, bad := range []string{"", "me", "me@", "me@example", "Me <me@example.com>"} {
		_, err := NormalizeEmail(bad)
		assert.Error(t, err, "NormalizeEmail(%q)", bad)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret"))

	var verr *ValidationError
	require.True(t, errors.As(ValidatePassword("12345"), &verr))
	assert.Equal(t, "password", verr.Field)
}

func TestDemoProfile(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := DemoProfile("user_x", "creator", "c@example.com", now)

	assert.Equal(t, "creator", p.Username)
	assert.Equal(t, "default", p.Theme.ID)
	assert.True(t, p.Settings.IsProfilePublic)
	assert.Equal(t, now, p.CreatedAt)
	require.Len(t, p.Links, 5)

	seen := map[string]bool{}
	for i, l := range p.Links {
		assert.Equal(t, i+1, l.Order)
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
	assert.False(t, p.Links[4].Enabled)
}
