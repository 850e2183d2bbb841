package domain

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

const MinPasswordLength = 6

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.-]{3,30}$`)

// Usernames that collide with top level routes.
var reservedUsernames = map[string]struct{}{
	"admin":   {},
	"login":   {},
	"logout":  {},
	"api":     {},
	"auth":    {},
	"u":       {},
	"healthz": {},
}

// NormalizeUsername lower-cases and validates a username.
func NormalizeUsername(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", newValidationError("username", "username is required")
	}
	if !usernamePattern.MatchString(name) {
		return "", newValidationError("username", "use 3-30 characters: letters, digits, '.', '_' or '-'")
	}
	if _, ok := reservedUsernames[name]; ok {
		return "", newValidationError("username", "username is reserved")
	}
	return name, nil
}

// NormalizeEmail validates and lower-cases an email address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", newValidationError("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil || !emailPattern.MatchString(email) {
		return "", newValidationError("email", "must be a valid email address")
	}
	return email, nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return newValidationError("password", "password must be at least 6 characters long")
	}
	return nil
}

// DemoProfile is the starter profile handed to every new account.
func DemoProfile(id, username, email string, now time.Time) UserProfile {
	return UserProfile{
		ID:       id,
		Username: username,
		Email:    email,
		Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=" + username,
		Bio:      "Content creator passionate about sharing knowledge and inspiration. Follow me for regular updates!",
		Links: []Link{
			{ID: id + "_link_1", Title: "My YouTube Channel", URL: "https://youtube.com", Icon: "youtube", Enabled: true, Order: 1, Type: LinkTypeYouTube},
			{ID: id + "_link_2", Title: "Instagram", URL: "https://instagram.com", Icon: "instagram", Enabled: true, Order: 2, Type: LinkTypeInstagram},
			{ID: id + "_link_3", Title: "Latest Blog Post", URL: "https://medium.com", Icon: "file-text", Enabled: true, Order: 3, Type: LinkTypeDefault},
			{ID: id + "_link_4", Title: "My Shop", URL: "https://etsy.com", Icon: "shopping-bag", Enabled: true, Order: 4, Type: LinkTypeDefault},
			{ID: id + "_link_5", Title: "Twitter/X", URL: "https://twitter.com", Icon: "twitter", Enabled: false, Order: 5, Type: LinkTypeTwitter},
		},
		Theme: Theme{
			ID:              "default",
			Name:            "Default",
			ColorScheme:     ColorSchemeLight,
			PrimaryColor:    "#3B82F6",
			BackgroundColor: "#ffffff",
			ButtonStyle:     ButtonRounded,
		},
		Settings: UserSettings{
			AllowAnalytics:  true,
			IsProfilePublic: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
