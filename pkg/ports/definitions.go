package ports

import (
	"context"

	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
)

// ProfileRepository is the long-lived store. Profiles are written as a
// whole; Save overwrites everything stored for the profile id.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	Save(ctx context.Context, profile *domain.UserProfile) error
	Delete(ctx context.Context, id string) error
	Dump(ctx context.Context) ([]domain.UserProfile, error) // For migration
}

// RenderCache keeps rendered public profiles.
type RenderCache interface {
	Get(username string) (*domain.PublicProfile, bool)
	Set(username string, view *domain.PublicProfile)
	Invalidate(username string)
}

// AccountService handles sign-up and sign-in.
type AccountService interface {
	Register(ctx context.Context, email, username, password string) (*domain.UserProfile, error)
	Login(ctx context.Context, email, password string) (*domain.UserProfile, error)
	LoginExternal(ctx context.Context, email, suggestedUsername string) (*domain.UserProfile, error)
}

// ProfileService defines the owner and visitor operations on profiles.
type ProfileService interface {
	OpenSession(ctx context.Context, userID string) (*domain.Session, error)
	CloseSession(sess *domain.Session)

	UpdateDetails(ctx context.Context, sess *domain.Session, updates ...domain.ProfileUpdate) (*domain.UserProfile, error)
	ChangeTheme(ctx context.Context, sess *domain.Session, theme domain.Theme) (*domain.UserProfile, error)
	UpdateSettings(ctx context.Context, sess *domain.Session, settings domain.UserSettings) (*domain.UserProfile, error)
	RefreshCache(ctx context.Context, sess *domain.Session) (*domain.UserProfile, error)

	AddLink(ctx context.Context, sess *domain.Session, input domain.LinkInput) (*domain.Link, error)
	EditLink(ctx context.Context, sess *domain.Session, id string, input domain.LinkInput) (*domain.Link, error)
	DeleteLink(ctx context.Context, sess *domain.Session, id string) error
	ToggleLink(ctx context.Context, sess *domain.Session, id string, enabled bool) (*domain.Link, error)
	PinLink(ctx context.Context, sess *domain.Session, id string, pinned bool) (*domain.Link, error)
	ReorderLinks(ctx context.Context, sess *domain.Session, from, to int) ([]domain.Link, error)
	ReorderLinksByID(ctx context.Context, sess *domain.Session, ids []string) ([]domain.Link, error)
	OwnerView(sess *domain.Session) (domain.PublicProfile, error)

	GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error)
	Themes() []domain.ThemeOption
}
