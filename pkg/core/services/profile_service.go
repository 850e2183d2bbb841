package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

type ProfileService struct {
	repo    ports.ProfileRepository
	cache   ports.RenderCache
	catalog []domain.ThemeOption
	baseURL string
	now     func() time.Time

	// mu serializes load-mutate-save within the process. Writers in other
	// processes are last-write-wins.
	mu sync.Mutex
}

// NewProfileService wires the profile operations. cache may be nil.
func NewProfileService(repo ports.ProfileRepository, cache ports.RenderCache, catalog []domain.ThemeOption, baseURL string) *ProfileService {
	return &ProfileService{
		repo:    repo,
		cache:   cache,
		catalog: catalog,
		baseURL: baseURL,
		now:     time.Now,
	}
}

// OpenSession loads the profile of userID into a new session.
func (s *ProfileService) OpenSession(ctx context.Context, userID string) (*domain.Session, error) {
	profile, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	if profile == nil {
		return nil, &domain.NotFoundError{Resource: "profile", ID: userID}
	}
	return domain.NewSession(*profile), nil
}

func (s *ProfileService) CloseSession(sess *domain.Session) {
	sess.Close()
}

// commit derives the next snapshot from the session's profile, saves it and
// only then swaps it into the session.
func (s *ProfileService) commit(ctx context.Context, sess *domain.Session, op string, build func(domain.UserProfile) (domain.UserProfile, error)) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := sess.Profile()
	if err != nil {
		return domain.UserProfile{}, err
	}
	next, err := build(current)
	if err != nil {
		return domain.UserProfile{}, err
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, &next); err != nil {
		log.Error().Err(err).Str("user_id", next.ID).Str("op", op).Msg("Failed to save profile")
		if domain.IsNotFound(err) || errors.Is(err, domain.ErrEmailTaken) {
			return domain.UserProfile{}, err
		}
		return domain.UserProfile{}, &domain.PersistenceError{Op: "save", Err: err}
	}
	if err := sess.Commit(next); err != nil {
		return domain.UserProfile{}, err
	}
	if s.cache != nil {
		s.cache.Invalidate(next.Username)
	}

	log.Debug().Str("user_id", next.ID).Str("op", op).Msg("Profile updated")
	return next, nil
}

// UpdateDetails applies top-level field updates such as bio, avatar or email.
func (s *ProfileService) UpdateDetails(ctx context.Context, sess *domain.Session, updates ...domain.ProfileUpdate) (*domain.UserProfile, error) {
	p, err := s.commit(ctx, sess, "update_details", func(cur domain.UserProfile) (domain.UserProfile, error) {
		return domain.UpdateProfile(cur, updates...), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ChangeTheme switches to the catalog theme theme.ID, keeping any color or
// CSS overrides not given in theme.
func (s *ProfileService) ChangeTheme(ctx context.Context, sess *domain.Session, theme domain.Theme) (*domain.UserProfile, error) {
	if !domain.HasTheme(theme.ID, s.catalog) {
		return nil, &domain.ValidationError{Field: "theme", Message: "unknown theme " + theme.ID}
	}
	opt := domain.ResolveTheme(theme.ID, s.catalog)

	p, err := s.commit(ctx, sess, "change_theme", func(cur domain.UserProfile) (domain.UserProfile, error) {
		next := cur.Theme
		next.ID = opt.ID
		next.Name = opt.Name
		next.ColorScheme = opt.ColorScheme
		next.ButtonStyle = opt.ButtonStyle
		next.ButtonAnimation = opt.ButtonAnimation
		next.BackgroundEffect = opt.BackgroundEffect
		if theme.PrimaryColor != "" {
			next.PrimaryColor = theme.PrimaryColor
		}
		if theme.BackgroundColor != "" {
			next.BackgroundColor = theme.BackgroundColor
		}
		if theme.CustomCSS != "" {
			next.CustomCSS = theme.CustomCSS
		}
		return domain.UpdateProfile(cur, domain.SetTheme(next)), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateSettings replaces the user settings. The cache version is not
// client controlled and is carried over.
func (s *ProfileService) UpdateSettings(ctx context.Context, sess *domain.Session, settings domain.UserSettings) (*domain.UserProfile, error) {
	p, err := s.commit(ctx, sess, "update_settings", func(cur domain.UserProfile) (domain.UserProfile, error) {
		settings.CacheVersion = cur.Settings.CacheVersion
		settings.CustomDomain = strings.ToLower(strings.TrimSpace(settings.CustomDomain))
		return domain.UpdateProfile(cur, domain.SetSettings(settings)), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RefreshCache bumps the cache version so renderers discard cached output.
func (s *ProfileService) RefreshCache(ctx context.Context, sess *domain.Session) (*domain.UserProfile, error) {
	p, err := s.commit(ctx, sess, "refresh_cache", func(cur domain.UserProfile) (domain.UserProfile, error) {
		return domain.UpdateProfile(cur, domain.SetSettings(cur.Settings.BumpCacheVersion())), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) AddLink(ctx context.Context, sess *domain.Session, input domain.LinkInput) (*domain.Link, error) {
	link, err := domain.NormalizeLink(input)
	if err != nil {
		return nil, err
	}

	var added domain.Link
	_, err = s.commit(ctx, sess, "add_link", func(cur domain.UserProfile) (domain.UserProfile, error) {
		link.ID = newLinkID(cur.Links)
		links := domain.AddLink(cur.Links, link)
		added = links[len(links)-1]
		return domain.UpdateProfile(cur, domain.ReplaceLinks(links)), nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// EditLink revalidates input and replaces the link's editable fields. An
// omitted enabled flag keeps the current value.
func (s *ProfileService) EditLink(ctx context.Context, sess *domain.Session, id string, input domain.LinkInput) (*domain.Link, error) {
	edited, err := domain.NormalizeLink(input)
	if err != nil {
		return nil, err
	}

	var result domain.Link
	_, err = s.commit(ctx, sess, "edit_link", func(cur domain.UserProfile) (domain.UserProfile, error) {
		existing, err := domain.FindLink(cur.Links, id)
		if err != nil {
			return cur, err
		}
		if input.Enabled == nil {
			edited.Enabled = existing.Enabled
		}
		links, err := domain.EditLink(cur.Links, id, edited)
		if err != nil {
			return cur, err
		}
		result, _ = domain.FindLink(links, id)
		return domain.UpdateProfile(cur, domain.ReplaceLinks(links)), nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ProfileService) DeleteLink(ctx context.Context, sess *domain.Session, id string) error {
	_, err := s.commit(ctx, sess, "delete_link", func(cur domain.UserProfile) (domain.UserProfile, error) {
		links, err := domain.DeleteLink(cur.Links, id)
		if err != nil {
			return cur, err
		}
		return domain.UpdateProfile(cur, domain.ReplaceLinks(links)), nil
	})
	return err
}

func (s *ProfileService) ToggleLink(ctx context.Context, sess *domain.Session, id string, enabled bool) (*domain.Link, error) {
	return s.mutateLink(ctx, sess, "toggle_link", id, func(links []domain.Link) ([]domain.Link, error) {
		return domain.ToggleLink(links, id, enabled)
	})
}

func (s *ProfileService) PinLink(ctx context.Context, sess *domain.Session, id string, pinned bool) (*domain.Link, error) {
	return s.mutateLink(ctx, sess, "pin_link", id, func(links []domain.Link) ([]domain.Link, error) {
		return domain.PinLink(links, id, pinned)
	})
}

func (s *ProfileService) mutateLink(ctx context.Context, sess *domain.Session, op, id string, fn func([]domain.Link) ([]domain.Link, error)) (*domain.Link, error) {
	var result domain.Link
	_, err := s.commit(ctx, sess, op, func(cur domain.UserProfile) (domain.UserProfile, error) {
		links, err := fn(cur.Links)
		if err != nil {
			return cur, err
		}
		result, _ = domain.FindLink(links, id)
		return domain.UpdateProfile(cur, domain.ReplaceLinks(links)), nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ReorderLinks moves a link by index within the owner's display order, the
// same order List returns. The result is stored in that order.
func (s *ProfileService) ReorderLinks(ctx context.Context, sess *domain.Session, from, to int) ([]domain.Link, error) {
	p, err := s.commit(ctx, sess, "reorder_links", func(cur domain.UserProfile) (domain.UserProfile, error) {
		shown := slices.Collect(domain.VisibleLinks(cur.Links, true))
		links, err := domain.Reorder(shown, from, to)
		if err != nil {
			return cur, err
		}
		return domain.UpdateProfile(cur, domain.ReplaceLinks(links)), nil
	})
	if err != nil {
		return nil, err
	}
	return p.Links, nil
}

func (s *ProfileService) ReorderLinksByID(ctx context.Context, sess *domain.Session, ids []string) ([]domain.Link, error) {
	p, err := s.commit(ctx, sess, "reorder_links", func(cur domain.UserProfile) (domain.UserProfile, error) {
		links, err := domain.ReorderByIDs(cur.Links, ids)
		if err != nil {
			return cur, err
		}
		return domain.UpdateProfile(cur, domain.ReplaceLinks(links)), nil
	})
	if err != nil {
		return nil, err
	}
	return p.Links, nil
}

// OwnerView renders the session's profile with disabled links included.
func (s *ProfileService) OwnerView(sess *domain.Session) (domain.PublicProfile, error) {
	p, err := sess.Profile()
	if err != nil {
		return domain.PublicProfile{}, err
	}
	return domain.Render(p, s.catalog, s.baseURL, true), nil
}

// GetPublicProfile renders the visitor view of username.
func (s *ProfileService) GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if s.cache != nil {
		if view, ok := s.cache.Get(username); ok {
			return view, nil
		}
		// The load and Set below must not interleave with commit's Invalidate.
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	profile, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	if profile == nil {
		return nil, &domain.NotFoundError{Resource: "profile", ID: username}
	}
	if !profile.Settings.IsProfilePublic {
		return nil, domain.ErrProfileNotPublic
	}

	view := domain.Render(*profile, s.catalog, s.baseURL, false)
	if s.cache != nil {
		s.cache.Set(username, &view)
	}
	return &view, nil
}

// Themes lists the catalog with unset style attributes filled in.
func (s *ProfileService) Themes() []domain.ThemeOption {
	out := make([]domain.ThemeOption, 0, len(s.catalog))
	for _, opt := range s.catalog {
		out = append(out, domain.ResolveTheme(opt.ID, s.catalog))
	}
	return out
}

func newLinkID(existing []domain.Link) string {
	for {
		id := "link_" + uuid.NewString()
		if _, err := domain.FindLink(existing, id); err != nil {
			return id
		}
	}
}

var _ ports.ProfileService = (*ProfileService)(nil)
