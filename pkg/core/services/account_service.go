package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
	"golang.org/x/crypto/bcrypt"
)

type AccountService struct {
	repo  ports.ProfileRepository
	delay time.Duration
	now   func() time.Time
}

// NewAccountService creates the sign-up/sign-in service. delay is an
// artificial latency applied to password flows; zero disables it.
func NewAccountService(repo ports.ProfileRepository, delay time.Duration) *AccountService {
	return &AccountService{repo: repo, delay: delay, now: time.Now}
}

func (s *AccountService) Register(ctx context.Context, email, username, password string) (*domain.UserProfile, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	username, err = domain.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile, err := s.create(ctx, email, username, string(hash))
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", profile.ID).Str("username", profile.Username).Msg("Account registered")
	return profile, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	profile, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	if profile == nil || profile.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return profile, nil
}

var usernameStrip = regexp.MustCompile(`[^a-z0-9_.-]`)

// LoginExternal returns the profile for an email verified by an identity
// provider, creating one on first sign-in.
func (s *AccountService) LoginExternal(ctx context.Context, email, suggestedUsername string) (*domain.UserProfile, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	if existing != nil {
		return existing, nil
	}

	base := suggestedUsername
	if base == "" {
		base, _, _ = strings.Cut(email, "@")
	}
	base = usernameStrip.ReplaceAllString(strings.ToLower(base), "")
	if len(base) > 24 {
		base = base[:24]
	}

	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		name, err := domain.NormalizeUsername(candidate)
		if err == nil {
			profile, err := s.create(ctx, email, name, "")
			if err == nil {
				log.Info().Str("user_id", profile.ID).Str("username", name).Msg("Account created from external login")
				return profile, nil
			}
			if !errors.Is(err, domain.ErrUsernameTaken) {
				return nil, err
			}
		}
		candidate = base + "_" + uuid.NewString()[:5]
	}
	return nil, domain.ErrUsernameTaken
}

func (s *AccountService) create(ctx context.Context, email, username, hash string) (*domain.UserProfile, error) {
	taken, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	if taken != nil {
		return nil, domain.ErrUsernameTaken
	}
	taken, err = s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	if taken != nil {
		return nil, domain.ErrEmailTaken
	}

	profile := domain.DemoProfile("user_"+uuid.NewString(), username, email, s.now().UTC())
	profile.PasswordHash = hash

	if err := s.repo.Create(ctx, &profile); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: "create", Err: err}
	}
	return &profile, nil
}

func (s *AccountService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ ports.AccountService = (*AccountService)(nil)
