package services

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
)

var errStoreDown = errors.New("store unavailable")

type memoryRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.UserProfile
	failSave bool
	saves    int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{profiles: map[string]domain.UserProfile{}}
}

func clone(p domain.UserProfile) *domain.UserProfile {
	p.Links = slices.Clone(p.Links)
	return &p
}

func (r *memoryRepo) Create(_ context.Context, p *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.Username == p.Username {
			return domain.ErrUsernameTaken
		}
		if existing.Email == p.Email {
			return domain.ErrEmailTaken
		}
	}
	r.profiles[p.ID] = *clone(*p)
	return nil
}

func (r *memoryRepo) find(match func(domain.UserProfile) bool) *domain.UserProfile {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if match(p) {
			return clone(p)
		}
	}
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	return r.find(func(p domain.UserProfile) bool { return p.ID == id }), nil
}

func (r *memoryRepo) GetByUsername(_ context.Context, username string) (*domain.UserProfile, error) {
	return r.find(func(p domain.UserProfile) bool { return p.Username == username }), nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.UserProfile, error) {
	return r.find(func(p domain.UserProfile) bool { return p.Email == email }), nil
}

func (r *memoryRepo) Save(_ context.Context, p *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errStoreDown
	}
	if _, ok := r.profiles[p.ID]; !ok {
		return &domain.NotFoundError{Resource: "profile", ID: p.ID}
	}
	for id, existing := range r.profiles {
		if id != p.ID && existing.Email == p.Email {
			return domain.ErrEmailTaken
		}
	}
	r.saves++
	r.profiles[p.ID] = *clone(*p)
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

func (r *memoryRepo) Dump(_ context.Context) ([]domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.UserProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *clone(p))
	}
	return out, nil
}

func (r *memoryRepo) stored(id string) domain.UserProfile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *clone(r.profiles[id])
}

type mapCache struct {
	mu          sync.Mutex
	views       map[string]*domain.PublicProfile
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{views: map[string]*domain.PublicProfile{}}
}

func (c *mapCache) Get(username string) (*domain.PublicProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.views[username]
	return v, ok
}

func (c *mapCache) Set(username string, view *domain.PublicProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[username] = view
}

func (c *mapCache) Invalidate(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, username)
	c.invalidated = append(c.invalidated, username)
}
