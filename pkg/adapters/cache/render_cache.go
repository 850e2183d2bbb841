package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

// RenderCache keeps rendered public profiles keyed by username.
type RenderCache struct {
	client *ristretto.Cache
	ttl    time.Duration
}

type Options struct {
	MaxSizeMB   int
	TTL         time.Duration
	CounterSize int64
}

func NewRenderCache(opts Options) (*RenderCache, error) {
	if opts.CounterSize <= 0 {
		opts.CounterSize = 100_000
	}
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: opts.CounterSize,
		MaxCost:     int64(opts.MaxSizeMB) * 1024 * 1024,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("max_size_mb", opts.MaxSizeMB).
		Dur("ttl", opts.TTL).
		Msg("Render cache initialized")

	return &RenderCache{client: client, ttl: opts.TTL}, nil
}

func (c *RenderCache) Get(username string) (*domain.PublicProfile, bool) {
	v, ok := c.client.Get(username)
	if !ok {
		return nil, false
	}
	view, ok := v.(*domain.PublicProfile)
	return view, ok
}

// Set stores view. Writes are buffered by ristretto and become visible
// asynchronously; Wait flushes them.
func (c *RenderCache) Set(username string, view *domain.PublicProfile) {
	c.client.SetWithTTL(username, view, cost(view), c.ttl)
}

func (c *RenderCache) Invalidate(username string) {
	c.client.Del(username)
}

func (c *RenderCache) Wait() {
	c.client.Wait()
}

func (c *RenderCache) Close() {
	ratio := c.HitRatio()
	c.client.Close()
	log.Info().Float64("hit_ratio", ratio).Msg("Render cache closed")
}

// HitRatio reports the share of lookups served from cache.
func (c *RenderCache) HitRatio() float64 {
	if c.client.Metrics == nil {
		return 0
	}
	return c.client.Metrics.Ratio()
}

// cost approximates the memory held by a rendered view in bytes.
func cost(view *domain.PublicProfile) int64 {
	n := len(view.Username) + len(view.Avatar) + len(view.Bio) + len(view.ShareURL) + 256
	for _, l := range view.Links {
		n += len(l.ID) + len(l.Title) + len(l.URL) + len(l.Subtitle) + 128
	}
	return int64(n)
}

var _ ports.RenderCache = (*RenderCache)(nil)
