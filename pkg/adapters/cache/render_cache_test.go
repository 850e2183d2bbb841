package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) *RenderCache {
	t.Helper()
	c, err := NewRenderCache(Options{MaxSizeMB: 1, TTL: ttl, CounterSize: 1000})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestRenderCacheSetGetInvalidate(t *testing.T) {
	c := newTestCache(t, time.Minute)

	_, ok := c.Get("demo")
	assert.False(t, ok)

	view := &domain.PublicProfile{Username: "demo", Links: []domain.PublicLink{}}
	c.Set("demo", view)
	c.Wait()

	got, ok := c.Get("demo")
	require.True(t, ok)
	assert.Same(t, view, got)

	c.Invalidate("demo")
	c.Wait()
	_, ok = c.Get("demo")
	assert.False(t, ok)

	assert.Greater(t, c.HitRatio(), 0.0)
}

func TestRenderCacheExpires(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond)

	c.Set("demo", &domain.PublicProfile{Username: "demo"})
	c.Wait()

	assert.Eventually(t, func() bool {
		_, ok := c.Get("demo")
		return !ok
	}, 2*time.Second, 20*time.Millisecond)
}

func TestCostGrowsWithLinks(t *testing.T) {
	small := &domain.PublicProfile{Username: "demo"}
	large := &domain.PublicProfile{Username: "demo", Links: []domain.PublicLink{
		{Link: domain.Link{ID: "a", Title: "A title", URL: "https://a.example"}},
		{Link: domain.Link{ID: "b", Title: "B title", URL: "https://b.example"}},
	}}
	assert.Greater(t, cost(large), cost(small))
}
