package sqlite

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	repo, err := NewSQLiteRepository("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	profile := domain.DemoProfile("user_1", "demo", "demo@example.com", now)
	profile.PasswordHash = "hash"
	require.NoError(t, repo.Create(ctx, &profile))

	for name, get := range map[string]func() (*domain.UserProfile, error){
		"id":       func() (*domain.UserProfile, error) { return repo.GetByID(ctx, "user_1") },
		"username": func() (*domain.UserProfile, error) { return repo.GetByUsername(ctx, "demo") },
		"email":    func() (*domain.UserProfile, error) { return repo.GetByEmail(ctx, "demo@example.com") },
	} {
		got, err := get()
		require.NoError(t, err, name)
		require.NotNil(t, got, name)
		if diff := cmp.Diff(profile, *got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("GetBy%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	got, err := repo.GetByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByUsername(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := domain.DemoProfile("user_1", "demo", "demo@example.com", time.Now())
	require.NoError(t, repo.Create(ctx, &first))

	sameName := domain.DemoProfile("user_2", "demo", "other@example.com", time.Now())
	assert.ErrorIs(t, repo.Create(ctx, &sameName), domain.ErrUsernameTaken)

	sameEmail := domain.DemoProfile("user_3", "other", "demo@example.com", time.Now())
	assert.ErrorIs(t, repo.Create(ctx, &sameEmail), domain.ErrEmailTaken)
}

func TestSaveOverwritesWholeProfile(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	profile := domain.DemoProfile("user_1", "demo", "demo@example.com", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, &profile))

	next := domain.UpdateProfile(profile,
		domain.SetBio("updated"),
		domain.ReplaceLinks([]domain.Link{{ID: "only", Title: "Only", URL: "https://only.example", Enabled: true, Order: 1, Type: domain.LinkTypeDefault, Pinned: true}}),
		domain.SetSettings(domain.UserSettings{IsProfilePublic: false, CacheVersion: 3}),
	)
	require.NoError(t, repo.Save(ctx, &next))

	got, err := repo.GetByID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Bio)
	require.Len(t, got.Links, 1)
	assert.True(t, got.Links[0].Pinned)
	assert.Equal(t, int64(3), got.Settings.CacheVersion)
	assert.False(t, got.Settings.IsProfilePublic)
}

func TestSaveUnknownProfile(t *testing.T) {
	repo := newTestRepo(t)
	ghost := domain.DemoProfile("ghost", "ghost", "ghost@example.com", time.Now())
	err := repo.Save(context.Background(), &ghost)
	assert.True(t, domain.IsNotFound(err))
}

func TestSaveEmailConflict(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a := domain.DemoProfile("user_a", "alpha", "a@example.com", time.Now())
	b := domain.DemoProfile("user_b", "beta", "b@example.com", time.Now())
	require.NoError(t, repo.Create(ctx, &a))
	require.NoError(t, repo.Create(ctx, &b))

	b.Email = "a@example.com"
	assert.ErrorIs(t, repo.Save(ctx, &b), domain.ErrEmailTaken)
}

func TestEmptyLinksRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	p := domain.DemoProfile("user_1", "demo", "demo@example.com", time.Now())
	p.Links = nil
	require.NoError(t, repo.Create(ctx, &p))

	got, err := repo.GetByID(ctx, "user_1")
	require.NoError(t, err)
	assert.NotNil(t, got.Links)
	assert.Empty(t, got.Links)
}

func TestDumpAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		p := domain.DemoProfile("user_"+name, name, name+"@example.com", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Create(ctx, &p))
	}

	all, err := repo.Dump(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Username)

	require.NoError(t, repo.Delete(ctx, "user_second"))
	all, err = repo.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
