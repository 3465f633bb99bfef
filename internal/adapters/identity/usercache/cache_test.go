package usercache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jumpypanter/serverforms/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return NewCache(filepath.Join(t.TempDir(), "usercache.json"))
}

func TestResolveMintsStableIdentity(t *testing.T) {
	t.Parallel()

	cache := newTestCache(t)
	ctx := context.Background()

	first, err := cache.Resolve(ctx, "Bob")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first)

	again, err := cache.Resolve(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	other, err := cache.Resolve(ctx, "Eve")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	cache := newTestCache(t)
	ctx := context.Background()

	lower, err := cache.Resolve(ctx, "bob")
	require.NoError(t, err)

	mixed, err := cache.Resolve(ctx, "  BOB ")
	require.NoError(t, err)
	assert.Equal(t, lower, mixed)
}

func TestLookupDoesNotMint(t *testing.T) {
	t.Parallel()

	cache := newTestCache(t)
	ctx := context.Background()

	_, err := cache.Lookup(ctx, "Ghost")
	require.ErrorIs(t, err, domain.ErrPlayerNotFound)

	id, err := cache.Resolve(ctx, "Bob")
	require.NoError(t, err)

	found, err := cache.Lookup(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, id, found)
}

func TestIdentitySurvivesRestart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "usercache.json")
	ctx := context.Background()

	id, err := NewCache(path).Resolve(ctx, "Bob")
	require.NoError(t, err)

	reopened, err := NewCache(path).Lookup(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, id, reopened)
}

func TestNames(t *testing.T) {
	t.Parallel()

	cache := newTestCache(t)
	ctx := context.Background()

	_, err := cache.Resolve(ctx, "Eve")
	require.NoError(t, err)
	_, err = cache.Resolve(ctx, "Bob")
	require.NoError(t, err)

	names, err := cache.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "eve"}, names)
}
