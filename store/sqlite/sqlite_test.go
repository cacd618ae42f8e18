package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/profile"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustProfile(t *testing.T, name string, r calendar.Region) profile.Profile {
	t.Helper()
	p, err := profile.New(name, r)
	require.NoError(t, err)
	return p
}

func TestStore_SaveAndGet(t *testing.T) {
	// GIVEN: A stored profile
	store := newTestStore(t)
	ctx := context.Background()
	ams := calendar.NewRegion(calendar.Gregorian, "Europe/Amsterdam", "nl_NL")
	p := mustProfile(t, "amsterdam", ams)
	require.NoError(t, store.Save(ctx, p))

	// WHEN: Reading it back
	got, err := store.Get(ctx, "amsterdam")

	// THEN: Every field survives
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, ams, got.Region)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
}

func TestStore_DuplicateName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, mustProfile(t, "utc", calendar.UTC())))

	err := store.Save(ctx, mustProfile(t, "utc", calendar.UTC().WithLocale("en_US")))

	assert.True(t, errors.Is(err, profile.ErrDuplicateProfile), "got %v", err)
}

func TestStore_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, profile.ErrProfileNotFound))

	err = store.Delete(ctx, "missing")
	assert.True(t, errors.Is(err, profile.ErrProfileNotFound))
}

func TestStore_ListAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, name := range []string{"tokyo", "amsterdam", "new-york"} {
		require.NoError(t, store.Save(ctx, mustProfile(t, name, calendar.UTC())))
	}

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "amsterdam", list[0].Name)
	assert.Equal(t, "new-york", list[1].Name)
	assert.Equal(t, "tokyo", list[2].Name)

	require.NoError(t, store.Delete(ctx, "new-york"))
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
