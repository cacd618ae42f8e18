package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/calendars"
	"github.com/warp/region-engine/profile"
	"github.com/warp/region-engine/profile/store"
)

func newService() *profile.Service {
	return profile.NewService(store.NewMemory(), calendars.NewRegistry())
}

func TestNew_NormalizesName(t *testing.T) {
	p, err := profile.New("  Amsterdam-Office ", calendar.UTC())

	require.NoError(t, err)
	assert.Equal(t, "amsterdam-office", p.Name)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		region calendar.Region
	}{
		{"", calendar.UTC()},
		{"has space", calendar.UTC()},
		{"-leading-dash", calendar.UTC()},
		{"ok", calendar.Region{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := profile.New(tt.name, tt.region)
			assert.True(t, errors.Is(err, profile.ErrInvalidProfile))
		})
	}
}

func TestService_CreateValidatesRegion(t *testing.T) {
	// GIVEN: A region with a zone no database knows
	svc := newService()
	bad := calendar.UTC().WithTimeZone("Atlantis/Capital")

	// WHEN: Creating a profile for it
	_, err := svc.Create(context.Background(), "atlantis", bad)

	// THEN: The region error surfaces and nothing is stored
	assert.True(t, errors.Is(err, calendar.ErrUnknownTimeZone))
	_, err = svc.Get(context.Background(), "atlantis")
	assert.True(t, errors.Is(err, profile.ErrProfileNotFound))
}

func TestService_Lifecycle(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	ams := calendar.NewRegion(calendar.Gregorian, "Europe/Amsterdam", "nl_NL")

	created, err := svc.Create(ctx, "Amsterdam", ams)
	require.NoError(t, err)

	r, err := svc.Region(ctx, "AMSTERDAM")
	require.NoError(t, err)
	assert.Equal(t, ams, r)

	_, err = svc.Create(ctx, "amsterdam", ams)
	assert.True(t, errors.Is(err, profile.ErrDuplicateProfile))

	again, createdNow, err := svc.Ensure(ctx, "amsterdam", ams)
	require.NoError(t, err)
	assert.False(t, createdNow)
	assert.Equal(t, created.ID, again.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "amsterdam"))
	_, err = svc.Region(ctx, "amsterdam")
	assert.True(t, errors.Is(err, profile.ErrProfileNotFound))
}

func TestService_EnsureCreatesMissing(t *testing.T) {
	svc := newService()

	p, created, err := svc.Ensure(context.Background(), "tokyo", calendar.NewRegion(calendar.Gregorian, "Asia/Tokyo", "ja_JP"))

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "tokyo", p.Name)
}
