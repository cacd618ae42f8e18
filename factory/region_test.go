package factory

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/profile"
)

func TestParseRegion_AppliesDefaults(t *testing.T) {
	f := NewRegionFactory(calendar.UTC())

	r, err := f.ParseRegion([]byte(`{"time_zone": "Europe/Amsterdam", "calendar": " ISO8601 "}`))

	require.NoError(t, err)
	assert.Equal(t, calendar.NewRegion(calendar.ISO8601, "Europe/Amsterdam", "en_001"), r)
}

func TestParseRegion_Malformed(t *testing.T) {
	f := NewRegionFactory(calendar.UTC())

	_, err := f.ParseRegion([]byte(`{"time_zone": 3}`))

	assert.True(t, errors.Is(err, ErrInvalidDocument))
}

func TestParseComponents(t *testing.T) {
	f := NewRegionFactory(calendar.UTC())

	tests := []struct {
		name    string
		in      string
		want    calendar.Components
		wantErr error
	}{
		{"empty", "", calendar.Components{}, nil},
		{"plural names", `{"days": -2, "hours": 5}`, calendar.Days(-2).Set(calendar.Hour, 5), nil},
		{"explicit zero", `{"nanosecond": 0}`, calendar.Nanoseconds(0), nil},
		{"unknown unit", `{"fortnights": 1}`, calendar.Components{}, calendar.ErrUnknownUnit},
		{"not an object", `[1, 2]`, calendar.Components{}, ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ParseComponents(tt.in)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProfile(t *testing.T) {
	f := NewRegionFactory(calendar.UTC())

	p, err := f.ParseProfile([]byte(`{"name": "New-York", "region": {"time_zone": "America/New_York", "locale": "en_US"}}`))

	require.NoError(t, err)
	assert.Equal(t, "new-york", p.Name)
	assert.Equal(t, calendar.NewRegion(calendar.Gregorian, "America/New_York", "en_US"), p.Region)

	_, err = f.ParseProfile([]byte(`{"name": ""}`))
	assert.True(t, errors.Is(err, profile.ErrInvalidProfile))
}

func TestParseInstant(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	got, err := ParseInstant("", now)
	require.NoError(t, err)
	assert.Equal(t, fixed, got)

	got, err = ParseInstant("1999-12-31T14:15:16.123456789+01:00", now)
	require.NoError(t, err)
	assert.Equal(t, 123456789, got.Nanosecond())

	_, err = ParseInstant("yesterday", now)
	assert.True(t, errors.Is(err, ErrInvalidDocument))
}
