package calendars_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/calendars"
)

// =============================================================================
// REPEATED AND SKIPPED WALL CLOCKS
// =============================================================================

var (
	// 2023-11-05 01:30 happens twice in New York: 05:30Z (EDT) and 06:30Z (EST).
	firstOneThirty  = time.Date(2023, 11, 5, 5, 30, 0, 0, time.UTC)
	secondOneThirty = time.Date(2023, 11, 5, 6, 30, 0, 0, time.UTC)

	saoPaulo = calendar.NewRegion(calendar.Gregorian, "America/Sao_Paulo", "pt_BR")
)

func oneThirty() calendar.Components {
	return calendar.Components{}.
		Set(calendar.Year, 2023).Set(calendar.Month, 11).Set(calendar.Day, 5).
		Set(calendar.Hour, 1).Set(calendar.Minute, 30)
}

func TestInstant_RepeatedWallClockPrefersEarlier(t *testing.T) {
	reg := calendars.NewRegistry()

	got, err := reg.Instant(oneThirty(), newYork)

	require.NoError(t, err)
	assert.True(t, got.Equal(firstOneThirty), "got %s", got.UTC())
}

func TestInstant_RepeatedWallClockHonorsOffset(t *testing.T) {
	reg := calendars.NewRegistry()

	est, err := reg.Instant(oneThirty().WithOffset(-5*3600), newYork)
	require.NoError(t, err)
	edt, err := reg.Instant(oneThirty().WithOffset(-4*3600), newYork)
	require.NoError(t, err)

	assert.True(t, est.Equal(secondOneThirty), "got %s", est.UTC())
	assert.True(t, edt.Equal(firstOneThirty), "got %s", edt.UTC())
}

func TestInstant_ExtractedFieldsKeepTheirOccurrence(t *testing.T) {
	reg := calendars.NewRegistry()

	for _, at := range []time.Time{firstOneThirty.Add(20 * time.Second), secondOneThirty.Add(20 * time.Second)} {
		t.Run(at.String(), func(t *testing.T) {
			// GIVEN: The fields of one of the two 01:30:20 readings
			c := components(t, reg, at, newYork)
			assert.Equal(t, 1, c.Get(calendar.Hour))

			// WHEN: Composing them back
			got, err := reg.Instant(c, newYork)

			// THEN: The same occurrence comes back
			require.NoError(t, err)
			assert.True(t, got.Equal(at), "got %s, want %s", got.UTC(), at)
		})
	}
}

func TestInstant_SkippedWallClockMovesForward(t *testing.T) {
	reg := calendars.NewRegistry()
	ny := mustLoad(t, "America/New_York")

	tests := []struct {
		name   string
		fields calendar.Components
		region calendar.Region
		want   time.Time
	}{
		{
			"02:30 on spring-forward day",
			calendar.Components{}.Set(calendar.Year, 2023).Set(calendar.Month, 3).Set(calendar.Day, 12).Set(calendar.Hour, 2).Set(calendar.Minute, 30),
			newYork,
			time.Date(2023, 3, 12, 3, 30, 0, 0, ny),
		},
		{
			"midnight skipped in Sao Paulo",
			calendar.Components{}.Set(calendar.Year, 2018).Set(calendar.Month, 11).Set(calendar.Day, 4),
			saoPaulo,
			time.Date(2018, 11, 4, 3, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Instant(tt.fields, tt.region)

			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got.UTC(), tt.want.UTC())
		})
	}
}

func TestAddComponents_DaysKeepTheSourceOffset(t *testing.T) {
	reg := calendars.NewRegistry()
	ny := mustLoad(t, "America/New_York")

	// GIVEN: 01:30 EDT the day before and 01:30 EST the day after
	before := time.Date(2023, 11, 4, 1, 30, 0, 0, ny)
	after := time.Date(2023, 11, 6, 1, 30, 0, 0, ny)

	// WHEN: Moving each one day onto the repeated hour
	fromBefore, err := reg.AddComponents(calendar.Days(1), before, newYork)
	require.NoError(t, err)
	fromAfter, err := reg.AddComponents(calendar.Days(-1), after, newYork)
	require.NoError(t, err)

	// THEN: Each lands on the occurrence with its own offset
	assert.True(t, fromBefore.Equal(firstOneThirty), "got %s", fromBefore.UTC())
	assert.True(t, fromAfter.Equal(secondOneThirty), "got %s", fromAfter.UTC())
}
