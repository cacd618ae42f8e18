package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/calendars"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var (
	amsterdam = calendar.NewRegion(calendar.Gregorian, "Europe/Amsterdam", "nl_NL")
	newYork   = calendar.NewRegion(calendar.Gregorian, "America/New_York", "en_US")
	jerusalem = calendar.NewRegion(calendar.Hebrew, "Asia/Jerusalem", "he_IL")
	utc       = calendar.NewRegion(calendar.Gregorian, "UTC", "en_US")
	saoPaulo  = calendar.NewRegion(calendar.Gregorian, "America/Sao_Paulo", "pt_BR")
	bangkok   = calendar.NewRegion(calendar.Buddhist, "Asia/Bangkok", "th_TH")
)

func newEngine() *calendar.Engine {
	return calendar.NewEngine(calendars.NewRegistry())
}

func loc(t *testing.T, name string) *time.Location {
	t.Helper()
	l, err := time.LoadLocation(name)
	require.NoError(t, err)
	return l
}

// millennium is 1999-12-31 14:15:16 wall time in r.
func millennium(t *testing.T, e *calendar.Engine, r calendar.Region) calendar.RegionalDate {
	t.Helper()
	return e.In(time.Date(1999, 12, 31, 14, 15, 16, 0, loc(t, r.TimeZone)), r)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenario_StartOfWeek_Amsterdam(t *testing.T) {
	// GIVEN: Friday 1999-12-31 in the Netherlands (weeks start Monday)
	e := newEngine()
	d := millennium(t, e, amsterdam)

	// WHEN: Asking for the start of its week
	start, err := d.StartOf(calendar.WeekOfYear)
	require.NoError(t, err)

	// THEN: Monday 1999-12-27 at midnight
	want := time.Date(1999, 12, 27, 0, 0, 0, 0, loc(t, "Europe/Amsterdam"))
	assert.True(t, start.Instant().Equal(want), "got %s", start)
	assert.Equal(t, amsterdam, start.Region())
}

func TestScenario_StartOfWeek_NewYork(t *testing.T) {
	// GIVEN: The same wall time in the US (weeks start Sunday)
	e := newEngine()
	d := millennium(t, e, newYork)

	start, err := d.StartOf(calendar.WeekOfYear)
	require.NoError(t, err)

	// THEN: Sunday 1999-12-26 at midnight
	want := time.Date(1999, 12, 26, 0, 0, 0, 0, loc(t, "America/New_York"))
	assert.True(t, start.Instant().Equal(want), "got %s", start)
}

func TestScenario_EndOfDay(t *testing.T) {
	e := newEngine()
	d := millennium(t, e, amsterdam)

	end, err := d.EndOf(calendar.Day)
	require.NoError(t, err)

	c, err := end.Components()
	require.NoError(t, err)
	assert.Equal(t, 1999, c.Get(calendar.Year))
	assert.Equal(t, 12, c.Get(calendar.Month))
	assert.Equal(t, 31, c.Get(calendar.Day))
	assert.Equal(t, 23, c.Get(calendar.Hour))
	assert.Equal(t, 59, c.Get(calendar.Minute))
	assert.Equal(t, 59, c.Get(calendar.Second))
	assert.Equal(t, int(time.Second-calendar.EndEpsilon), c.Get(calendar.Nanosecond))
}

func TestScenario_AddOneDay(t *testing.T) {
	e := newEngine()
	d := millennium(t, e, utc)

	next, err := d.Add(calendar.Days(1))
	require.NoError(t, err)

	c, err := next.Components()
	require.NoError(t, err)
	assert.Equal(t, 2000, c.Get(calendar.Year))
	assert.Equal(t, 1, c.Get(calendar.Month))
	assert.Equal(t, 1, c.Get(calendar.Day))
	assert.Equal(t, 14, c.Get(calendar.Hour))
}

func TestScenario_GregorianToHebrew(t *testing.T) {
	e := newEngine()
	d := millennium(t, e, amsterdam)

	hebrew := d.InRegion(jerusalem)
	c, err := hebrew.Components()
	require.NoError(t, err)

	assert.Equal(t, 5760, c.Get(calendar.Year))
	assert.Equal(t, 4, c.Get(calendar.Month))
	assert.Equal(t, 22, c.Get(calendar.Day))
	assert.True(t, hebrew.Instant().Equal(d.Instant()))
}

// =============================================================================
// COMPOSE
// =============================================================================

func TestCompose_TieGoesToYMD(t *testing.T) {
	// GIVEN: One YMD field and one YWD field
	e := newEngine()
	partial := calendar.Union(calendar.Years(2020), calendar.Weeks(3))

	// WHEN: Composing without a base
	d, err := e.Compose(partial, utc)
	require.NoError(t, err)

	// THEN: The week is ignored and the defaults fill in January 1st
	assert.True(t, d.Instant().Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), "got %s", d)
}

func TestCompose_YWDWinsWithMoreFields(t *testing.T) {
	e := newEngine()
	partial := calendar.Of(calendar.YearForWeekOfYear, 2020).
		Set(calendar.WeekOfYear, 3).
		Set(calendar.Weekday, 4)

	d, err := e.Compose(partial, amsterdam)
	require.NoError(t, err)

	// Week 1 of 2020 in the Netherlands starts Monday 2019-12-30
	want := time.Date(2020, 1, 15, 0, 0, 0, 0, loc(t, "Europe/Amsterdam"))
	assert.True(t, d.Instant().Equal(want), "got %s", d)
}

func TestCompose_FactorsCountedOnPartial(t *testing.T) {
	// GIVEN: A base date, whose extracted set has every field
	e := newEngine()
	base := millennium(t, e, utc)

	// WHEN: Only the day is given
	d, err := base.Compose(calendar.Days(1))
	require.NoError(t, err)

	// THEN: YMD addressing keeps year and month of the base
	assert.True(t, d.Instant().Equal(time.Date(1999, 12, 1, 14, 15, 16, 0, time.UTC)), "got %s", d)
}

func TestCompose_WeekOnBase(t *testing.T) {
	e := newEngine()
	base := millennium(t, e, amsterdam)

	// weekOfYear + weekday outnumber the absent YMD fields
	d, err := base.Compose(calendar.Weeks(1).Set(calendar.Weekday, 2))
	require.NoError(t, err)

	want := time.Date(1999, 1, 4, 14, 15, 16, 0, loc(t, "Europe/Amsterdam"))
	assert.True(t, d.Instant().Equal(want), "got %s", d)
}

func TestCompose_InvalidCombination(t *testing.T) {
	e := newEngine()

	_, err := e.Compose(calendar.Years(2021).Set(calendar.Month, 2).Set(calendar.Day, 30), utc)

	require.Error(t, err)
	assert.True(t, errors.Is(err, calendar.ErrInvalidComponents))
	assert.True(t, calendar.IsClientError(err))
}

func TestCompose_UnknownRegion(t *testing.T) {
	e := newEngine()

	_, err := e.Compose(calendar.Years(2021), utc.WithTimeZone("Nowhere/Special"))

	assert.True(t, errors.Is(err, calendar.ErrUnknownTimeZone))
}

// =============================================================================
// PROPERTIES
// =============================================================================

func sampleDates(t *testing.T, e *calendar.Engine) []calendar.RegionalDate {
	t.Helper()
	return []calendar.RegionalDate{
		millennium(t, e, amsterdam),
		millennium(t, e, newYork),
		millennium(t, e, jerusalem),
		e.In(time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, time.UTC), utc),
		e.In(time.Date(2024, 3, 10, 3, 30, 0, 0, loc(t, "America/New_York")), newYork),
		e.In(time.Date(2020, 6, 15, 8, 0, 0, 0, time.UTC), utc.WithCalendar(calendar.Buddhist)),
		e.In(time.Date(2021, 1, 3, 12, 0, 0, 0, time.UTC), utc.WithCalendar(calendar.ISO8601)),
		// 01:30:20 on 2023-11-05 in New York, once in EDT and once in EST
		e.In(time.Date(2023, 11, 5, 5, 30, 20, 0, time.UTC), newYork),
		e.In(time.Date(2023, 11, 5, 6, 30, 20, 0, time.UTC), newYork),
		// Sao Paulo skipped midnight on 2018-11-04
		e.In(time.Date(2018, 11, 4, 15, 0, 0, 0, time.UTC), saoPaulo),
	}
}

func TestProperty_RoundTrip(t *testing.T) {
	e := newEngine()

	for _, d := range sampleDates(t, e) {
		t.Run(d.String(), func(t *testing.T) {
			c, err := d.Components()
			require.NoError(t, err)

			got, err := e.Compose(c, d.Region())

			require.NoError(t, err)
			assert.True(t, got.Instant().Equal(d.Instant()), "got %s", got)
		})
	}
}

func TestProperty_AdditiveInverse(t *testing.T) {
	e := newEngine()
	d := e.In(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), amsterdam)

	fields := []calendar.Components{
		calendar.Years(3), calendar.Quarters(2), calendar.Months(-5), calendar.Weeks(4),
		calendar.Days(40), calendar.Hours(-30), calendar.Minutes(90), calendar.Seconds(61),
		calendar.Nanoseconds(5), calendar.Of(calendar.YearForWeekOfYear, 1),
		calendar.Of(calendar.Weekday, 3), calendar.Of(calendar.WeekOfMonth, 1),
		calendar.Of(calendar.WeekdayOrdinal, -2),
	}
	for _, c := range fields {
		t.Run(c.String(), func(t *testing.T) {
			moved, err := d.Add(c)
			require.NoError(t, err)
			back, err := moved.Subtract(c)
			require.NoError(t, err)

			assert.True(t, back.Equal(d), "got %s", back)
		})
	}
}

var rangeUnits = []calendar.Unit{
	calendar.Year, calendar.Month, calendar.Day, calendar.Weekday, calendar.Hour,
	calendar.Minute, calendar.Second, calendar.YearForWeekOfYear, calendar.WeekOfYear,
}

func TestProperty_StartOfIsIdempotent(t *testing.T) {
	e := newEngine()

	for _, d := range sampleDates(t, e) {
		for _, u := range rangeUnits {
			t.Run(d.String()+"/"+u.String(), func(t *testing.T) {
				once, err := d.StartOf(u)
				require.NoError(t, err)
				twice, err := once.StartOf(u)
				require.NoError(t, err)

				assert.True(t, twice.Equal(once))
				assert.False(t, once.After(d))
			})
		}
	}
}

func TestProperty_BoundaryAdjacency(t *testing.T) {
	e := newEngine()

	for _, d := range sampleDates(t, e) {
		for _, u := range rangeUnits {
			t.Run(d.String()+"/"+u.String(), func(t *testing.T) {
				end, err := d.EndOf(u)
				require.NoError(t, err)
				next, err := d.NextUnit(u)
				require.NoError(t, err)

				assert.True(t, end.Instant().Add(calendar.EndEpsilon).Equal(next.Instant()))

				r, err := d.UnitRange(u)
				require.NoError(t, err)
				assert.True(t, r.Contains(d.Instant()))
			})
		}
	}
}

// =============================================================================
// REPEATED AND SKIPPED WALL CLOCKS
// =============================================================================

func TestBoundaries_RepeatedHour(t *testing.T) {
	e := newEngine()

	tests := []struct {
		name        string
		at          time.Time
		startMinute time.Time
		endHour     time.Time
	}{
		{
			"first 01:30 (EDT)",
			time.Date(2023, 11, 5, 5, 30, 20, 0, time.UTC),
			time.Date(2023, 11, 5, 5, 30, 0, 0, time.UTC),
			time.Date(2023, 11, 5, 5, 59, 59, 999_999_000, time.UTC),
		},
		{
			"second 01:30 (EST)",
			time.Date(2023, 11, 5, 6, 30, 20, 0, time.UTC),
			time.Date(2023, 11, 5, 6, 30, 0, 0, time.UTC),
			time.Date(2023, 11, 5, 6, 59, 59, 999_999_000, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := e.In(tt.at, newYork)

			start, err := d.StartOf(calendar.Minute)
			require.NoError(t, err)
			end, err := d.EndOf(calendar.Hour)
			require.NoError(t, err)
			hour, err := d.UnitRange(calendar.Hour)
			require.NoError(t, err)

			assert.True(t, start.Instant().Equal(tt.startMinute), "start %s", start.Instant().UTC())
			assert.True(t, end.Instant().Equal(tt.endHour), "end %s", end.Instant().UTC())
			assert.True(t, hour.Contains(tt.at))
		})
	}
}

func TestBoundaries_SkippedMidnight(t *testing.T) {
	// GIVEN: Sao Paulo moved clocks from 00:00 to 01:00 on 2018-11-04
	e := newEngine()
	d := e.In(time.Date(2018, 11, 4, 15, 0, 0, 0, time.UTC), saoPaulo)

	// WHEN: Asking for the start of that day
	start, err := d.StartOf(calendar.Day)
	require.NoError(t, err)

	// THEN: The day starts at 01:00 -02:00, its first existing instant
	assert.True(t, start.Instant().Equal(time.Date(2018, 11, 4, 3, 0, 0, 0, time.UTC)), "got %s", start.Instant().UTC())
	c, err := start.Components()
	require.NoError(t, err)
	assert.Equal(t, 4, c.Get(calendar.Day))
	assert.Equal(t, 1, c.Get(calendar.Hour))
}

// =============================================================================
// DEFAULT ERA
// =============================================================================

func TestCompose_NoBaseUsesCalendarEra(t *testing.T) {
	e := newEngine()
	bkk := loc(t, "Asia/Bangkok")

	// GIVEN: A Buddhist year with no era and no base instant
	got, err := e.Compose(calendar.Years(2543).Set(calendar.Month, 1).Set(calendar.Day, 1), bangkok)

	// THEN: The calendar's only era is used
	require.NoError(t, err)
	assert.True(t, got.Instant().Equal(time.Date(2000, 1, 1, 0, 0, 0, 0, bkk)), "got %s", got)
}

func TestAtValues_NoBaseUsesCalendarEra(t *testing.T) {
	e := newEngine()
	bkk := loc(t, "Asia/Bangkok")
	d := e.In(time.Date(2024, 6, 12, 9, 0, 0, 0, bkk), bangkok)

	got, err := d.AtValues(calendar.Days(3), calendar.Year, calendar.Month)

	require.NoError(t, err)
	assert.True(t, got.Instant().Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, bkk)), "got %s", got)
}

// =============================================================================
// BOUNDARIES
// =============================================================================

func TestStartOf_Units(t *testing.T) {
	e := newEngine()
	d := millennium(t, e, amsterdam)
	ams := loc(t, "Europe/Amsterdam")

	tests := []struct {
		unit calendar.Unit
		want time.Time
	}{
		{calendar.Year, time.Date(1999, 1, 1, 0, 0, 0, 0, ams)},
		{calendar.Month, time.Date(1999, 12, 1, 0, 0, 0, 0, ams)},
		{calendar.Day, time.Date(1999, 12, 31, 0, 0, 0, 0, ams)},
		{calendar.Hour, time.Date(1999, 12, 31, 14, 0, 0, 0, ams)},
		{calendar.Minute, time.Date(1999, 12, 31, 14, 15, 0, 0, ams)},
		{calendar.YearForWeekOfYear, time.Date(1999, 1, 4, 0, 0, 0, 0, ams)},
		{calendar.Era, time.Date(1, 1, 1, 0, 0, 0, 0, ams)},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			got, err := d.StartOf(tt.unit)
			require.NoError(t, err)
			assert.True(t, got.Instant().Equal(tt.want), "got %s", got)
		})
	}
}

func TestStartOf_UnsupportedUnit(t *testing.T) {
	e := newEngine()
	d := millennium(t, e, utc)

	for _, u := range []calendar.Unit{calendar.Quarter, calendar.WeekOfMonth, calendar.WeekdayOrdinal, calendar.Nanosecond} {
		_, err := d.StartOf(u)
		assert.True(t, errors.Is(err, calendar.ErrUnsupportedUnit), u.String())

		_, err = d.EndOf(u)
		assert.True(t, errors.Is(err, calendar.ErrUnsupportedUnit), u.String())
	}
	assert.False(t, calendar.SupportsRange(calendar.Quarter))
}

func TestEndOf_EraWithoutSuccessor(t *testing.T) {
	e := newEngine()

	_, err := millennium(t, e, utc).EndOf(calendar.Era)

	assert.True(t, errors.Is(err, calendar.ErrInvalidComponents))
}

func TestEndOf_MonthAcrossLeapDay(t *testing.T) {
	e := newEngine()
	d := e.In(time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC), utc)

	end, err := d.EndOf(calendar.Month)

	require.NoError(t, err)
	want := time.Date(2024, 2, 29, 23, 59, 59, int(time.Second-calendar.EndEpsilon), time.UTC)
	assert.True(t, end.Instant().Equal(want), "got %s", end)
}

// =============================================================================
// WEEKENDS
// =============================================================================

func TestWeekends_US(t *testing.T) {
	e := newEngine()
	wednesday := e.In(time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC), utc)
	sunday := e.In(time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC), utc)
	weekendOf15th := calendar.Range{
		Start: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC).Add(-calendar.EndEpsilon),
	}

	t.Run("mid-week has no surrounding weekend", func(t *testing.T) {
		in, err := wednesday.IsInWeekend()
		require.NoError(t, err)
		assert.False(t, in)

		_, ok, err := wednesday.ThisWeekend()
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("next weekend", func(t *testing.T) {
		w, ok, err := wednesday.NextWeekend()
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, w.Start.Equal(weekendOf15th.Start))
		assert.True(t, w.End.Equal(weekendOf15th.End))
	})

	t.Run("this weekend", func(t *testing.T) {
		w, ok, err := sunday.ThisWeekend()
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, w.Start.Equal(weekendOf15th.Start))
	})

	t.Run("previous weekend", func(t *testing.T) {
		w, ok, err := wednesday.PreviousWeekend()
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, w.Start.Equal(time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)), "got %s", w)
	})
}

func TestWeekends_OneDayWeekend(t *testing.T) {
	// GIVEN: India, where the weekend is Sunday only
	e := newEngine()
	india := calendar.NewRegion(calendar.Gregorian, "Asia/Kolkata", "hi_IN")
	kolkata := loc(t, "Asia/Kolkata")
	d := e.In(time.Date(2024, 6, 12, 10, 0, 0, 0, kolkata), india)

	prev, ok, err := d.PreviousWeekend()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, prev.Start.Equal(time.Date(2024, 6, 9, 0, 0, 0, 0, kolkata)), "got %s", prev)

	next, ok, err := d.NextWeekend()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 24*time.Hour-calendar.EndEpsilon, next.Duration())
}

// =============================================================================
// EQUALITY AND COMPARISON
// =============================================================================

func TestEqual_ComparesOffsetsNotZoneIDs(t *testing.T) {
	e := newEngine()
	at := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	a := e.In(at, utc)
	b := e.In(at, utc.WithTimeZone("Etc/UTC"))
	c := e.In(at, utc.WithTimeZone("Europe/London"))
	d := e.In(at, utc.WithTimeZone("Europe/Paris"))

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(c), "London is on UTC in January")
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(e.In(at, utc.WithLocale("nl_NL"))))
	assert.False(t, a.Equal(e.In(at, utc.WithCalendar(calendar.ISO8601))))
}

func TestComparisons(t *testing.T) {
	e := newEngine()
	now := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	today := e.In(now.Add(-2*time.Hour), utc)
	yesterday := e.In(now.AddDate(0, 0, -1), utc)
	tomorrow := e.In(now.AddDate(0, 0, 1), utc)

	ok, err := today.IsToday(now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = yesterday.IsYesterday(now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tomorrow.IsTomorrow(now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = today.IsInSameDay(tomorrow)
	require.NoError(t, err)
	assert.False(t, ok)

	morning, err := today.IsMorning()
	require.NoError(t, err)
	assert.True(t, morning)

	oldest, ok := calendar.Oldest(today, yesterday, tomorrow)
	require.True(t, ok)
	assert.True(t, oldest.Equal(yesterday))

	latest, ok := calendar.Latest(today, yesterday, tomorrow)
	require.True(t, ok)
	assert.True(t, latest.Equal(tomorrow))

	_, ok = calendar.Latest()
	assert.False(t, ok)
	assert.Equal(t, -1, yesterday.Compare(today))
}

// =============================================================================
// SETTERS AND INFO
// =============================================================================

func TestSetters(t *testing.T) {
	e := newEngine()
	d := millennium(t, e, utc)

	noon, err := d.AtTime(12, 0, 0)
	require.NoError(t, err)
	assert.True(t, noon.Instant().Equal(time.Date(1999, 12, 31, 12, 0, 0, 0, time.UTC)))

	fifth, err := d.At(calendar.Day, 5)
	require.NoError(t, err)
	assert.True(t, fifth.Instant().Equal(time.Date(1999, 12, 5, 14, 15, 16, 0, time.UTC)))

	// June 31st does not exist and is never clamped
	_, err = d.At(calendar.Month, 6)
	assert.True(t, errors.Is(err, calendar.ErrInvalidComponents))

	kept, err := d.AtValues(calendar.Days(5), calendar.Year, calendar.Month)
	require.NoError(t, err)
	assert.True(t, kept.Instant().Equal(time.Date(1999, 12, 5, 0, 0, 0, 0, time.UTC)))

	monday, err := d.Next(2)
	require.NoError(t, err)
	assert.True(t, monday.Instant().Equal(time.Date(2000, 1, 3, 14, 15, 16, 0, time.UTC)))

	_, err = d.Next(9)
	assert.True(t, errors.Is(err, calendar.ErrInvalidComponents))

	hour, err := d.NearestHour()
	require.NoError(t, err)
	assert.Equal(t, 14, hour)
}

func TestInfo(t *testing.T) {
	e := newEngine()
	d := e.In(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), utc)

	assert.Equal(t, "2451545", d.JulianDay().String())
	assert.Equal(t, "51544.5", d.ModifiedJulianDay().String())

	days, err := d.MonthDays()
	require.NoError(t, err)
	assert.Equal(t, 31, days)

	leap, err := d.IsLeapYear()
	require.NoError(t, err)
	assert.True(t, leap)

	summer := e.In(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), newYork)
	dst, err := summer.IsDST()
	require.NoError(t, err)
	assert.True(t, dst)

	next, ok, err := summer.NextDSTTransition()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, next.Instant().Equal(time.Date(2024, 11, 3, 6, 0, 0, 0, time.UTC)))
}
