package calendars

import (
	"math"
	"time"

	"github.com/warp/region-engine/calendar"
)

// =============================================================================
// EXTRACT
// =============================================================================

// components extracts every field of t. yearForWeekOfYear is a continuous
// year count, so in the Gregorian calendar 1 BCE is week-year 0.
func (s *session) components(t time.Time) calendar.Components {
	local := t.In(s.loc)
	_, offset := local.Zone()
	day := localDay(t, s.loc)
	c := s.kernel.fromDay(day)
	ext := s.kernel.extYear(c.era, c.year)
	yearForWeek, week := s.weekOfYear(day, ext)
	monthStart, _ := s.kernel.toDay(civil{era: c.era, year: c.year, month: c.month, day: 1})

	out := calendar.Components{}.
		Set(calendar.Era, c.era).
		Set(calendar.Year, c.year).
		Set(calendar.Month, c.month).
		Set(calendar.Day, c.day).
		Set(calendar.Hour, local.Hour()).
		Set(calendar.Minute, local.Minute()).
		Set(calendar.Second, local.Second()).
		Set(calendar.Nanosecond, local.Nanosecond()).
		Set(calendar.YearForWeekOfYear, yearForWeek).
		Set(calendar.WeekOfYear, week).
		Set(calendar.Weekday, weekdayOf(day)).
		Set(calendar.WeekdayOrdinal, weekdayOrdinal(c.day)).
		Set(calendar.WeekOfMonth, s.weekOfMonth(day, monthStart)).
		WithOffset(offset)
	if q, ok := s.kernel.quarter(c); ok {
		out = out.Set(calendar.Quarter, q)
	}
	return out
}

// =============================================================================
// COMPOSE
// =============================================================================

var (
	ymdUnits = []calendar.Unit{calendar.Year, calendar.Month, calendar.Day}
	ywdUnits = []calendar.Unit{calendar.YearForWeekOfYear, calendar.WeekOfYear, calendar.Weekday}
)

func hasAny(c calendar.Components, units []calendar.Unit) bool {
	for _, u := range units {
		if c.Has(u) {
			return true
		}
	}
	return false
}

func valueOr(c calendar.Components, u calendar.Unit, def int) int {
	if v, ok := c.Value(u); ok {
		return v
	}
	return def
}

// instant resolves c strictly: out-of-range values fail, they never roll
// over into the next field.
func (s *session) instant(c calendar.Components) (time.Time, error) {
	day, reason := s.resolveDay(c)
	if reason != "" {
		return time.Time{}, calendar.NewComposeError(c, s.region, reason)
	}

	hour := valueOr(c, calendar.Hour, 0)
	minute := valueOr(c, calendar.Minute, 0)
	second := valueOr(c, calendar.Second, 0)
	nsec := valueOr(c, calendar.Nanosecond, 0)
	switch {
	case hour < 0 || hour > 23:
		return time.Time{}, calendar.NewComposeError(c, s.region, "hour out of range")
	case minute < 0 || minute > 59:
		return time.Time{}, calendar.NewComposeError(c, s.region, "minute out of range")
	case second < 0 || second > 59:
		return time.Time{}, calendar.NewComposeError(c, s.region, "second out of range")
	case nsec < 0 || nsec > 999_999_999:
		return time.Time{}, calendar.NewComposeError(c, s.region, "nanosecond out of range")
	}
	offset, hasOffset := c.Offset()
	return wallTimeNear(day, hour, minute, second, nsec, s.loc, offset, hasOffset), nil
}

// resolveDay addresses the date through YMD when any of year, month or day
// is present, else through YWD. Era only qualifies a YMD year; derived
// fields never address a date.
func (s *session) resolveDay(c calendar.Components) (int64, string) {
	k := s.kernel
	switch {
	case hasAny(c, ymdUnits) || !hasAny(c, ywdUnits):
		era := valueOr(c, calendar.Era, k.defaultEra())
		if !k.validEra(era) {
			return 0, "era out of range"
		}
		year := valueOr(c, calendar.Year, 1)
		month := valueOr(c, calendar.Month, firstMonth(k, k.extYear(era, year)))
		date := civil{era: era, year: year, month: month, day: valueOr(c, calendar.Day, 1)}
		day, ok := k.toDay(date)
		if !ok {
			return 0, "date does not exist"
		}
		return day, ""

	default:
		ext := valueOr(c, calendar.YearForWeekOfYear, 1)
		week := valueOr(c, calendar.WeekOfYear, 1)
		weekday := valueOr(c, calendar.Weekday, s.rules.firstWeekday)
		if weekday < 1 || weekday > daysPerWeek {
			return 0, "weekday out of range"
		}
		if week < 1 || week > s.weeksIn(ext) {
			return 0, "week out of range"
		}
		return s.weekDay(ext, week, weekday), ""
	}
}

// =============================================================================
// ADD
// =============================================================================

// add applies calendar fields on the wall clock (era, years, months, weeks,
// days) and then time fields as elapsed time.
func (s *session) add(c calendar.Components, t time.Time) (time.Time, error) {
	k := s.kernel
	local := t.In(s.loc)
	day := localDay(t, s.loc)
	date := k.fromDay(day)
	ext := k.extYear(date.era, date.year)
	moved := false

	if n := valueOr(c, calendar.Era, 0); n != 0 {
		era := date.era + n
		if !k.validEra(era) {
			return time.Time{}, calendar.NewComposeError(c, s.region, "era out of range")
		}
		ext = k.extYear(era, date.year)
		moved = true
	}
	if n := valueOr(c, calendar.Year, 0); n != 0 {
		ext += n
		moved = true
	}

	months := valueOr(c, calendar.Quarter, 0)*3 + valueOr(c, calendar.Month, 0)
	if moved || months != 0 {
		month := fitMonth(k, ext, date.month)
		ext, month = addMonths(k, ext, month, months)
		dom := min(date.day, k.daysInMonth(ext, month))
		era, year := k.fromExtYear(ext)
		resolved, ok := k.toDay(civil{era: era, year: year, month: month, day: dom})
		if !ok {
			return time.Time{}, calendar.NewComposeError(c, s.region, "date does not exist")
		}
		day = resolved
		moved = true
	}

	if n := valueOr(c, calendar.YearForWeekOfYear, 0); n != 0 {
		current := k.fromDay(day)
		yearForWeek, week := s.weekOfYear(day, k.extYear(current.era, current.year))
		target := yearForWeek + n
		week = min(week, s.weeksIn(target))
		day = s.weekDay(target, week, weekdayOf(day))
		moved = true
	}

	weeks := valueOr(c, calendar.WeekOfYear, 0) +
		valueOr(c, calendar.WeekOfMonth, 0) +
		valueOr(c, calendar.WeekdayOrdinal, 0)
	days := weeks*daysPerWeek + valueOr(c, calendar.Day, 0) + valueOr(c, calendar.Weekday, 0)
	if days != 0 {
		day += int64(days)
		moved = true
	}

	if moved {
		_, offset := local.Zone()
		local = wallTimeNear(day, local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), s.loc, offset, true)
	}

	local = addElapsed(local, valueOr(c, calendar.Hour, 0), time.Hour)
	local = addElapsed(local, valueOr(c, calendar.Minute, 0), time.Minute)
	local = addElapsed(local, valueOr(c, calendar.Second, 0), time.Second)
	return local.Add(time.Duration(valueOr(c, calendar.Nanosecond, 0))), nil
}

// addElapsed adds n units to t in steps that fit a time.Duration, so counts
// beyond the Duration range (about 292 years of hours) do not wrap.
func addElapsed(t time.Time, n int, unit time.Duration) time.Time {
	limit := int(math.MaxInt64 / int64(unit))
	for n > limit {
		t = t.Add(time.Duration(limit) * unit)
		n -= limit
	}
	for n < -limit {
		t = t.Add(-time.Duration(limit) * unit)
		n += limit
	}
	return t.Add(time.Duration(n) * unit)
}

// =============================================================================
// WEEKENDS
// =============================================================================

// nextWeekend finds the first weekend starting strictly after t. Weekends
// run from local midnight to local midnight, so their length follows DST.
func (s *session) nextWeekend(after time.Time) (time.Time, int64, bool) {
	if s.rules.weekendDays <= 0 {
		return time.Time{}, 0, false
	}
	today := localDay(after, s.loc)
	for i := int64(0); i <= daysPerWeek; i++ {
		d := today + i
		if weekdayOf(d) != s.rules.weekendStart {
			continue
		}
		start := wallTime(d, 0, 0, 0, 0, s.loc)
		if !start.After(after) {
			continue
		}
		end := wallTime(d+int64(s.rules.weekendDays), 0, 0, 0, 0, s.loc)
		return start, int64(end.Sub(start) / time.Second), true
	}
	return time.Time{}, 0, false
}
