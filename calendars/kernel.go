package calendars

import "time"

// =============================================================================
// KERNEL - Calendar-specific date <-> day number conversion
// =============================================================================
// Day numbers count civil days since 1970-01-01 (day 0, a Thursday). Kernels
// only convert dates; weeks, weekends and time of day are handled once for
// every calendar in weeks.go and system.go.

// civil is a calendar date in a kernel's own numbering.
type civil struct {
	era   int
	year  int
	month int
	day   int
}

type kernel interface {
	// fromDay converts a day number to a date.
	fromDay(day int64) civil

	// toDay resolves a date; ok is false when it does not exist.
	toDay(c civil) (int64, bool)

	// defaultEra is used when a composition gives no era.
	defaultEra() int

	// validEra reports whether era exists in the calendar.
	validEra(era int) bool

	// extYear maps (era, year) to a continuous year count; fromExtYear
	// inverts it.
	extYear(era, year int) int
	fromExtYear(ext int) (era, year int)

	// months lists the month numbers of a year in order.
	months(ext int) []int

	daysInMonth(ext, month int) int
	isLeapYear(ext int) bool
	isLeapMonth(ext, month int) bool

	// quarter returns the quarter of c; ok is false when quarters do not
	// apply to the calendar.
	quarter(c civil) (int, bool)
}

const secondsPerDay = 24 * 60 * 60

// dayOf returns the day number of a proleptic Gregorian date.
func dayOf(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// gregorianOf returns the proleptic Gregorian date of a day number.
func gregorianOf(day int64) (int, time.Month, int) {
	return time.Unix(day*secondsPerDay, 0).UTC().Date()
}

// localDay returns the day number of t's wall date in loc.
func localDay(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return dayOf(y, m, d)
}

// wallTime returns the instant at the given wall clock on a day in loc. A
// wall clock read twice (DST fall-back) resolves to the earlier instant.
func wallTime(day int64, hour, min, sec, nsec int, loc *time.Location) time.Time {
	return wallTimeNear(day, hour, min, sec, nsec, loc, 0, false)
}

// transitionWindow bounds the search for the offsets in force around a wall
// clock. Zones do not change offset twice within it.
const transitionWindow = 26 * time.Hour

// wallTimeNear is wallTime with a preferred UTC offset in seconds: a wall
// clock read twice resolves to the occurrence at that offset when there is
// one. A wall clock skipped by a transition is read with the offset in force
// before it, which lands as far past the transition as the wall clock is
// past the gap start (02:30 in a 02:00-03:00 gap is 03:30).
func wallTimeNear(day int64, hour, min, sec, nsec int, loc *time.Location, prefer int, hasPrefer bool) time.Time {
	y, m, d := gregorianOf(day)
	naive := time.Date(y, m, d, hour, min, sec, nsec, time.UTC)

	before := offsetAt(naive.Add(-transitionWindow), loc)
	after := offsetAt(naive.Add(transitionWindow), loc)

	var candidates []time.Time
	for _, off := range []int{before, after} {
		t := naive.Add(-time.Duration(off) * time.Second).In(loc)
		if offsetAt(t, loc) != off {
			continue
		}
		if len(candidates) == 1 && candidates[0].Equal(t) {
			continue
		}
		candidates = append(candidates, t)
	}

	switch len(candidates) {
	case 0:
		return naive.Add(-time.Duration(before) * time.Second).In(loc)
	case 1:
		return candidates[0]
	}
	if hasPrefer {
		for _, t := range candidates {
			if offsetAt(t, loc) == prefer {
				return t
			}
		}
	}
	if candidates[1].Before(candidates[0]) {
		return candidates[1]
	}
	return candidates[0]
}

func offsetAt(t time.Time, loc *time.Location) int {
	_, off := t.In(loc).Zone()
	return off
}

// firstMonth returns the first month of a year.
func firstMonth(k kernel, ext int) int {
	return k.months(ext)[0]
}

// yearStart returns the day number of the first day of a year.
func yearStart(k kernel, ext int) (int64, bool) {
	era, year := k.fromExtYear(ext)
	return k.toDay(civil{era: era, year: year, month: firstMonth(k, ext), day: 1})
}

// addMonths moves (ext, month) by n months across years of varying length.
// A month missing from the starting year's list is treated as the next one.
func addMonths(k kernel, ext, month, n int) (int, int) {
	list := k.months(ext)
	pos := indexOf(list, month)
	for n > 0 {
		pos++
		if pos >= len(list) {
			ext++
			list = k.months(ext)
			pos = 0
		}
		n--
	}
	for n < 0 {
		pos--
		if pos < 0 {
			ext--
			list = k.months(ext)
			pos = len(list) - 1
		}
		n++
	}
	return ext, list[pos]
}

// fitMonth returns month if the year has it, else the following month.
func fitMonth(k kernel, ext, month int) int {
	list := k.months(ext)
	for _, m := range list {
		if m >= month {
			return m
		}
	}
	return list[len(list)-1]
}

func indexOf(list []int, month int) int {
	for i, m := range list {
		if m >= month {
			return i
		}
	}
	return len(list) - 1
}
