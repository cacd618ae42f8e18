package calendar

import "time"

// =============================================================================
// UNIT RANGES - Start of / end of a calendar unit
// =============================================================================

// EndEpsilon is subtracted from the start of the next unit to obtain the end
// of the current one. It must exceed the resolution of every store an
// instant may pass through; microseconds is the coarsest one we support.
const EndEpsilon = time.Microsecond

// zeroing describes how StartOf rewrites the extracted fields for a unit.
type zeroing struct {
	minimum      map[Unit]int
	firstWeekday bool   // set Weekday to the region's first weekday
	clear        []Unit // addressing group (and extras) to drop
}

var (
	clearYWD = []Unit{YearForWeekOfYear, WeekOfYear, Weekday}
	clearYMD = []Unit{Year, Month, Day}

	timeZero = map[Unit]int{Hour: 0, Minute: 0, Second: 0, Nanosecond: 0}
)

func withTime(m map[Unit]int) map[Unit]int {
	out := map[Unit]int{Hour: 0, Minute: 0, Second: 0, Nanosecond: 0}
	for u, v := range m {
		out[u] = v
	}
	return out
}

var zeroingTable = map[Unit]zeroing{
	Era:               {minimum: withTime(map[Unit]int{Year: 1, Month: 1, Day: 1}), clear: clearYWD},
	Year:              {minimum: withTime(map[Unit]int{Month: 1, Day: 1}), clear: clearYWD},
	Month:             {minimum: withTime(map[Unit]int{Day: 1}), clear: append(append([]Unit{}, clearYWD...), WeekOfMonth)},
	Day:               {minimum: timeZero, clear: clearYWD},
	Weekday:           {minimum: timeZero, clear: clearYWD},
	Hour:              {minimum: map[Unit]int{Minute: 0, Second: 0, Nanosecond: 0}, clear: clearYWD},
	Minute:            {minimum: map[Unit]int{Second: 0, Nanosecond: 0}, clear: clearYWD},
	Second:            {minimum: map[Unit]int{Nanosecond: 0}, clear: clearYWD},
	YearForWeekOfYear: {minimum: withTime(map[Unit]int{WeekOfYear: 1}), firstWeekday: true, clear: clearYMD},
	WeekOfYear:        {minimum: timeZero, firstWeekday: true, clear: clearYMD},
}

// SupportsRange reports whether StartOf/EndOf accept u.
func SupportsRange(u Unit) bool {
	_, ok := zeroingTable[u]
	return ok
}

// StartOf returns the first instant of the unit containing t.
//
//	unit               set to minimum                          clear
//	era                year=month=day=1, time=0                YWD
//	year               month=day=1, time=0                     YWD
//	month              day=1, time=0                           YWD + weekOfMonth
//	day, weekday       time=0                                  YWD
//	hour               minute=second=nanosecond=0              YWD
//	minute             second=nanosecond=0                     YWD
//	second             nanosecond=0                            YWD
//	yearForWeekOfYear  weekOfYear=1, weekday=first, time=0     YMD
//	weekOfYear         weekday=first, time=0                   YMD
//
// Any other unit fails with ErrUnsupportedUnit.
func StartOf(sys System, t time.Time, r Region, u Unit) (time.Time, error) {
	z, ok := zeroingTable[u]
	if !ok {
		return time.Time{}, &UnitError{Op: "startOf", Unit: u, err: ErrUnsupportedUnit}
	}
	working, err := Extract(sys, t, r)
	if err != nil {
		return time.Time{}, err
	}
	for unit, v := range z.minimum {
		working = working.Set(unit, v)
	}
	if z.firstWeekday {
		first, err := sys.FirstWeekday(r)
		if err != nil {
			return time.Time{}, err
		}
		working = working.Set(Weekday, first)
	}
	return sys.Instant(working.Clear(z.clear...), r)
}

// NextUnit returns the start of the unit following the one containing t.
func NextUnit(sys System, t time.Time, r Region, u Unit) (time.Time, error) {
	if !SupportsRange(u) {
		return time.Time{}, &UnitError{Op: "nextUnit", Unit: u, err: ErrUnsupportedUnit}
	}
	advanced, err := sys.AddComponents(Of(u, 1), t, r)
	if err != nil {
		return time.Time{}, err
	}
	return StartOf(sys, advanced, r, u)
}

// EndOf returns the last instant of the unit containing t: the start of the
// next unit minus EndEpsilon.
func EndOf(sys System, t time.Time, r Region, u Unit) (time.Time, error) {
	if !SupportsRange(u) {
		return time.Time{}, &UnitError{Op: "endOf", Unit: u, err: ErrUnsupportedUnit}
	}
	next, err := NextUnit(sys, t, r, u)
	if err != nil {
		return time.Time{}, err
	}
	return next.Add(-EndEpsilon), nil
}

// UnitRange returns [StartOf, EndOf] of the unit containing t.
func UnitRange(sys System, t time.Time, r Region, u Unit) (Range, error) {
	start, err := StartOf(sys, t, r, u)
	if err != nil {
		return Range{}, err
	}
	end, err := EndOf(sys, t, r, u)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}
