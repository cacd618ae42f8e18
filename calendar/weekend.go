package calendar

import "time"

// =============================================================================
// WEEKENDS - Locale weekend ranges around an instant
// =============================================================================
// "No weekend" is a valid answer (ok=false), never an error: the locale may
// define none, or t may be mid-week for ThisWeekend.

// weekCadence is the spacing between consecutive weekends.
const weekCadence = 7

// IsInWeekend reports whether t falls in the region's weekend.
func IsInWeekend(sys System, t time.Time, r Region) (bool, error) {
	return sys.IsWeekend(t, r)
}

// ThisWeekend returns the weekend containing t. ok is false when t is not
// in a weekend.
func ThisWeekend(sys System, t time.Time, r Region) (Range, bool, error) {
	in, err := sys.IsWeekend(t, r)
	if err != nil || !in {
		return Range{}, false, err
	}
	back, err := sys.AddComponents(Days(-2), t, r)
	if err != nil {
		return Range{}, false, err
	}
	return NextWeekend(sys, back, r)
}

// NextWeekend returns the first weekend starting strictly after t. When t
// is inside a weekend that weekend is skipped.
func NextWeekend(sys System, t time.Time, r Region) (Range, bool, error) {
	start, seconds, ok, err := sys.NextWeekendStart(t, r)
	if err != nil || !ok {
		return Range{}, false, err
	}
	end := start.Add(time.Duration(seconds)*time.Second - EndEpsilon)
	return Range{Start: start, End: end}, true, nil
}

// PreviousWeekend returns the most recent weekend that started before the
// one containing or following t.
//
// The lookback is one week cadence plus the weekend's own length in days,
// taken from the System's next weekend span. With a two-day weekend this is
// a nine-day step.
func PreviousWeekend(sys System, t time.Time, r Region) (Range, bool, error) {
	upcoming, ok, err := NextWeekend(sys, t, r)
	if err != nil || !ok {
		return Range{}, false, err
	}
	back, err := sys.AddComponents(Days(-(weekCadence + weekendDays(upcoming))), t, r)
	if err != nil {
		return Range{}, false, err
	}
	return NextWeekend(sys, back, r)
}

// weekendDays rounds a weekend span to whole days; DST days are 23 or 25
// hours long.
func weekendDays(w Range) int {
	span := w.Duration() + EndEpsilon
	return int((span + 12*time.Hour) / (24 * time.Hour))
}
