package calendar

import "time"

// =============================================================================
// EXTRACT - Instant -> Components
// =============================================================================

// Extract returns every field of t in region r.
func Extract(sys System, t time.Time, r Region) (Components, error) {
	return sys.AllComponents(t, r)
}

// ExtractOne returns a single field of t. ok is false only when the System
// reports the unit as inapplicable to the calendar.
func ExtractOne(sys System, t time.Time, r Region, u Unit) (int, bool, error) {
	if !u.Valid() {
		return 0, false, &UnitError{Op: "extract", Unit: u, err: ErrUnknownUnit}
	}
	return sys.ComponentValue(t, u, r)
}

// =============================================================================
// COMPOSE - Partial Components -> Instant
// =============================================================================

// syntheticDefaults seed a composition that has no base instant.
func syntheticDefaults() Components {
	return Components{}.
		Set(Year, 1).
		Set(Month, 1).
		Set(Day, 1).
		Set(Hour, 0).
		Set(Minute, 0).
		Set(Second, 0).
		Set(Nanosecond, 0)
}

// Compose builds an instant from a partial field set.
//
// The working set is seeded from base (all of its fields) or, without a
// base, from the synthetic defaults (year 1, month 1, day 1, midnight; the
// era is left to the calendar's default). Every present field of partial is
// written over the seed.
//
// The addressing group is chosen by counting the fields the caller gave:
// when partial has more YWD fields than YMD fields the whole YMD group is
// cleared, otherwise the YWD group and weekOfMonth are cleared. Ties,
// including none of either, go to YMD.
//
// A combination that denotes no instant fails with ErrInvalidComponents.
func Compose(sys System, partial Components, base *time.Time, r Region) (time.Time, error) {
	seed := syntheticDefaults()
	if base != nil {
		extracted, err := Extract(sys, *base, r)
		if err != nil {
			return time.Time{}, err
		}
		seed = extracted
	}
	working := resolveAddressing(seed.Overlay(partial), partial)
	return sys.Instant(working, r)
}

// resolveAddressing clears the addressing group partial did not pick.
func resolveAddressing(working, partial Components) Components {
	ymdFactor := partial.count(ymdGroup)
	ywdFactor := partial.count(ywdGroup)
	if ywdFactor > ymdFactor {
		return working.Clear(ymdGroup...)
	}
	return working.Clear(YearForWeekOfYear, WeekOfYear, Weekday, WeekOfMonth)
}
