package calendar

import "time"

// =============================================================================
// SYSTEM - The calendar rules collaborator
// =============================================================================

// System knows the rules of the calendars named by Region.Calendar: leap
// years, month lengths, weekday numbering, week rules and weekend placement.
// The engine never does calendar math itself; it only decides which fields
// to ask for.
//
// Implementations must be safe for concurrent use. Weekdays are numbered
// 1 (Sunday) through 7 (Saturday).
//
// Errors are limited to regions the System cannot resolve (see RegionError)
// and, for Instant, field combinations that denote no instant (ComposeError).
type System interface {
	// ComponentValue returns a single field. ok is false when the unit does
	// not apply to the calendar.
	ComponentValue(t time.Time, u Unit, r Region) (v int, ok bool, err error)

	// AllComponents returns every applicable field of t.
	AllComponents(t time.Time, r Region) (Components, error)

	// Instant resolves a field set. The set addresses the date through
	// exactly one of the YMD or YWD groups.
	Instant(c Components, r Region) (time.Time, error)

	// AddComponents moves t by every present field of c.
	AddComponents(c Components, t time.Time, r Region) (time.Time, error)

	// IsWeekend reports whether t falls in the locale's weekend.
	IsWeekend(t time.Time, r Region) (bool, error)

	// NextWeekendStart returns the start and length in seconds of the first
	// weekend starting strictly after t. ok is false when the locale defines
	// no weekend.
	NextWeekendStart(after time.Time, r Region) (start time.Time, seconds int64, ok bool, err error)

	// FirstWeekday returns the locale's first day of the week (1..7).
	FirstWeekday(r Region) (int, error)

	// Zone describes the time zone at t.
	Zone(t time.Time, r Region) (Zone, error)

	// IsLeap reports whether the Month or Year containing t is a leap one.
	IsLeap(t time.Time, u Unit, r Region) (bool, error)

	// DaysInMonth returns the length of the month containing t.
	DaysInMonth(t time.Time, r Region) (int, error)
}

// Zone describes a time zone at one instant.
type Zone struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"` // seconds east of UTC
	IsDST  bool   `json:"is_dst"`

	// NextTransition is the next change of offset after the instant, zero
	// when the zone has none.
	NextTransition time.Time `json:"next_transition,omitempty"`
}
