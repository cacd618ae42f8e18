/*
Package calendar provides the region-aware calendar component engine.

PURPOSE:
  Converts an absolute instant into calendar fields (year, month, day, ...)
  under a Region (calendar + time zone + locale), composes instants back from
  partial field sets, computes unit boundaries (start/end of a day, week,
  month, ...), and performs calendar-aware arithmetic and weekend queries.

KEY CONCEPTS:
  - Unit:         One named calendar field (Year, WeekOfYear, ...)
  - Components:   Partial mapping Unit -> int with explicit presence
  - Region:       Calendar id + time zone id + locale id
  - System:       The collaborator that knows calendar rules
  - RegionalDate: An instant bound to a Region (the facade)

DESIGN PRINCIPLES:
  1. Immutability: Components, Region and RegionalDate are values
  2. No ambient state: every operation takes its Region explicitly
  3. No sentinels: presence is a bitmask, never a magic integer
  4. No clamping: an impossible field combination is an error

USAGE:
  engine := calendar.NewEngine(calendars.NewRegistry())
  ams := calendar.NewRegion(calendar.Gregorian, "Europe/Amsterdam", "nl_NL")

  date, err := engine.Compose(calendar.Years(1999).
      Set(calendar.Month, 12).Set(calendar.Day, 31), ams)
  week, err := date.StartOf(calendar.WeekOfYear)

SEE ALSO:
  - components.go: Components and literal constructors
  - compose.go:    Addressing tie-break
  - boundaries.go: StartOf / EndOf zeroing table
  - weekend.go:    Weekend queries
  - date.go:       RegionalDate facade
*/
package calendar

import (
	"fmt"
	"strings"
)

// =============================================================================
// UNIT - Closed enumeration of calendar fields
// =============================================================================

// Unit names one field of a calendar breakdown.
type Unit int

const (
	Era Unit = iota
	Year
	Month
	Day
	Hour
	Minute
	Second
	Nanosecond
	YearForWeekOfYear
	WeekOfYear
	Weekday
	WeekdayOrdinal
	WeekOfMonth
	Quarter

	numUnits
)

var unitNames = [numUnits]string{
	Era:               "era",
	Year:              "year",
	Month:             "month",
	Day:               "day",
	Hour:              "hour",
	Minute:            "minute",
	Second:            "second",
	Nanosecond:        "nanosecond",
	YearForWeekOfYear: "yearForWeekOfYear",
	WeekOfYear:        "weekOfYear",
	Weekday:           "weekday",
	WeekdayOrdinal:    "weekdayOrdinal",
	WeekOfMonth:       "weekOfMonth",
	Quarter:           "quarter",
}

// Addressing groups. A date is addressed either by year-month-day or by
// year-for-week-of-year / week-of-year / weekday, never both.
var (
	ymdGroup = []Unit{Year, Month, Day}
	ywdGroup = []Unit{YearForWeekOfYear, WeekOfYear, Weekday}
)

// AllUnits returns every unit in declaration order.
func AllUnits() []Unit {
	units := make([]Unit, numUnits)
	for i := range units {
		units[i] = Unit(i)
	}
	return units
}

// Valid reports whether u is one of the declared units.
func (u Unit) Valid() bool { return u >= 0 && u < numUnits }

func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit resolves a unit name. Matching is case-insensitive; "week" is
// accepted for WeekOfYear and plural forms ("days") are accepted.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "week", "weeks":
		return WeekOfYear, nil
	}
	for u, n := range unitNames {
		lower := strings.ToLower(n)
		if name == lower || name == lower+"s" {
			return Unit(u), nil
		}
	}
	return 0, &UnitError{Op: "parse", Name: s, err: ErrUnknownUnit}
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, &UnitError{Op: "marshal", Unit: u, err: ErrUnknownUnit}
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(b []byte) error {
	parsed, err := ParseUnit(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
