package calendar

import "fmt"

// =============================================================================
// REGION - Calendar + time zone + locale
// =============================================================================

// CalendarID identifies a calendar system. The engine treats it as opaque;
// the System decides what it means.
type CalendarID string

const (
	Gregorian CalendarID = "gregorian"
	ISO8601   CalendarID = "iso8601"
	Buddhist  CalendarID = "buddhist"
	Hebrew    CalendarID = "hebrew"
)

// Region governs how an instant maps to calendar fields. It is a comparable
// value: two regions are equal when their identifier triples are equal.
type Region struct {
	Calendar CalendarID `json:"calendar"`
	TimeZone string     `json:"time_zone"`
	Locale   string     `json:"locale"`
}

// NewRegion builds a Region from its identifiers.
func NewRegion(cal CalendarID, timeZone, locale string) Region {
	return Region{Calendar: cal, TimeZone: timeZone, Locale: locale}
}

// UTC is the Gregorian calendar in UTC with a neutral locale.
func UTC() Region { return Region{Calendar: Gregorian, TimeZone: "UTC", Locale: "en_001"} }

func (r Region) WithCalendar(cal CalendarID) Region { r.Calendar = cal; return r }
func (r Region) WithTimeZone(tz string) Region      { r.TimeZone = tz; return r }
func (r Region) WithLocale(loc string) Region       { r.Locale = loc; return r }

// Equal compares identifier triples.
func (r Region) Equal(other Region) bool { return r == other }

// IsZero reports whether no identifier is set.
func (r Region) IsZero() bool { return r == Region{} }

func (r Region) String() string {
	return fmt.Sprintf("%s/%s/%s", r.Calendar, r.TimeZone, r.Locale)
}
