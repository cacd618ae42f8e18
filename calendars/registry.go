/*
registry.go - The calendar.System backed by package time and hebcal/hdate

PURPOSE:
  Registry resolves a Region to a calendar kernel, a *time.Location and the
  locale's week rules, then answers every calendar.System question with them.

HOW A CALL RUNS:
  1. acquire() checks a session out of the pool and resolves the region
  2. the session computes on day numbers in the region's zone
  3. release() returns the session on every exit path (defer)

CALENDARS:
  gregorian  Proleptic Gregorian, era 1 = CE, era 0 = BCE
  iso8601    Gregorian with Monday-first weeks and a 4-day first week
  buddhist   Gregorian + 543 years, single era
  hebrew     hebcal/hdate, months from Tishrei, single era

SEE ALSO:
  - kernel.go: date <-> day number per calendar
  - weeks.go: week-of-year and week-of-month rules
  - locale.go: territory conventions
*/
package calendars

import (
	"sync"
	"time"

	"github.com/warp/region-engine/calendar"
)

// Registry is a calendar.System. It is safe for concurrent use.
type Registry struct {
	kernels map[calendar.CalendarID]kernel
	forced  map[calendar.CalendarID]func(weekRules) weekRules
	locales *Locales
	zones   *zoneCache
	pool    sync.Pool
}

var _ calendar.System = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithLocales replaces the embedded locale table.
func WithLocales(l *Locales) Option {
	return func(r *Registry) { r.locales = l }
}

// NewRegistry creates a Registry with every built-in calendar.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		kernels: map[calendar.CalendarID]kernel{
			calendar.Gregorian: gregorian{},
			calendar.ISO8601:   gregorian{},
			calendar.Buddhist:  buddhist{},
			calendar.Hebrew:    hebrew{},
		},
		forced: map[calendar.CalendarID]func(weekRules) weekRules{
			calendar.ISO8601: func(w weekRules) weekRules {
				w.firstWeekday, w.minDays = 2, 4
				return w
			},
		},
		locales: DefaultLocales(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.zones = newZoneCache(r.locales.zoneAliases)
	r.pool.New = func() any { return new(session) }
	return r
}

// Calendars lists the calendar ids the registry knows.
func (g *Registry) Calendars() []calendar.CalendarID {
	return []calendar.CalendarID{calendar.Gregorian, calendar.ISO8601, calendar.Buddhist, calendar.Hebrew}
}

// Validate resolves every identifier of r.
func (g *Registry) Validate(r calendar.Region) error {
	s, err := g.acquire(r)
	if err != nil {
		return err
	}
	g.release(s)
	return nil
}

// =============================================================================
// SESSIONS
// =============================================================================

// session is a region resolved for one call.
type session struct {
	region calendar.Region
	kernel kernel
	loc    *time.Location
	rules  weekRules
}

func (g *Registry) acquire(r calendar.Region) (*session, error) {
	k, ok := g.kernels[r.Calendar]
	if !ok {
		return nil, calendar.NewRegionError(r, "calendar", calendar.ErrUnknownCalendar, nil)
	}
	loc, err := g.zones.load(r)
	if err != nil {
		return nil, err
	}
	rules, err := g.locales.rules(r)
	if err != nil {
		return nil, err
	}
	if force, ok := g.forced[r.Calendar]; ok {
		rules = force(rules)
	}

	s := g.pool.Get().(*session)
	s.region, s.kernel, s.loc, s.rules = r, k, loc, rules
	return s, nil
}

func (g *Registry) release(s *session) {
	*s = session{}
	g.pool.Put(s)
}

// =============================================================================
// calendar.System
// =============================================================================

func (g *Registry) AllComponents(t time.Time, r calendar.Region) (calendar.Components, error) {
	s, err := g.acquire(r)
	if err != nil {
		return calendar.Components{}, err
	}
	defer g.release(s)
	return s.components(t), nil
}

func (g *Registry) ComponentValue(t time.Time, u calendar.Unit, r calendar.Region) (int, bool, error) {
	if !u.Valid() {
		return 0, false, calendar.NewUnitError("component", u, calendar.ErrUnknownUnit)
	}
	c, err := g.AllComponents(t, r)
	if err != nil {
		return 0, false, err
	}
	v, ok := c.Value(u)
	return v, ok, nil
}

func (g *Registry) Instant(c calendar.Components, r calendar.Region) (time.Time, error) {
	s, err := g.acquire(r)
	if err != nil {
		return time.Time{}, err
	}
	defer g.release(s)
	return s.instant(c)
}

func (g *Registry) AddComponents(c calendar.Components, t time.Time, r calendar.Region) (time.Time, error) {
	s, err := g.acquire(r)
	if err != nil {
		return time.Time{}, err
	}
	defer g.release(s)
	return s.add(c, t)
}

func (g *Registry) IsWeekend(t time.Time, r calendar.Region) (bool, error) {
	s, err := g.acquire(r)
	if err != nil {
		return false, err
	}
	defer g.release(s)
	return s.rules.inWeekend(weekdayOf(localDay(t, s.loc))), nil
}

func (g *Registry) NextWeekendStart(after time.Time, r calendar.Region) (time.Time, int64, bool, error) {
	s, err := g.acquire(r)
	if err != nil {
		return time.Time{}, 0, false, err
	}
	defer g.release(s)
	start, seconds, ok := s.nextWeekend(after)
	return start, seconds, ok, nil
}

func (g *Registry) FirstWeekday(r calendar.Region) (int, error) {
	s, err := g.acquire(r)
	if err != nil {
		return 0, err
	}
	defer g.release(s)
	return s.rules.firstWeekday, nil
}

func (g *Registry) Zone(t time.Time, r calendar.Region) (calendar.Zone, error) {
	s, err := g.acquire(r)
	if err != nil {
		return calendar.Zone{}, err
	}
	defer g.release(s)

	local := t.In(s.loc)
	name, offset := local.Zone()
	_, end := local.ZoneBounds()
	return calendar.Zone{Name: name, Offset: offset, IsDST: local.IsDST(), NextTransition: end}, nil
}

func (g *Registry) IsLeap(t time.Time, u calendar.Unit, r calendar.Region) (bool, error) {
	if u != calendar.Year && u != calendar.Month {
		return false, calendar.NewUnitError("isLeap", u, calendar.ErrUnsupportedUnit)
	}
	s, err := g.acquire(r)
	if err != nil {
		return false, err
	}
	defer g.release(s)

	c := s.kernel.fromDay(localDay(t, s.loc))
	ext := s.kernel.extYear(c.era, c.year)
	if u == calendar.Year {
		return s.kernel.isLeapYear(ext), nil
	}
	return s.kernel.isLeapMonth(ext, c.month), nil
}

func (g *Registry) DaysInMonth(t time.Time, r calendar.Region) (int, error) {
	s, err := g.acquire(r)
	if err != nil {
		return 0, err
	}
	defer g.release(s)

	c := s.kernel.fromDay(localDay(t, s.loc))
	return s.kernel.daysInMonth(s.kernel.extYear(c.era, c.year), c.month), nil
}
