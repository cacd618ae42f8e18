package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// ENGINE - Binds the component engine to a System
// =============================================================================

// Engine carries the System every RegionalDate it creates uses. It holds no
// default region: callers pass one to every constructor.
type Engine struct {
	sys System
}

// NewEngine creates an engine over sys.
func NewEngine(sys System) *Engine {
	return &Engine{sys: sys}
}

// System returns the engine's calendar System.
func (e *Engine) System() System { return e.sys }

// In expresses t in region r.
func (e *Engine) In(t time.Time, r Region) RegionalDate {
	return RegionalDate{instant: t, region: r, engine: e}
}

// Now expresses the current instant in region r.
func (e *Engine) Now(r Region) RegionalDate { return e.In(time.Now(), r) }

// Compose builds a date from a partial field set with no base instant.
func (e *Engine) Compose(partial Components, r Region) (RegionalDate, error) {
	t, err := Compose(e.sys, partial, nil, r)
	if err != nil {
		return RegionalDate{}, err
	}
	return e.In(t, r), nil
}

// =============================================================================
// REGIONAL DATE - An instant paired with a Region
// =============================================================================

// RegionalDate is an immutable instant expressed in a Region. Every
// operation returns a new value with the same Region unless stated.
type RegionalDate struct {
	instant time.Time
	region  Region
	engine  *Engine
}

func (d RegionalDate) Instant() time.Time { return d.instant }
func (d RegionalDate) Region() Region     { return d.region }

// IsZero reports whether d was never assigned.
func (d RegionalDate) IsZero() bool { return d.engine == nil && d.instant.IsZero() }

func (d RegionalDate) sys() System { return d.engine.sys }

func (d RegionalDate) with(t time.Time) RegionalDate {
	return RegionalDate{instant: t, region: d.region, engine: d.engine}
}

// InRegion expresses the same instant in another region.
func (d RegionalDate) InRegion(r Region) RegionalDate {
	return RegionalDate{instant: d.instant, region: r, engine: d.engine}
}

// Components returns every applicable field.
func (d RegionalDate) Components() (Components, error) {
	return Extract(d.sys(), d.instant, d.region)
}

// Component returns one field; ok is false when the calendar has no such
// field.
func (d RegionalDate) Component(u Unit) (int, bool, error) {
	return ExtractOne(d.sys(), d.instant, d.region, u)
}

// Compose builds a date from partial using d as the base.
func (d RegionalDate) Compose(partial Components) (RegionalDate, error) {
	base := d.instant
	t, err := Compose(d.sys(), partial, &base, d.region)
	if err != nil {
		return RegionalDate{}, err
	}
	return d.with(t), nil
}

// =============================================================================
// BOUNDARIES
// =============================================================================

func (d RegionalDate) StartOf(u Unit) (RegionalDate, error) {
	t, err := StartOf(d.sys(), d.instant, d.region, u)
	if err != nil {
		return RegionalDate{}, err
	}
	return d.with(t), nil
}

func (d RegionalDate) EndOf(u Unit) (RegionalDate, error) {
	t, err := EndOf(d.sys(), d.instant, d.region, u)
	if err != nil {
		return RegionalDate{}, err
	}
	return d.with(t), nil
}

// NextUnit returns the start of the unit after the one containing d.
func (d RegionalDate) NextUnit(u Unit) (RegionalDate, error) {
	t, err := NextUnit(d.sys(), d.instant, d.region, u)
	if err != nil {
		return RegionalDate{}, err
	}
	return d.with(t), nil
}

func (d RegionalDate) UnitRange(u Unit) (Range, error) {
	return UnitRange(d.sys(), d.instant, d.region, u)
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// Add moves d by every present field of c using d's own region.
func (d RegionalDate) Add(c Components) (RegionalDate, error) {
	t, err := d.sys().AddComponents(c, d.instant, d.region)
	if err != nil {
		return RegionalDate{}, err
	}
	return d.with(t), nil
}

// Subtract is Add of the negated set.
func (d RegionalDate) Subtract(c Components) (RegionalDate, error) {
	return d.Add(Negate(c))
}

// =============================================================================
// WEEKENDS
// =============================================================================

func (d RegionalDate) IsInWeekend() (bool, error) {
	return IsInWeekend(d.sys(), d.instant, d.region)
}

func (d RegionalDate) ThisWeekend() (Range, bool, error) {
	return ThisWeekend(d.sys(), d.instant, d.region)
}

func (d RegionalDate) NextWeekend() (Range, bool, error) {
	return NextWeekend(d.sys(), d.instant, d.region)
}

func (d RegionalDate) PreviousWeekend() (Range, bool, error) {
	return PreviousWeekend(d.sys(), d.instant, d.region)
}

// =============================================================================
// EQUALITY
// =============================================================================

// Equal requires the same instant, calendar, locale and UTC offset at the
// instant. Time zone ids may differ when their offsets agree.
func (d RegionalDate) Equal(other RegionalDate) bool {
	if !d.instant.Equal(other.instant) ||
		d.region.Calendar != other.region.Calendar ||
		d.region.Locale != other.region.Locale {
		return false
	}
	if d.region.TimeZone == other.region.TimeZone {
		return true
	}
	if d.engine == nil || other.engine == nil {
		return false
	}
	lz, err := d.sys().Zone(d.instant, d.region)
	if err != nil {
		return false
	}
	rz, err := other.sys().Zone(other.instant, other.region)
	if err != nil {
		return false
	}
	return lz.Offset == rz.Offset
}

func (d RegionalDate) String() string {
	return fmt.Sprintf("%s in %s", d.instant.Format(time.RFC3339Nano), d.region)
}
