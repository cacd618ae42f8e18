package calendar

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DIFFERENCE - Components between two instants
// =============================================================================

// differenceOrder is the order units are taken out of a difference, largest
// first. Calendar units come before the elapsed time units.
var differenceOrder = []Unit{Era, Year, Quarter, Month, WeekOfYear, Day, Hour, Minute, Second, Nanosecond}

// defaultDifference is used when Difference is given no units.
var defaultDifference = []Unit{Year, Month, Day, Hour, Minute, Second, Nanosecond}

// approxSeconds seeds the search for a calendar unit count. The search
// corrects the estimate, so only the order of magnitude matters.
var approxSeconds = map[Unit]float64{
	Year:       31556952,
	Quarter:    7889238,
	Month:      2629746,
	WeekOfYear: 604800,
	Day:        86400,
}

var elapsedUnits = map[Unit]time.Duration{
	Hour:       time.Hour,
	Minute:     time.Minute,
	Second:     time.Second,
	Nanosecond: time.Nanosecond,
}

// Difference returns how many of each unit lie between from and to, read in
// region r. Units are taken largest first: every count is the largest that,
// added to the cursor left by the larger units, does not pass to. Calendar
// units (era, year, quarter, month, week, day) move the wall clock like
// AddComponents; hours and smaller count elapsed time. Every requested unit
// is present in the result, zero included, and all counts share the sign of
// to - from.
//
// Units outside that list fail with ErrUnsupportedUnit.
func Difference(sys System, from, to time.Time, r Region, units ...Unit) (Components, error) {
	if len(units) == 0 {
		units = defaultDifference
	}
	var wanted Components
	for _, u := range units {
		if !differenceUnit(u) {
			return Components{}, &UnitError{Op: "difference", Unit: u, err: ErrUnsupportedUnit}
		}
		wanted = wanted.Set(u, 0)
	}

	dir := 1
	if to.Before(from) {
		dir = -1
	}

	var out Components
	cursor := from
	for _, u := range differenceOrder {
		if !wanted.Has(u) {
			continue
		}
		var (
			n   int
			err error
		)
		if unit, ok := elapsedUnits[u]; ok {
			n = elapsedCount(cursor, to, unit)
		} else {
			n, err = calendarCount(sys, cursor, to, r, u, dir)
			if err != nil {
				return Components{}, err
			}
		}
		out = out.Set(u, n)
		if n == 0 {
			continue
		}
		cursor, err = sys.AddComponents(Of(u, n), cursor, r)
		if err != nil {
			return Components{}, err
		}
	}
	return out, nil
}

func differenceUnit(u Unit) bool {
	for _, d := range differenceOrder {
		if d == u {
			return true
		}
	}
	return false
}

// calendarCount finds the largest n in direction dir such that adding n of u
// to cursor does not pass to.
func calendarCount(sys System, cursor, to time.Time, r Region, u Unit, dir int) (int, error) {
	fits := func(n int) (bool, error) {
		t, err := sys.AddComponents(Of(u, n), cursor, r)
		if errors.Is(err, ErrInvalidComponents) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if dir > 0 {
			return !t.After(to), nil
		}
		return !t.Before(to), nil
	}

	n := 0
	if secs, ok := approxSeconds[u]; ok {
		n = int(float64(to.Unix()-cursor.Unix()) / secs)
	}
	for n != 0 {
		ok, err := fits(n)
		if err != nil {
			return 0, err
		}
		if ok {
			break
		}
		n -= dir
	}
	for {
		ok, err := fits(n + dir)
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n += dir
	}
}

// elapsedCount is the whole number of units in to - from, truncated toward
// zero. It is exact for spans longer than a time.Duration can hold.
func elapsedCount(from, to time.Time, unit time.Duration) int {
	span := decimal.NewFromInt(to.Unix() - from.Unix()).
		Mul(decimal.NewFromInt(int64(time.Second))).
		Add(decimal.NewFromInt(int64(to.Nanosecond() - from.Nanosecond())))
	q, _ := span.QuoRem(decimal.NewFromInt(int64(unit)), 0)
	n := q.IntPart()
	if n > math.MaxInt || n < math.MinInt {
		return 0
	}
	return int(n)
}

// Difference returns the units between d and other, read in d's region.
func (d RegionalDate) Difference(other RegionalDate, units ...Unit) (Components, error) {
	return Difference(d.sys(), d.instant, other.instant, d.region, units...)
}

// =============================================================================
// GRANULARITY - Comparisons at the precision of a unit
// =============================================================================

// CompareAt compares d and other after truncating both to the start of u in
// d's region: -1, 0 or +1. Nanosecond compares the instants themselves.
func (d RegionalDate) CompareAt(other RegionalDate, u Unit) (int, error) {
	if u == Nanosecond {
		return d.Compare(other), nil
	}
	mine, err := StartOf(d.sys(), d.instant, d.region, u)
	if err != nil {
		return 0, err
	}
	theirs, err := StartOf(d.sys(), other.instant, d.region, u)
	if err != nil {
		return 0, err
	}
	return mine.Compare(theirs), nil
}

// IsSameUnit reports whether d and other fall in the same u.
func (d RegionalDate) IsSameUnit(other RegionalDate, u Unit) (bool, error) {
	c, err := d.CompareAt(other, u)
	return err == nil && c == 0, err
}

// IsBeforeUnit reports whether d's u ends before other's begins.
func (d RegionalDate) IsBeforeUnit(other RegionalDate, u Unit) (bool, error) {
	c, err := d.CompareAt(other, u)
	return err == nil && c < 0, err
}

// IsAfterUnit reports whether d's u begins after other's ends.
func (d RegionalDate) IsAfterUnit(other RegionalDate, u Unit) (bool, error) {
	c, err := d.CompareAt(other, u)
	return err == nil && c > 0, err
}

func (d RegionalDate) IsInPast(now time.Time) bool   { return d.instant.Before(now) }
func (d RegionalDate) IsInFuture(now time.Time) bool { return d.instant.After(now) }
