package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// COMPONENTS - Partial mapping Unit -> int with explicit presence
// =============================================================================

// Components is a partial set of calendar fields. Presence is tracked in a
// bitmask next to a dense value array, so an explicit zero is distinct from
// an absent field.
//
// Components is a value type: every method that changes it returns a copy.
// The zero value is the empty set.
//
// Fields extracted from an instant also carry the UTC offset they were read
// at. It is not a unit: it only picks between the two instants of a wall
// clock repeated by a DST fall-back, and Only, JSON and String drop it.
type Components struct {
	present   uint16
	values    [numUnits]int
	offset    int
	hasOffset bool
}

// WithOffset returns a copy of c that prefers the given UTC offset, in
// seconds, when its wall clock occurs twice.
func (c Components) WithOffset(seconds int) Components {
	c.offset = seconds
	c.hasOffset = true
	return c
}

// Offset returns the preferred UTC offset in seconds, if any.
func (c Components) Offset() (int, bool) { return c.offset, c.hasOffset }

// Set returns a copy of c with u set to v.
func (c Components) Set(u Unit, v int) Components {
	if !u.Valid() {
		return c
	}
	c.present |= 1 << u
	c.values[u] = v
	return c
}

// Value returns the value of u and whether it is present.
func (c Components) Value(u Unit) (int, bool) {
	if !c.Has(u) {
		return 0, false
	}
	return c.values[u], true
}

// Get returns the value of u, or 0 when absent.
func (c Components) Get(u Unit) int {
	v, _ := c.Value(u)
	return v
}

// Has reports whether u is present.
func (c Components) Has(u Unit) bool {
	return u.Valid() && c.present&(1<<u) != 0
}

// Clear returns a copy of c with the given units absent.
func (c Components) Clear(units ...Unit) Components {
	for _, u := range units {
		if !u.Valid() {
			continue
		}
		c.present &^= 1 << u
		c.values[u] = 0
	}
	return c
}

// Len returns the number of present units.
func (c Components) Len() int {
	n := 0
	for u := Unit(0); u < numUnits; u++ {
		if c.Has(u) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no unit is present.
func (c Components) IsEmpty() bool { return c.present == 0 }

// Units returns the present units in declaration order.
func (c Components) Units() []Unit {
	var units []Unit
	for u := Unit(0); u < numUnits; u++ {
		if c.Has(u) {
			units = append(units, u)
		}
	}
	return units
}

// Overlay returns c with every present field of top written over it. The
// offset of top wins when it has one.
func (c Components) Overlay(top Components) Components {
	for _, u := range top.Units() {
		c = c.Set(u, top.values[u])
	}
	if top.hasOffset {
		c = c.WithOffset(top.offset)
	}
	return c
}

// Only returns the subset of c restricted to the given units.
func (c Components) Only(units ...Unit) Components {
	var out Components
	for _, u := range units {
		if v, ok := c.Value(u); ok {
			out = out.Set(u, v)
		}
	}
	return out
}

// Map returns the present fields keyed by unit.
func (c Components) Map() map[Unit]int {
	m := make(map[Unit]int, c.Len())
	for _, u := range c.Units() {
		m[u] = c.values[u]
	}
	return m
}

// FromMap builds a Components from a unit map.
func FromMap(m map[Unit]int) Components {
	var c Components
	for u, v := range m {
		c = c.Set(u, v)
	}
	return c
}

// count returns how many of units are present.
func (c Components) count(units []Unit) int {
	n := 0
	for _, u := range units {
		if c.Has(u) {
			n++
		}
	}
	return n
}

func (c Components) String() string {
	parts := make([]string, 0, c.Len())
	for _, u := range c.Units() {
		parts = append(parts, fmt.Sprintf("%s:%d", u, c.values[u]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// MarshalJSON encodes the present fields as an object keyed by unit name.
func (c Components) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, c.Len())
	for _, u := range c.Units() {
		m[u.String()] = c.values[u]
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by unit name.
func (c *Components) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	var out Components
	for name, v := range m {
		u, err := ParseUnit(name)
		if err != nil {
			return err
		}
		out = out.Set(u, v)
	}
	*c = out
	return nil
}

// =============================================================================
// LITERALS - Single-field sets: Years(1999), Days(31), ...
// =============================================================================

// Of returns a set with exactly one present field.
func Of(u Unit, n int) Components { return Components{}.Set(u, n) }

func Eras(n int) Components        { return Of(Era, n) }
func Years(n int) Components       { return Of(Year, n) }
func Quarters(n int) Components    { return Of(Quarter, n) }
func Months(n int) Components      { return Of(Month, n) }
func Weeks(n int) Components       { return Of(WeekOfYear, n) }
func Days(n int) Components        { return Of(Day, n) }
func Hours(n int) Components       { return Of(Hour, n) }
func Minutes(n int) Components     { return Of(Minute, n) }
func Seconds(n int) Components     { return Of(Second, n) }
func Nanoseconds(n int) Components { return Of(Nanosecond, n) }
