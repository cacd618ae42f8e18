package calendar

import "time"

// =============================================================================
// RANGE - A closed interval of instants
// =============================================================================

// Range is the closed interval [Start, End]. Unit and weekend ranges end
// EndEpsilon before the next boundary, so adjacent ranges never overlap.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains returns true if t is within [Start, End].
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Duration returns End - Start.
func (r Range) Duration() time.Duration { return r.End.Sub(r.Start) }

// IsZero reports whether both bounds are zero.
func (r Range) IsZero() bool { return r.Start.IsZero() && r.End.IsZero() }

// String returns a string representation of the range.
func (r Range) String() string {
	return "[" + r.Start.Format(time.RFC3339Nano) + ", " + r.End.Format(time.RFC3339Nano) + "]"
}
