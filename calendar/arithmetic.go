package calendar

// =============================================================================
// COMPONENT ARITHMETIC - Pure functions over Components. Never fail.
// =============================================================================

// Sign selects addition or subtraction in SignedAdd.
type Sign int

const (
	Plus  Sign = 1
	Minus Sign = -1
)

// Union merges two sets field by field, preferring lhs when both are present.
//
//	calendar.Union(calendar.Years(1999), calendar.Union(calendar.Months(12), calendar.Days(31)))
func Union(lhs, rhs Components) Components {
	var out Components
	for u := Unit(0); u < numUnits; u++ {
		if v, ok := lhs.Value(u); ok {
			out = out.Set(u, v)
		} else if v, ok := rhs.Value(u); ok {
			out = out.Set(u, v)
		}
	}
	return out
}

// SignedAdd combines two sets field by field:
//
//	both absent   -> absent
//	one present   -> value * sign
//	both present  -> (lhs + rhs) * sign
//
// An explicit zero takes part in the sum, so "untouched" and "zero" stay
// distinguishable in the result.
func SignedAdd(lhs, rhs Components, sign Sign) Components {
	var out Components
	for u := Unit(0); u < numUnits; u++ {
		l, lok := lhs.Value(u)
		r, rok := rhs.Value(u)
		switch {
		case lok && rok:
			out = out.Set(u, (l+r)*int(sign))
		case lok:
			out = out.Set(u, l*int(sign))
		case rok:
			out = out.Set(u, r*int(sign))
		}
	}
	return out
}

// Negate flips the sign of every present field.
func Negate(c Components) Components {
	var out Components
	for _, u := range c.Units() {
		out = out.Set(u, -c.values[u])
	}
	return out
}

// Add is SignedAdd with a positive sign.
func (c Components) Add(other Components) Components { return SignedAdd(c, other, Plus) }

// Sub returns c plus the negation of other.
func (c Components) Sub(other Components) Components { return SignedAdd(c, Negate(other), Plus) }

// And is Union with c preferred.
func (c Components) And(other Components) Components { return Union(c, other) }

// Negate returns the negation of c.
func (c Components) Negate() Components { return Negate(c) }
