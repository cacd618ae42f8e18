/*
errors.go - Centralized error types for the calendar engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Systems and outer layers wrap these errors with additional context.

ERROR CATEGORIES:
  1. Composition errors - Field combinations that denote no instant
  2. Unit errors        - Operations asked of an unsupported unit
  3. Region errors      - Identifiers the System cannot resolve

WHAT IS NOT AN ERROR:
  - Component arithmetic (Union, SignedAdd, Negate) never fails
  - "No weekend" is a valid answer, reported as ok=false

USAGE:
  if errors.Is(err, calendar.ErrInvalidComponents) {
      // day 31 in a 30-day month, week 54, ...
  }

  var ce *calendar.ComposeError
  if errors.As(err, &ce) {
      log.Printf("cannot compose %s in %s", ce.Components, ce.Region)
  }
*/
package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidComponents is returned when a resolved field combination
	// denotes no valid instant. Values are never clamped or rolled over.
	ErrInvalidComponents = errors.New("components denote no valid instant")

	// ErrUnsupportedUnit is returned by StartOf/EndOf for units outside the
	// zeroing table.
	ErrUnsupportedUnit = errors.New("unsupported unit")

	// ErrUnknownUnit is returned when a unit name cannot be parsed.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnknownCalendar is returned when a System has no calendar for the id.
	ErrUnknownCalendar = errors.New("unknown calendar")

	// ErrUnknownTimeZone is returned when a time zone id cannot be loaded.
	ErrUnknownTimeZone = errors.New("unknown time zone")

	// ErrUnknownLocale is returned when a locale id cannot be parsed.
	ErrUnknownLocale = errors.New("unknown locale")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ComposeError reports the resolved set that could not become an instant.
type ComposeError struct {
	Components Components
	Region     Region
	Reason     string
	err        error
}

// NewComposeError wraps ErrInvalidComponents with context. Systems use it
// when resolution fails.
func NewComposeError(c Components, r Region, reason string) *ComposeError {
	return &ComposeError{Components: c, Region: r, Reason: reason, err: ErrInvalidComponents}
}

func (e *ComposeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("compose %s in %s: %v", e.Components, e.Region, e.err)
	}
	return fmt.Sprintf("compose %s in %s: %v: %s", e.Components, e.Region, e.err, e.Reason)
}

func (e *ComposeError) Unwrap() error { return e.err }

// UnitError reports an operation that does not apply to a unit.
type UnitError struct {
	Op   string // "startOf", "endOf", "parse", ...
	Unit Unit
	Name string // raw name for parse failures
	err  error
}

// NewUnitError wraps ErrUnsupportedUnit or ErrUnknownUnit for u.
func NewUnitError(op string, u Unit, sentinel error) *UnitError {
	return &UnitError{Op: op, Unit: u, err: sentinel}
}

func (e *UnitError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Unit, e.err)
}

func (e *UnitError) Unwrap() error { return e.err }

// RegionError reports which identifier of a region could not be resolved.
type RegionError struct {
	Region Region
	Field  string // "calendar", "time_zone" or "locale"
	err    error
}

// NewRegionError wraps one of the ErrUnknown* sentinels. cause may carry the
// underlying library error and is kept in the message only.
func NewRegionError(r Region, field string, sentinel error, cause error) *RegionError {
	err := sentinel
	if cause != nil {
		err = fmt.Errorf("%w: %v", sentinel, cause)
	}
	return &RegionError{Region: r, Field: field, err: err}
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("region %s: %s: %v", e.Region, e.Field, e.err)
}

func (e *RegionError) Unwrap() error { return e.err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRegionError returns true if the error comes from an unresolvable region.
func IsRegionError(err error) bool {
	return errors.Is(err, ErrUnknownCalendar) ||
		errors.Is(err, ErrUnknownTimeZone) ||
		errors.Is(err, ErrUnknownLocale)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidComponents) ||
		errors.Is(err, ErrUnsupportedUnit) ||
		errors.Is(err, ErrUnknownUnit) ||
		IsRegionError(err)
}
