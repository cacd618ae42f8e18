/*
Package factory provides JSON to Go region and component conversion.

PURPOSE:
  Converts JSON region, component and profile documents into calendar and
  profile values. The API, the CLI and the config loader all accept the same
  documents, so the parsing and defaulting rules live here once.

JSON SCHEMA:
  Region:
    {"calendar": "gregorian", "time_zone": "Europe/Amsterdam", "locale": "nl_NL"}

  Components (keys are unit names, plural forms accepted):
    {"year": 1999, "month": 12, "day": 31}

  Profile:
    {"name": "amsterdam", "region": {...}}

KEY FEATURES:
  - Missing region identifiers are taken from the factory's defaults
  - Unknown units and malformed instants are client errors
  - Instants are RFC 3339 with optional fractional seconds

USAGE:
  f := factory.NewRegionFactory(calendar.UTC())

  region, err := f.ParseRegion(body)
  fields, err := f.ParseComponents(`{"days": -2, "hours": 5}`)

SEE ALSO:
  - calendar/region.go: Region
  - calendar/components.go: Components JSON encoding
  - profile/profile.go: Profile
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/profile"
)

// ErrInvalidDocument is returned for documents that cannot be decoded.
var ErrInvalidDocument = errors.New("invalid document")

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RegionJSON is the JSON representation of a region. Empty fields take the
// factory defaults.
type RegionJSON struct {
	Calendar string `json:"calendar,omitempty" toml:"calendar"`
	TimeZone string `json:"time_zone,omitempty" toml:"time_zone"`
	Locale   string `json:"locale,omitempty" toml:"locale"`
}

// ProfileJSON is the JSON representation of a named region.
type ProfileJSON struct {
	Name   string     `json:"name" toml:"name"`
	Region RegionJSON `json:"region" toml:"region"`
}

// =============================================================================
// FACTORY
// =============================================================================

// RegionFactory parses documents, filling gaps from a default region.
type RegionFactory struct {
	defaults calendar.Region
}

func NewRegionFactory(defaults calendar.Region) *RegionFactory {
	return &RegionFactory{defaults: defaults}
}

// Defaults returns the region used to fill missing identifiers.
func (f *RegionFactory) Defaults() calendar.Region { return f.defaults }

// Region converts a RegionJSON, applying defaults.
func (f *RegionFactory) Region(r RegionJSON) calendar.Region {
	out := f.defaults
	if v := strings.TrimSpace(r.Calendar); v != "" {
		out.Calendar = calendar.CalendarID(strings.ToLower(v))
	}
	if v := strings.TrimSpace(r.TimeZone); v != "" {
		out.TimeZone = v
	}
	if v := strings.TrimSpace(r.Locale); v != "" {
		out.Locale = v
	}
	return out
}

// ParseRegion decodes a region document.
func (f *RegionFactory) ParseRegion(data []byte) (calendar.Region, error) {
	var r RegionJSON
	if err := decode(data, &r); err != nil {
		return calendar.Region{}, err
	}
	return f.Region(r), nil
}

// ParseComponents decodes a components document.
func (f *RegionFactory) ParseComponents(data string) (calendar.Components, error) {
	var c calendar.Components
	if strings.TrimSpace(data) == "" {
		return c, nil
	}
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		if calendar.IsClientError(err) {
			return calendar.Components{}, err
		}
		return calendar.Components{}, fmt.Errorf("%w: components: %v", ErrInvalidDocument, err)
	}
	return c, nil
}

// Profile converts a ProfileJSON into a new profile with a fresh ID.
func (f *RegionFactory) Profile(p ProfileJSON) (profile.Profile, error) {
	return profile.New(p.Name, f.Region(p.Region))
}

// ParseProfile decodes a profile document.
func (f *RegionFactory) ParseProfile(data []byte) (profile.Profile, error) {
	var p ProfileJSON
	if err := decode(data, &p); err != nil {
		return profile.Profile{}, err
	}
	return f.Profile(p)
}

// ParseInstant reads an RFC 3339 instant. An empty string is now.
func ParseInstant(s string, now func() time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: instant %q: expected RFC 3339", ErrInvalidDocument, s)
	}
	return t, nil
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
