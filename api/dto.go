/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Domain values
  (calendar.Region, calendar.Components, calendar.Zone) already carry JSON
  encodings and are embedded as they are; instants are RFC 3339 strings.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Dates:    DateDTO, RangeDTO, WeekendDTO
  Requests: RegionRef, ComposeRequest, AddRequest
  Profiles: profile.Profile, factory.ProfileJSON

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/region.go: RegionJSON, ProfileJSON
*/
package api

import (
	"time"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/factory"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// RegionRef selects a region by profile name or by identifiers. A profile
// wins when both are given.
type RegionRef struct {
	Profile string              `json:"profile,omitempty"`
	Region  *factory.RegionJSON `json:"region,omitempty"`
}

// ComposeRequest builds an instant from fields, optionally over a base.
type ComposeRequest struct {
	RegionRef
	Components calendar.Components `json:"components"`
	Base       string              `json:"base,omitempty"`
}

// AddRequest moves an instant by fields.
type AddRequest struct {
	RegionRef
	At         string              `json:"at"`
	Components calendar.Components `json:"components"`
	Subtract   bool                `json:"subtract,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// DateDTO is an instant with its fields in a region.
type DateDTO struct {
	Instant    string              `json:"instant"`
	Region     calendar.Region     `json:"region"`
	Components calendar.Components `json:"components"`
	JulianDay  string              `json:"julian_day"`
	Zone       calendar.Zone       `json:"zone"`
}

// RangeDTO is a closed interval of instants.
type RangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeekendDTO wraps an optional weekend; Weekend is null when there is none.
type WeekendDTO struct {
	Weekend *RangeDTO       `json:"weekend"`
	Region  calendar.Region `json:"region"`
}

// HealthDTO reports service readiness.
type HealthDTO struct {
	Status    string                `json:"status"`
	Calendars []calendar.CalendarID `json:"calendars"`
	Database  string                `json:"database,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func formatInstant(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// NewRangeDTO renders a range.
func NewRangeDTO(r calendar.Range) RangeDTO {
	return RangeDTO{Start: formatInstant(r.Start), End: formatInstant(r.End)}
}

// NewDateDTO renders d with its fields, zone and Julian day.
func NewDateDTO(d calendar.RegionalDate) (DateDTO, error) {
	c, err := d.Components()
	if err != nil {
		return DateDTO{}, err
	}
	z, err := d.Zone()
	if err != nil {
		return DateDTO{}, err
	}
	return DateDTO{
		Instant:    formatInstant(d.Instant().In(zoneLocation(z))),
		Region:     d.Region(),
		Components: c,
		JulianDay:  d.JulianDay().String(),
		Zone:       z,
	}, nil
}

// zoneLocation renders instants with the region's offset at that instant.
func zoneLocation(z calendar.Zone) *time.Location {
	return time.FixedZone(z.Name, z.Offset)
}
