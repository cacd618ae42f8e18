/*
Package profile stores named regions.

PURPOSE:
  A Profile gives a Region a stable name ("amsterdam-office") so API and CLI
  callers can refer to it instead of repeating calendar, time zone and
  locale on every request.

KEY CONCEPTS:
  - Profile: ID + unique name + Region
  - Store:   Persistence (memory in profile/store, SQLite in store/sqlite)
  - Service: Validates regions before they are stored

SEE ALSO:
  - calendar/region.go: Region
  - calendars/registry.go: Region validation
*/
package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/warp/region-engine/calendar"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrProfileNotFound is returned when no profile has the name.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrDuplicateProfile is returned when saving a name that is taken.
	ErrDuplicateProfile = errors.New("profile already exists")

	// ErrInvalidProfile is returned for malformed names or empty regions.
	ErrInvalidProfile = errors.New("invalid profile")
)

// =============================================================================
// PROFILE
// =============================================================================

// Profile is a named Region.
type Profile struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Region    calendar.Region `json:"region"`
	CreatedAt time.Time       `json:"created_at"`
}

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,63}$`)

// NormalizeName lowercases and trims a profile name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds a profile with a fresh ID. The name is normalized.
func New(name string, r calendar.Region) (Profile, error) {
	name = NormalizeName(name)
	if !namePattern.MatchString(name) {
		return Profile{}, fmt.Errorf("%w: name %q must be 1-64 of [a-z0-9_.-]", ErrInvalidProfile, name)
	}
	if r.IsZero() {
		return Profile{}, fmt.Errorf("%w: empty region", ErrInvalidProfile)
	}
	return Profile{
		ID:        uuid.New(),
		Name:      name,
		Region:    r,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// =============================================================================
// STORE
// =============================================================================

// Store persists profiles by unique name. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save inserts a profile; ErrDuplicateProfile if the name is taken.
	Save(ctx context.Context, p Profile) error

	// Get returns the profile with the name or ErrProfileNotFound.
	Get(ctx context.Context, name string) (Profile, error)

	// List returns every profile ordered by name.
	List(ctx context.Context) ([]Profile, error)

	// Delete removes a profile or returns ErrProfileNotFound.
	Delete(ctx context.Context, name string) error
}

// =============================================================================
// SERVICE
// =============================================================================

// Validator resolves every identifier of a region.
type Validator interface {
	Validate(r calendar.Region) error
}

// Service creates and resolves profiles, refusing regions the validator
// cannot resolve.
type Service struct {
	store     Store
	validator Validator
}

func NewService(store Store, validator Validator) *Service {
	return &Service{store: store, validator: validator}
}

// Create validates and stores a new profile.
func (s *Service) Create(ctx context.Context, name string, r calendar.Region) (Profile, error) {
	p, err := New(name, r)
	if err != nil {
		return Profile{}, err
	}
	if err := s.validator.Validate(r); err != nil {
		return Profile{}, err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Ensure creates the profile unless one with the name already exists. It is
// used to seed profiles from configuration on every start.
func (s *Service) Ensure(ctx context.Context, name string, r calendar.Region) (Profile, bool, error) {
	existing, err := s.store.Get(ctx, NormalizeName(name))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return Profile{}, false, err
	}
	p, err := s.Create(ctx, name, r)
	return p, err == nil, err
}

// Region returns the region stored under name.
func (s *Service) Region(ctx context.Context, name string) (calendar.Region, error) {
	p, err := s.store.Get(ctx, NormalizeName(name))
	if err != nil {
		return calendar.Region{}, err
	}
	return p.Region, nil
}

func (s *Service) Get(ctx context.Context, name string) (Profile, error) {
	return s.store.Get(ctx, NormalizeName(name))
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, name string) error {
	return s.store.Delete(ctx, NormalizeName(name))
}
