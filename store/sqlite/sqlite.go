/*
Package sqlite provides a SQLite-backed profile.Store.

PURPOSE:
  Persists region profiles so they survive restarts of the server and can be
  shared with regionctl through the same database file.

KEY TABLES:
  profiles: One row per named region (name is unique)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/regions.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := profile.NewService(store, calendars.NewRegistry())

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - profile/profile.go: Store interface
  - profile/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/profile"
)

// Store implements profile.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ profile.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		calendar TEXT NOT NULL,
		time_zone TEXT NOT NULL,
		locale TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_calendar
		ON profiles(calendar);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROFILE STORE (profile.Store interface)
// =============================================================================

// Save inserts a profile. Names are unique.
func (s *Store) Save(ctx context.Context, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, calendar, time_zone, locale, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		p.ID.String(), p.Name,
		string(p.Region.Calendar), p.Region.TimeZone, p.Region.Locale,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: %s", profile.ErrDuplicateProfile, p.Name)
	}
	return err
}

// Get retrieves a profile by name.
func (s *Store) Get(ctx context.Context, name string) (profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, calendar, time_zone, locale, created_at FROM profiles WHERE name = ?",
		name,
	)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, fmt.Errorf("%w: %s", profile.ErrProfileNotFound, name)
	}
	return p, err
}

// List returns all profiles ordered by name.
func (s *Store) List(ctx context.Context) ([]profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, calendar, time_zone, locale, created_at FROM profiles ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []profile.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Delete removes a profile by name.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", profile.ErrProfileNotFound, name)
	}
	return nil
}

// Helper functions

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (profile.Profile, error) {
	var p profile.Profile
	var id, cal, tz, loc, at string
	if err := row.Scan(&id, &p.Name, &cal, &tz, &loc, &at); err != nil {
		return profile.Profile{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("profile %s: bad id: %w", p.Name, err)
	}
	p.ID = parsed
	p.Region = calendar.NewRegion(calendar.CalendarID(cal), tz, loc)
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, at)
	return p, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
