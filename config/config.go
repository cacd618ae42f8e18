/*
Package config loads server and CLI settings.

PURPOSE:
  One Config for cmd/server and cmd/regionctl, read in layers:
  1. Built-in defaults
  2. Optional TOML file
  3. Environment (a .env file is loaded first when present)
  Command-line flags are applied last by the commands themselves.

ENVIRONMENT:
  REGION_ENGINE_PORT             HTTP port
  REGION_ENGINE_DB               SQLite path (":memory:" allowed)
  REGION_ENGINE_LOG_LEVEL        debug, info, warn, error
  REGION_ENGINE_DEFAULT_PROFILE  Profile used when a request names no region

EXAMPLE FILE:
  [server]
  port = 8080
  shutdown_timeout = "30s"
  allowed_origins = ["*"]
  audit_interval = "1h"

  [database]
  path = "regions.db"

  [log]
  level = "info"
  format = "text"

  [default_region]
  calendar = "gregorian"
  time_zone = "UTC"
  locale = "en_001"

  [[profiles]]
  name = "amsterdam"
  region = { time_zone = "Europe/Amsterdam", locale = "nl_NL" }
*/
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/warp/region-engine/factory"
)

const envPrefix = "REGION_ENGINE_"

// Config is the full application configuration.
type Config struct {
	Server         ServerConfig          `toml:"server"`
	Database       DatabaseConfig        `toml:"database"`
	Log            LogConfig             `toml:"log"`
	DefaultRegion  factory.RegionJSON    `toml:"default_region"`
	DefaultProfile string                `toml:"default_profile"`
	Profiles       []factory.ProfileJSON `toml:"profiles"`
}

type ServerConfig struct {
	Port            int      `toml:"port"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`

	// AuditInterval is how often stored profiles are revalidated; zero
	// disables the auditor.
	AuditInterval Duration `toml:"audit_interval"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// Duration wraps time.Duration for TOML strings like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: Duration{30 * time.Second},
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{15 * time.Second},
			AllowedOrigins:  []string{"*"},
			AuditInterval:   Duration{time.Hour},
		},
		Database: DatabaseConfig{Path: "regions.db"},
		Log:      LogConfig{Level: "info", Format: "text"},
		DefaultRegion: factory.RegionJSON{
			Calendar: "gregorian",
			TimeZone: "UTC",
			Locale:   "en_001",
		},
	}
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are ignored.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load reads defaults, the TOML file at path (skipped when empty) and the
// process environment.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		path = os.ExpandEnv(path)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults. Used by tests and tooling.
func Parse(text string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", envPrefix, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(envPrefix + "DB"); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(envPrefix + "DEFAULT_PROFILE"); ok {
		c.DefaultProfile = v
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.AuditInterval.Duration < 0 {
		return fmt.Errorf("server.audit_interval %s is negative", c.Server.AuditInterval)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q: expected text or json", c.Log.Format)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", s, err)
	}
	return level, nil
}

// Logger builds the application logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
