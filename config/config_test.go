package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadWithEnv("", env(nil))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout.Duration)
	assert.Equal(t, time.Hour, cfg.Server.AuditInterval.Duration)
	assert.Equal(t, "regions.db", cfg.Database.Path)
	assert.Equal(t, "UTC", cfg.DefaultRegion.TimeZone)
	assert.Empty(t, cfg.Profiles)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	// GIVEN: A config file and an environment override for the port
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9000
shutdown_timeout = "5s"
audit_interval = "0s"

[database]
path = "file.db"

[log]
level = "debug"
format = "json"

[[profiles]]
name = "amsterdam"
region = { time_zone = "Europe/Amsterdam", locale = "nl_NL" }

[[profiles]]
name = "jerusalem"
[profiles.region]
calendar = "hebrew"
time_zone = "Asia/Jerusalem"
locale = "he_IL"
`), 0o600))

	// WHEN: Loading with REGION_ENGINE_PORT set
	cfg, err := LoadWithEnv(path, env(map[string]string{
		"REGION_ENGINE_PORT":            "9100",
		"REGION_ENGINE_DEFAULT_PROFILE": "amsterdam",
	}))

	// THEN: The environment wins over the file, the file over defaults
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout.Duration)
	assert.Zero(t, cfg.Server.AuditInterval.Duration)
	assert.Equal(t, "file.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "amsterdam", cfg.DefaultProfile)
	require.Len(t, cfg.Profiles, 2)
	assert.Equal(t, "Europe/Amsterdam", cfg.Profiles[0].Region.TimeZone)
	assert.Equal(t, "hebrew", cfg.Profiles[1].Region.Calendar)
}

func TestLoad_Errors(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.toml"), env(nil))
	assert.Error(t, err)

	_, err = LoadWithEnv("", env(map[string]string{"REGION_ENGINE_PORT": "eighty"}))
	assert.Error(t, err)

	_, err = LoadWithEnv("", env(map[string]string{"REGION_ENGINE_LOG_LEVEL": "chatty"}))
	assert.Error(t, err)

	_, err = Parse(`[log]
format = "xml"`)
	assert.Error(t, err)

	_, err = Parse(`[server]
audit_interval = "-1m"`)
	assert.Error(t, err)
}

func TestLogger_RespectsLevel(t *testing.T) {
	cfg, err := Parse(`[log]
level = "warn"`)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=v")
}
