package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "listen: \":9000\"\ndata:\n  url: https://example.com/store.json\nbasic_auth:\n  username: me\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "https://example.com/store.json", cfg.Data.URL)
	assert.Equal(t, "calendar.events", cfg.Data.EventsPath)
	assert.Equal(t, "*/15 * * * *", cfg.RefreshCron)
	assert.Nil(t, cfg.BasicAuth, "half-filled credentials disable auth")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.CalendarName = "Work"
	cfg.BasicAuth = &BasicAuthConfig{Username: "u", Password: "p"}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WORKDESK_LISTEN", ":7070")
	t.Setenv("WORKDESK_DATA_URL", "http://store.local/data.json")
	t.Setenv("WORKDESK_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, "http://store.local/data.json", cfg.Data.URL)
	assert.Empty(t, cfg.Data.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}
