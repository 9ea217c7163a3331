package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	appLog "workdesk/internal/log"
)

const (
	defaultListen     = "127.0.0.1:8080"
	defaultTimezone   = "Asia/Seoul"
	defaultRefresh    = "*/15 * * * *"
	defaultEventsPath = "calendar.events"
	defaultCacheDir   = "./cache/store"
	defaultLogLevel   = "info"
	defaultCalName    = "일정 달력"
)

// DataConfig describes where the JSON store is read from. Exactly one of
// URL or Path is expected; URL wins when both are set.
type DataConfig struct {
	// URL is an HTTP(S) endpoint serving the store document.
	URL string `yaml:"url" json:"url"`
	// Path is a local file holding the store document.
	Path string `yaml:"path" json:"path"`
	// EventsPath is the dotted path of the event list inside the document.
	EventsPath string `yaml:"events_path" json:"events_path"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the web UI/API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone only decides what "today" is; all dates are naive calendar dates.
	Timezone string `yaml:"timezone" json:"timezone"`

	// RefreshCron is the cron schedule used to reload a URL-backed store.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	Data DataConfig `yaml:"data" json:"data"`

	// CacheDir holds the ETag/body cache of the fetched store.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	LogLevel string `yaml:"log_level" json:"log_level"`

	// CalendarName is the X-WR-CALNAME of the exported ICS feed.
	CalendarName string `yaml:"calendar_name" json:"calendar_name"`

	// BasicAuth, if set, protects every endpoint except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       defaultListen,
		Timezone:     defaultTimezone,
		RefreshCron:  defaultRefresh,
		Data:         DataConfig{Path: "./data/store.json", EventsPath: defaultEventsPath},
		CacheDir:     defaultCacheDir,
		LogLevel:     defaultLogLevel,
		CalendarName: defaultCalName,
	}
}

// Normalize fills in missing values so that partially-filled configs behave.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	if c.RefreshCron == "" {
		c.RefreshCron = defaultRefresh
	}
	if c.Data.EventsPath == "" {
		c.Data.EventsPath = defaultEventsPath
	}
	if c.CacheDir == "" {
		c.CacheDir = defaultCacheDir
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.CalendarName == "" {
		c.CalendarName = defaultCalName
	}
	// 빈 자격 증명은 인증 비활성화로 취급한다.
	if c.BasicAuth != nil && (c.BasicAuth.Username == "" || c.BasicAuth.Password == "") {
		c.BasicAuth = nil
	}
}

// Location resolves Timezone, falling back to time.Local when it is empty
// or unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", c.Timezone)
		return time.Local
	}
	return loc
}

// ApplyEnv overrides fields from WORKDESK_* environment variables. Setting a
// data URL clears the path and vice versa.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("WORKDESK_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("WORKDESK_DATA_URL"); v != "" {
		c.Data.URL = v
		c.Data.Path = ""
	}
	if v := os.Getenv("WORKDESK_DATA_PATH"); v != "" {
		c.Data.Path = v
		c.Data.URL = ""
	}
	if v := os.Getenv("WORKDESK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms and returned.
//   - Otherwise the YAML is unmarshaled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename, 0600).
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".workdesk-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
