package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultEndpoint is the unread-notification summary path on the portal.
const DefaultEndpoint = "/accounts/notifications/unread-json/"

// DefaultPollInterval is the idle time between two poll cycles.
const DefaultPollInterval = 3000 * time.Millisecond

// ServerConfig describes the portal the client polls.
type ServerConfig struct {
	// BaseURL is the portal origin (e.g., https://portal.example.com).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Endpoint is the path of the unread summary endpoint.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// CookieName is the name of the portal's session cookie.
	CookieName string `mapstructure:"cookie_name" yaml:"cookie_name"`
}

// PollConfig controls the poll loop.
type PollConfig struct {
	// IntervalMS is the idle time between cycles, in milliseconds.
	IntervalMS int `mapstructure:"interval_ms" yaml:"interval_ms"`

	// FetchTimeoutSec bounds a single fetch. Zero means no timeout.
	FetchTimeoutSec int `mapstructure:"fetch_timeout_sec" yaml:"fetch_timeout_sec"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	ShowList bool `mapstructure:"show_list" yaml:"show_list"`
}

// HistoryConfig enables the optional local archive of rendered notifications.
type HistoryConfig struct {
	// Path is the SQLite file. Empty disables the archive.
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Poll    PollConfig    `mapstructure:"poll" yaml:"poll"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// PollInterval returns the configured interval, or DefaultPollInterval when
// the configured value is not positive.
func (c *AppConfig) PollInterval() time.Duration {
	if c.Poll.IntervalMS <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.Poll.IntervalMS) * time.Millisecond
}

// FetchTimeout returns the per-fetch timeout; zero disables it.
func (c *AppConfig) FetchTimeout() time.Duration {
	if c.Poll.FetchTimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.Poll.FetchTimeoutSec) * time.Second
}

// ConfigDir returns ~/.config/notifywatch, or the working directory when the
// home directory cannot be determined.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "notifywatch")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/notifywatch/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			BaseURL:    "http://localhost:8000",
			Endpoint:   DefaultEndpoint,
			CookieName: "sessionid",
		},
		Poll: PollConfig{
			IntervalMS: int(DefaultPollInterval / time.Millisecond),
		},
		Display: DisplayConfig{
			ShowList: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(ConfigDir(), "notifywatch.log"),
		},
	}
}

// newViper returns a Viper instance with every default registered and
// NOTIFYWATCH_* environment overrides enabled.
func newViper() *viper.Viper {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("NOTIFYWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.base_url", def.Server.BaseURL)
	v.SetDefault("server.endpoint", def.Server.Endpoint)
	v.SetDefault("server.cookie_name", def.Server.CookieName)
	v.SetDefault("poll.interval_ms", def.Poll.IntervalMS)
	v.SetDefault("poll.fetch_timeout_sec", def.Poll.FetchTimeoutSec)
	v.SetDefault("display.show_list", def.Display.ShowList)
	v.SetDefault("history.path", def.History.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.file", def.Log.File)

	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file yields the defaults, still subject to environment
// overrides.
func LoadConfig(path string) (*AppConfig, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if _, ok := err.(*os.PathError); !ok && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Server.Endpoint == "" {
		cfg.Server.Endpoint = DefaultEndpoint
	}
	if cfg.Server.CookieName == "" {
		cfg.Server.CookieName = "sessionid"
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("poll", cfg.Poll)
	v.Set("display", cfg.Display)
	v.Set("history", cfg.History)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
