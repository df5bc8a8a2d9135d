// Package config loads run configuration from defaults, an optional
// volleycal.yaml file, and environment overrides (a .env file is honored via
// godotenv). Values like the calendar directory and timezone are carried
// explicitly into collaborators instead of being read ambiently.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"volleycal/internal/retry"
	"volleycal/internal/volley"
)

// DefaultFile is the config file looked up in the working directory when no
// explicit path is given.
const DefaultFile = "volleycal.yaml"

// Duration wraps time.Duration so yaml configs can say "500ms" or "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Retry bounds the HTTP retry behavior.
type Retry struct {
	MaxAttempts  uint64   `yaml:"max_attempts"`
	InitialDelay Duration `yaml:"initial_delay"`
	MaxDelay     Duration `yaml:"max_delay"`
}

// Config holds everything a run needs that is not a command-line flag.
type Config struct {
	BaseURL     string   `yaml:"base_url"`
	CalendarDir string   `yaml:"calendar_dir"`
	Timezone    string   `yaml:"timezone"`
	FetchPause  Duration `yaml:"fetch_pause"`
	Retry       Retry    `yaml:"retry"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:     volley.DefaultBaseURL,
		CalendarDir: "calendars",
		Timezone:    "", // system local zone
		FetchPause:  Duration(500 * time.Millisecond),
		Retry: Retry{
			MaxAttempts:  4,
			InitialDelay: Duration(time.Second),
			MaxDelay:     Duration(30 * time.Second),
		},
	}
}

// Load builds the configuration. Precedence, lowest to highest: defaults,
// yaml file, environment. A missing default file is fine; a missing explicit
// path is an error.
func Load(path string) (Config, error) {
	// .env values become plain environment variables; absence is fine.
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, defaults apply.
	default:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if v := os.Getenv("VOLLEYCAL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("VOLLEYCAL_CALENDAR_DIR"); v != "" {
		cfg.CalendarDir = v
	}
	if v := os.Getenv("VOLLEYCAL_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}

	return cfg, nil
}

// Location resolves the configured timezone, defaulting to the system's
// local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RetryConfig converts the configured retry bounds for the HTTP client.
func (c Config) RetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:  c.Retry.MaxAttempts,
		InitialDelay: time.Duration(c.Retry.InitialDelay),
		MaxDelay:     time.Duration(c.Retry.MaxDelay),
	}
}
