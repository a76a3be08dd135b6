// Package config provides persistent configuration for the prayer-engine CLI
// and environment configuration for the HTTP server.
//
// CLI configuration is stored as JSON at ~/.config/prayer-engine/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cerrors "cloudeng.io/errors"

	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

const (
	configDirName  = "prayer-engine"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude", "elevation",
	"method", "asr_method", "high_lat",
	"timezone",
	"time_format",
	"adjustments",
	"prayers",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	Latitude    *float64 `json:"latitude,omitempty"` // pointer so the equator is distinguishable from "not set"
	Longitude   *float64 `json:"longitude,omitempty"`
	Elevation   float64  `json:"elevation,omitempty"` // meters
	Method      string   `json:"method,omitempty"`
	AsrMethod   string   `json:"asr_method,omitempty"`  // "standard" or "hanafi"
	HighLat     string   `json:"high_lat,omitempty"`    // middle_of_night, seventh_of_night, twilight_angle
	Timezone    *float64 `json:"timezone,omitempty"`    // hours east of UTC, e.g. 5.5
	TimeFormat  string   `json:"time_format,omitempty"` // "12h", "24h" or a PHP date format
	Adjustments string   `json:"adjustments,omitempty"` // "fajr=2,isha=-3"
	Prayers     string   `json:"prayers,omitempty"`     // comma-separated list
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Method:     prayer.DefaultMethod,
		AsrMethod:  prayer.Standard.String(),
		HighLat:    prayer.TwilightAngle.String(),
		TimeFormat: "24h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path and validates it.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if _, err := prayer.NewCoordinates(v, 0, 0); err != nil {
			return err
		}
		c.Latitude = &v
	case "longitude":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if _, err := prayer.NewCoordinates(0, v, 0); err != nil {
			return err
		}
		c.Longitude = &v
	case "elevation":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		c.Elevation = v
	case "method":
		if _, err := prayer.LookupMethod(value); err != nil {
			return err
		}
		c.Method = value
	case "asr_method":
		if _, err := prayer.ParseJurisprudence(value); err != nil {
			return err
		}
		c.AsrMethod = value
	case "high_lat":
		if _, err := prayer.ParseHighLatitudeRule(value); err != nil {
			return err
		}
		c.HighLat = value
	case "timezone":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if err := checkTimezone(v); err != nil {
			return err
		}
		c.Timezone = &v
	case "time_format":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("invalid time_format: must not be empty")
		}
		c.TimeFormat = value
	case "adjustments":
		if _, err := prayer.ParseAdjustmentList(value); err != nil {
			return err
		}
		c.Adjustments = value
	case "prayers":
		if _, err := ParsePrayers(value); err != nil {
			return err
		}
		c.Prayers = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		return formatFloatPtr(c.Latitude), nil
	case "longitude":
		return formatFloatPtr(c.Longitude), nil
	case "elevation":
		if c.Elevation == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Elevation, 'f', -1, 64), nil
	case "method":
		return c.Method, nil
	case "asr_method":
		return c.AsrMethod, nil
	case "high_lat":
		return c.HighLat, nil
	case "timezone":
		return formatFloatPtr(c.Timezone), nil
	case "time_format":
		return c.TimeFormat, nil
	case "adjustments":
		return c.Adjustments, nil
	case "prayers":
		return c.Prayers, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Validate checks every field that is set and reports all problems at once.
func (c *Config) Validate() error {
	var errs cerrors.M
	if c.Latitude != nil || c.Longitude != nil {
		var lat, lng float64
		if c.Latitude != nil {
			lat = *c.Latitude
		}
		if c.Longitude != nil {
			lng = *c.Longitude
		}
		_, err := prayer.NewCoordinates(lat, lng, c.Elevation)
		errs.Append(err)
	}
	if c.Method != "" {
		_, err := prayer.LookupMethod(c.Method)
		errs.Append(err)
	}
	if c.AsrMethod != "" {
		_, err := prayer.ParseJurisprudence(c.AsrMethod)
		errs.Append(err)
	}
	if c.HighLat != "" {
		_, err := prayer.ParseHighLatitudeRule(c.HighLat)
		errs.Append(err)
	}
	if c.Timezone != nil {
		errs.Append(checkTimezone(*c.Timezone))
	}
	if c.Adjustments != "" {
		_, err := prayer.ParseAdjustmentList(c.Adjustments)
		errs.Append(err)
	}
	if c.Prayers != "" {
		_, err := ParsePrayers(c.Prayers)
		errs.Append(err)
	}
	return errs.Err()
}

// HasLocation reports whether both coordinates are configured.
func (c *Config) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// ParsePrayers parses a comma-separated list of prayer names.
func ParsePrayers(value string) ([]prayer.Name, error) {
	var names []prayer.Name
	for _, raw := range strings.Split(value, ",") {
		n, err := prayer.ParseName(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid prayer name %q in prayers list", strings.TrimSpace(raw))
		}
		names = append(names, n)
	}
	return names, nil
}

func checkTimezone(hours float64) error {
	if hours < -14 || hours > 14 {
		return fmt.Errorf("%w: %v must be between -14 and 14 hours", prayer.ErrInvalidTimezone, hours)
	}
	return nil
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	return v, nil
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
