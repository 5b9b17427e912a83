// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/measure"
)

// Config represents settings loaded from a JSON or TOML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Layout
	Paper   string `json:"paper,omitempty" toml:"paper"`     // Page geometry profile (a4, letter)
	Compact bool   `json:"compact,omitempty" toml:"compact"` // Render with compact spacing

	// Measurement
	Measurer       string `json:"measurer,omitempty" toml:"measurer"`               // estimate or browser
	BrowserTimeout string `json:"browser_timeout,omitempty" toml:"browser_timeout"` // Go duration, e.g. "30s"

	// Fitting
	TargetPages   int `json:"target_pages,omitempty" toml:"target_pages"`
	MaxIterations int `json:"max_iterations,omitempty" toml:"max_iterations"`

	// Navigator zoom bounds
	ZoomMin  float64 `json:"zoom_min,omitempty" toml:"zoom_min"`
	ZoomMax  float64 `json:"zoom_max,omitempty" toml:"zoom_max"`
	ZoomStep float64 `json:"zoom_step,omitempty" toml:"zoom_step"`

	// Server
	Port int `json:"port,omitempty" toml:"port"`

	// Behavior
	Verbose  bool   `json:"verbose,omitempty" toml:"verbose"`     // Print detailed debug information
	LogLevel string `json:"log_level,omitempty" toml:"log_level"` // debug, info, warn, error
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Paper:          geometry.A4.Name,
		Measurer:       measure.ProviderEstimate,
		BrowserTimeout: "30s",
		TargetPages:    1,
		MaxIterations:  3,
		ZoomMin:        geometry.PreviewZoom.Min,
		ZoomMax:        geometry.PreviewZoom.Max,
		ZoomStep:       geometry.PreviewZoom.Step,
		Port:           8080,
		LogLevel:       "info",
	}
}

// LoadConfig loads configuration from a file. Files ending in .toml are
// decoded as TOML; everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
		return &cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values. Zero values are
// accepted since MergeWithDefaults fills them.
func (c *Config) Validate() error {
	if c.Paper != "" {
		if _, err := geometry.Lookup(c.Paper); err != nil {
			return fmt.Errorf("config error: 'paper': %w", err)
		}
	}

	switch strings.ToLower(c.Measurer) {
	case "", measure.ProviderEstimate, measure.ProviderBrowser:
	default:
		return fmt.Errorf("config error: 'measurer' must be %q or %q, got %q", measure.ProviderEstimate, measure.ProviderBrowser, c.Measurer)
	}

	if c.BrowserTimeout != "" {
		d, err := time.ParseDuration(c.BrowserTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'browser_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'browser_timeout' must be positive")
		}
	}

	// Validate numeric ranges
	if c.TargetPages < 0 {
		return fmt.Errorf("config error: 'target_pages' must be non-negative")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("config error: 'max_iterations' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ZoomMin < 0 || c.ZoomMax < 0 || c.ZoomStep < 0 {
		return fmt.Errorf("config error: zoom values must be non-negative")
	}
	if c.ZoomMin > 0 && c.ZoomMax > 0 && c.ZoomMin > c.ZoomMax {
		return fmt.Errorf("config error: 'zoom_min' must not exceed 'zoom_max'")
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Paper == "" {
		result.Paper = defaults.Paper
	}
	if result.Measurer == "" {
		result.Measurer = defaults.Measurer
	}
	if result.BrowserTimeout == "" {
		result.BrowserTimeout = defaults.BrowserTimeout
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Numeric fields: use default if zero
	if result.TargetPages == 0 {
		result.TargetPages = defaults.TargetPages
	}
	if result.MaxIterations == 0 {
		result.MaxIterations = defaults.MaxIterations
	}
	if result.ZoomMin == 0 {
		result.ZoomMin = defaults.ZoomMin
	}
	if result.ZoomMax == 0 {
		result.ZoomMax = defaults.ZoomMax
	}
	if result.ZoomStep == 0 {
		result.ZoomStep = defaults.ZoomStep
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Profile resolves the configured paper size.
func (c *Config) Profile() (geometry.Profile, error) {
	return geometry.Lookup(c.Paper)
}

// Timeout parses BrowserTimeout; empty means zero.
func (c *Config) Timeout() (time.Duration, error) {
	if c.BrowserTimeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.BrowserTimeout)
}

// Zoom returns the configured zoom bounds.
func (c *Config) Zoom() (geometry.ZoomBounds, error) {
	b := geometry.ZoomBounds{Min: c.ZoomMin, Max: c.ZoomMax, Step: c.ZoomStep}
	if err := b.Validate(); err != nil {
		return geometry.ZoomBounds{}, fmt.Errorf("config error: %w", err)
	}
	return b, nil
}
