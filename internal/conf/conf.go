// Package conf loads and layers configuration for the grapheme tools.
//
// Precedence, lowest to highest: built-in defaults, the TOML config file,
// GGREP_* environment variables. Command-line flags are applied on top by
// the caller.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
)

var (
	// ErrUnknownFormat indicates an output format outside text/json/table.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrUnknownColor indicates a color mode outside auto/always/never.
	ErrUnknownColor = errors.New("unknown color mode")
	// ErrNegativeDebounce indicates a negative watch debounce.
	ErrNegativeDebounce = errors.New("watch debounce must not be negative")
)

// Config is the resolved configuration for the grapheme tools.
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	Search SearchConfig `mapstructure:"search"`
	Hooks  HooksConfig  `mapstructure:"hooks"`
	Watch  WatchConfig  `mapstructure:"watch"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	// Format selects the emitter: text, json, or table.
	Format string `mapstructure:"format"`
	// Color is auto, always, or never.
	Color string `mapstructure:"color"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `mapstructure:"level"`
}

// SearchConfig controls match handling.
type SearchConfig struct {
	// Validate re-checks every translated match against its source.
	Validate bool `mapstructure:"validate"`
}

// HooksConfig wires optional Lua hooks.
type HooksConfig struct {
	// Filter is a path to a Lua script that may drop or annotate matches.
	Filter string `mapstructure:"filter"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// DebounceMS collapses bursts of file events into one rescan.
	DebounceMS int `mapstructure:"debounce_ms"`
}

// defaults is the shared prototype; Default clones it because merging
// mutates its destination.
var defaults = map[string]any{
	"output": map[string]any{
		"format": "text",
		"color":  "auto",
	},
	"log": map[string]any{
		"level": "info",
	},
	"search": map[string]any{
		"validate": false,
	},
	"hooks": map[string]any{
		"filter": "",
	},
	"watch": map[string]any{
		"debounce_ms": 200,
	},
}

// Default returns a fresh configuration map holding the built-in defaults.
func Default() map[string]any {
	return Clone(defaults)
}

// DefaultPath returns the standard config file location, or an empty string
// when no user config directory is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "grapheme", "config.toml")
}

// Load builds a Config from defaults, the TOML file at path (DefaultPath
// when path is empty; a missing file is not an error), and GGREP_*
// environment variables.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	merged := Default()

	if path != "" {
		fileCfg, err := LoadTOML(path)
		if err != nil {
			return nil, err
		}
		merged = DeepMerge(merged, fileCfg)
	}

	envCfg, err := NewEnvLoader("GGREP_").Load()
	if err != nil {
		return nil, err
	}
	merged = DeepMerge(merged, envCfg)

	return Decode(merged)
}

// Decode converts a configuration map into a typed Config and validates it.
// Decoding is weakly typed so environment overrides like VALIDATE=1 land in
// bool fields.
func Decode(m map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("building config decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated fields and ranges.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "table":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Output.Format)
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownColor, c.Output.Color)
	}

	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDebounce, c.Watch.DebounceMS)
	}
	return nil
}
