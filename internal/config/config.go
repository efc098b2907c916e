// Package config loads the stitchplan configuration: default pattern
// parameters, work limits, the analytics cost model, machine file settings and
// logging.
//
// Settings come from three layers, later ones winning: the built-in defaults,
// a YAML file, and STITCHPLAN_* environment variables (which may themselves
// come from a .env file, see LoadEnv).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"honnef.co/go/stitch"
	"honnef.co/go/stitch/internal/logging"
)

// DefaultFile is looked for in the working directory when no configuration
// file is named.
const DefaultFile = "stitchplan.yaml"

// Environment variables consulted by Load.
const (
	EnvConfig    = "STITCHPLAN_CONFIG"
	EnvLogLevel  = "STITCHPLAN_LOG_LEVEL"
	EnvLogFormat = "STITCHPLAN_LOG_FORMAT"
	EnvFormat    = "STITCHPLAN_FORMAT"
)

const defaultConfigYAML = `# stitchplan configuration
version: 1

# Pattern parameters used when a request doesn't set them.
defaults:
  mm_per_px: 0.26
  stitch_len_mm: 2.5
  density: 1.0
  width_mm: 2.0
  passes: 1
  strategy: outline
  optimize: false

# Upper bounds on the work a single request may cause.
limits:
  max_samples: 1000000
  max_stitches: 2000000
  max_layers: 10000

# Prices and machine speed for "stitchplan stats".
cost:
  mm_per_px: 0.26
  stitches_per_minute: 800
  color_change_time: 30s
  base: 2.0
  per_1000_stitches: 0.5
  per_color_change: 0.25
  per_meter_thread: 0.02

machine:
  format: dst
  dst_label: stitchplan

log:
  level: info
  format: pretty
`

// MachineConfig selects the machine file written by default.
type MachineConfig struct {
	Format   string `yaml:"format"`
	DSTLabel string `yaml:"dst_label"`
}

// LogConfig configures the command line tool's logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config models stitchplan.yaml.
type Config struct {
	Version  int              `yaml:"version"`
	Defaults stitch.Params    `yaml:"defaults"`
	Limits   stitch.Limits    `yaml:"limits"`
	Cost     stitch.CostModel `yaml:"cost"`
	Machine  MachineConfig    `yaml:"machine"`
	Log      LogConfig        `yaml:"log"`

	// Path is the file the configuration was read from. It is empty if only
	// the defaults and the environment were used.
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var c Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &c); err != nil {
		panic(fmt.Sprintf("config: built-in defaults: %s", err))
	}
	return &c
}

// Load reads the configuration file at path on top of the defaults and then
// applies environment overrides. An empty path falls back to $STITCHPLAN_CONFIG
// and then to DefaultFile; only a file that was named explicitly has to exist.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	c := Default()
	if path == "" {
		path, _ = lookup(EnvConfig)
	}
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		c.Path = path
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	c.applyEnv(lookup)
	c.normalize()
	if err := c.Validate(); err != nil {
		if c.Path != "" {
			return nil, fmt.Errorf("config: %s: %w", c.Path, err)
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// LoadEnv loads environment variables from the named .env files, without
// overriding variables that are already set. With no names it loads .env from
// the working directory, which need not exist.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err == nil || (len(files) == 0 && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("config: load env: %w", err)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		c.Machine.Format = v
	}
}

func (c *Config) normalize() {
	c.Machine.Format = strings.ToLower(strings.TrimSpace(c.Machine.Format))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Log.Level = strings.TrimSpace(c.Log.Level)
}

// Validate checks the configuration. Pattern parameter errors are of kind
// [stitch.ErrInvalidParameter].
func (c *Config) Validate() error {
	if c.Version < 1 {
		return fmt.Errorf("version must be >= 1, got %d", c.Version)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if c.Cost.MMPerPx < 0 || c.Cost.StitchesPerMinute < 0 || c.Cost.ColorChangeTime < 0 {
		return fmt.Errorf("cost: scale, speed and colour change time must not be negative")
	}
	if c.Machine.Format == "" {
		return fmt.Errorf("machine.format is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON, logging.FormatPretty:
	default:
		return fmt.Errorf("log.format must be text, json or pretty, got %q", c.Log.Format)
	}
	return nil
}

// Params returns the default pattern parameters, including the limits.
func (c *Config) Params() stitch.Params {
	p := c.Defaults
	p.Limits = c.Limits
	return p
}
