package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/stitch"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(data)), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 1, c.Version)
	assert.Equal(t, stitch.DefaultParams(), c.Defaults)
	assert.Equal(t, stitch.DefaultLimits, c.Limits)
	assert.Equal(t, stitch.DefaultCostModel, c.Cost)
	assert.Equal(t, MachineConfig{Format: "dst", DSTLabel: "stitchplan"}, c.Machine)
	assert.Equal(t, LogConfig{Level: "info", Format: "pretty"}, c.Log)
	assert.NoError(t, c.Validate())
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	c, err := load("", env(nil))
	require.NoError(t, err)
	assert.Empty(t, c.Path)
	assert.Equal(t, Default().Params(), c.Params())
}

func TestLoadParsesYAML(t *testing.T) {
	path := writeFile(t, "stitchplan.yaml", `
version: 1
defaults:
  strategy: satin
  width_mm: 4
  passes: 3
  optimize: true
limits:
  max_layers: 50
cost:
  color_change_time: 1m
machine:
  format: RAW
log:
  format: json
`)
	c, err := load(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, path, c.Path)

	p := c.Params()
	assert.Equal(t, stitch.Satin, p.Strategy)
	assert.Equal(t, 4.0, p.WidthMM)
	assert.Equal(t, 3, p.Passes)
	assert.True(t, p.Optimize)
	// Unset fields keep their defaults.
	assert.Equal(t, 0.26, p.MMPerPx)
	assert.Equal(t, 2.5, p.StitchLenMM)
	assert.Equal(t, stitch.Limits{MaxSamples: 1_000_000, MaxStitches: 2_000_000, MaxLayers: 50}, p.Limits)

	assert.Equal(t, time.Minute, c.Cost.ColorChangeTime)
	assert.Equal(t, 800.0, c.Cost.StitchesPerMinute)
	assert.Equal(t, "raw", c.Machine.Format)
	assert.Equal(t, "stitchplan", c.Machine.DSTLabel)
	assert.Equal(t, LogConfig{Level: "info", Format: "json"}, c.Log)
}

func TestLoadEnvironment(t *testing.T) {
	path := writeFile(t, "custom.yaml", `
log:
  level: warn
`)
	c, err := load("", env(map[string]string{
		EnvConfig:    path,
		EnvLogLevel:  "debug",
		EnvLogFormat: "TEXT",
		EnvFormat:    "raw",
	}))
	require.NoError(t, err)
	assert.Equal(t, path, c.Path)
	assert.Equal(t, LogConfig{Level: "debug", Format: "text"}, c.Log)
	assert.Equal(t, "raw", c.Machine.Format)

	// An explicit path beats the environment.
	other := writeFile(t, "other.yaml", `
log:
  level: error
`)
	c, err = load(other, env(map[string]string{EnvConfig: path}))
	require.NoError(t, err)
	assert.Equal(t, "error", c.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := load(missing, env(nil))
	assert.ErrorContains(t, err, "config: read")

	_, err = load("", env(map[string]string{EnvConfig: missing}))
	assert.ErrorContains(t, err, "config: read")

	for name, tc := range map[string]struct {
		yaml string
		want string
	}{
		"syntax":   {"defaults: [", "config: parse"},
		"strategy": {"defaults:\n  strategy: spiral", "unknown strategy"},
		"density":  {"defaults:\n  density: 0", "density"},
		"limits":   {"limits:\n  max_stitches: -1", "limits"},
		"version":  {"version: 0", "version"},
		"cost":     {"cost:\n  stitches_per_minute: -5", "cost"},
		"format":   {"machine:\n  format: ''", "machine.format"},
		"level":    {"log:\n  level: loud", "log.level"},
		"log":      {"log:\n  format: xml", "log.format"},
	} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "bad.yaml", tc.yaml)
			_, err := load(path, env(nil))
			assert.ErrorContains(t, err, tc.want)
		})
	}

	path := writeFile(t, "bad.yaml", "defaults:\n  passes: 0")
	_, err = load(path, env(nil))
	assert.ErrorIs(t, err, stitch.ErrInvalidParameter)
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", `
STITCHPLAN_TEST_LEVEL=debug
STITCHPLAN_TEST_KEPT=new
`)
	t.Setenv("STITCHPLAN_TEST_KEPT", "old")
	t.Setenv("STITCHPLAN_TEST_LEVEL", "")
	os.Unsetenv("STITCHPLAN_TEST_LEVEL")

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "debug", os.Getenv("STITCHPLAN_TEST_LEVEL"))
	assert.Equal(t, "old", os.Getenv("STITCHPLAN_TEST_KEPT"))

	assert.Error(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}
