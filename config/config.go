// Package config loads solver settings from defaults, an optional YAML file,
// a .env file and the process environment, in increasing priority.
// Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/patrol/logging"
)

// Sentinel errors for configuration loading.
var (
	// ErrConfigNotFound indicates the named config file does not exist.
	ErrConfigNotFound = errors.New("config: file not found")
	// ErrInvalidFormat indicates the config file could not be decoded.
	ErrInvalidFormat = errors.New("config: invalid format")
	// ErrInvalidConfig indicates a setting outside its allowed range.
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config holds every tunable of a solver invocation.
type Config struct {
	// Input is the puzzle input file. Empty means the CLI must be given one.
	Input string `yaml:"input"`

	// Workers bounds the obstruction-search pool. 0 selects GOMAXPROCS.
	Workers int `yaml:"workers"`

	// StepLimit caps simulation steps per run. 0 selects W×H×4.
	StepLimit int `yaml:"step_limit"`

	// Log configures the process-wide logger.
	Log LogConfig `yaml:"log"`
}

// LogConfig mirrors logging.Config in file form.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	d := logging.DefaultConfig()
	return Config{
		Log: LogConfig{Level: d.Level, Format: d.Format},
	}
}

// Validate reports the first out-of-range setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative (%d)", ErrInvalidConfig, c.Workers)
	}
	if c.StepLimit < 0 {
		return fmt.Errorf("%w: step_limit must not be negative (%d)", ErrInvalidConfig, c.StepLimit)
	}
	if !slices.Contains(logging.Levels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("%w: log level %q (want one of %s)", ErrInvalidConfig, c.Log.Level, strings.Join(logging.Levels, ", "))
	}
	if !slices.Contains(logging.Formats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("%w: log format %q (want one of %s)", ErrInvalidConfig, c.Log.Format, strings.Join(logging.Formats, ", "))
	}
	return nil
}

// Logging converts the file settings into a logging.Config.
func (c Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = strings.ToLower(c.Log.Level)
	lc.Format = strings.ToLower(c.Log.Format)
	return lc
}
