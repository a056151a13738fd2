package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognised by Load.
const (
	EnvInput     = "PATROL_INPUT"
	EnvWorkers   = "PATROL_WORKERS"
	EnvStepLimit = "PATROL_STEP_LIMIT"
	EnvLogLevel  = "PATROL_LOG_LEVEL"
	EnvLogFormat = "PATROL_LOG_FORMAT"
)

// Loader assembles a Config from its sources.
type Loader struct {
	// EnvFiles are .env files read for PATROL_* values. Missing files are
	// skipped. Process environment variables take precedence over them.
	EnvFiles []string

	// LookupEnv reads the process environment; replaceable in tests.
	LookupEnv func(key string) (string, bool)
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithEnvFiles replaces the list of .env files.
func WithEnvFiles(files ...string) LoaderOption {
	return func(l *Loader) {
		l.EnvFiles = files
	}
}

// WithLookupEnv replaces the environment lookup function.
func WithLookupEnv(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		if fn != nil {
			l.LookupEnv = fn
		}
	}
}

// NewLoader creates a loader reading ".env" and the process environment.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		EnvFiles:  []string{".env"},
		LookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load is NewLoader().Load(path).
func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

// Load builds a Config: defaults, then the YAML file at path (skipped when
// path is empty), then .env files, then the environment. The result is
// validated.
func (l *Loader) Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := l.readEnvFiles()
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := l.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeYAML decodes data over cfg, rejecting unknown keys.
// An empty document leaves cfg unchanged.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

func (l *Loader) readEnvFiles() (map[string]string, error) {
	out := make(map[string]string)
	for _, f := range l.EnvFiles {
		vals, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, f, err)
		}
		for k, v := range vals {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
		}
	}
	return out, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvInput); ok {
		cfg.Input = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.Log.Format = v
	}
	for key, dst := range map[string]*int{EnvWorkers: &cfg.Workers, EnvStepLimit: &cfg.StepLimit} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
		}
		*dst = n
	}
	return nil
}
