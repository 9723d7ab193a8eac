package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color modes for diagnostic output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents a tigersem.yaml file.
type Config struct {
	// Color selects colored terminal output: auto, always or never.
	Color string `yaml:"color,omitempty"`

	// Builtins registers the standard library functions and types before
	// checking. Defaults to true.
	Builtins *bool `yaml:"builtins,omitempty"`

	// ReadOnlyLoopVars rejects assignment to the variable of a for loop.
	ReadOnlyLoopVars bool `yaml:"readonly_loop_vars,omitempty"`

	// Store is the sqlite file that records every check run. Relative paths
	// are resolved against the directory of the config file. Empty disables
	// recording.
	Store string `yaml:"store,omitempty"`

	Serve ServeConfig `yaml:"serve,omitempty"`
}

// ServeConfig configures the checker service.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// UseBuiltins reports whether the standard library should be registered.
func (c *Config) UseBuiltins() bool {
	return c.Builtins == nil || *c.Builtins
}

// LoadConfig reads and parses a tigersem.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses tigersem.yaml content from bytes.
// The path argument is used for error messages and to resolve the store path.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if cfg.Store != "" && !filepath.IsAbs(cfg.Store) {
		cfg.Store = filepath.Join(filepath.Dir(path), cfg.Store)
	}
	return &cfg, nil
}

// FindConfig searches for tigersem.yaml starting from dir and walking up
// to parent directories. It returns an empty path and nil error when no file
// is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, "tigersem.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Resolve loads the file at path, or the nearest tigersem.yaml above the
// working directory when path is empty, or the defaults when neither exists.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	found, err := FindConfig(".")
	if err != nil {
		return nil, err
	}
	if found == "" {
		return Default(), nil
	}
	return LoadConfig(found)
}

func (c *Config) validate(path string) error {
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never (got %q)", path, c.Color)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultServeAddr
	}
}
