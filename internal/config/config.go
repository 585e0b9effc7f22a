package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/pkgtest/internal/provider"
	"github.com/AndreyAkinshin/pkgtest/internal/schema"
)

// Environment variables read by ApplyEnvironment and the CLI.
const (
	EnvConfig = "PKGTEST_CONFIG" // Path to the configuration file
	EnvGo     = "PKGTEST_GO"     // Go executable
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a configuration file without applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithDefaults reads a config file and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadAndValidate reads a config file, checks it against the schema, applies
// defaults, validates it and returns warnings for unknown keys.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := schema.ValidateConfig(data); err != nil {
		return nil, nil, err
	}

	cfg, warnings, err := LoadWithWarnings(data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, warnings, err
	}

	return cfg, warnings, nil
}

// parse decodes YAML data. An empty document yields an empty Config.
func parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// ApplyEnvironment overrides fields from environment variables.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvGo); v != "" {
		cfg.Go = v
	}
}

// TimeoutDuration returns the parsed per-package timeout, or zero for none.
// Call Validate first; an unparsable value yields zero.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Matcher compiles the provider pattern and tag prefix.
func (c *Config) Matcher() (*provider.Matcher, error) {
	pattern := c.ProviderPattern
	if pattern == "" {
		pattern = provider.DefaultPattern
	}
	prefix := c.TagPrefix
	if prefix == "" {
		prefix = provider.DefaultTagPrefix
	}
	return provider.NewMatcher(pattern, prefix)
}
