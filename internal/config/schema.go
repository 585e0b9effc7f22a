// Package config provides loading and validation of .pkgtest.yaml.
package config

// Config represents the complete .pkgtest.yaml configuration.
//
// Every field is optional. Nil slices take their defaults; an explicit empty
// list (exclude: []) disables exclusion.
type Config struct {
	Schema          string            `yaml:"$schema,omitempty"`
	Go              string            `yaml:"go,omitempty"`
	Dir             string            `yaml:"dir,omitempty"`
	Pattern         string            `yaml:"pattern,omitempty"`
	Exclude         []string          `yaml:"exclude"`
	ProviderPattern string            `yaml:"provider_pattern,omitempty"`
	TagPrefix       string            `yaml:"tag_prefix,omitempty"`
	TestFlags       []string          `yaml:"test_flags"`
	Env             map[string]string `yaml:"env,omitempty"`
	KeepGoing       bool              `yaml:"keep_going,omitempty"`
	Timeout         string            `yaml:"timeout,omitempty"`
}
