package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadWithWarnings parses config data and returns any unknown key warnings.
func LoadWithWarnings(data []byte) (*Config, []string, error) {
	cfg, err := parse(data)
	if err != nil {
		return nil, nil, err
	}

	return cfg, detectUnknownFields(data), nil
}

// detectUnknownFields compares the raw top-level keys with known struct fields.
// Called after a successful parse, so a decode failure here is unexpected.
func detectUnknownFields(data []byte) []string {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	known := getYAMLFields(reflect.TypeOf(Config{}))

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []string
	for _, key := range keys {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at line %d (ignored)", key, raw[key].Line))
		}
	}
	return warnings
}

// getYAMLFields returns a map of known YAML field names for a struct type.
func getYAMLFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
