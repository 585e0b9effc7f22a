package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
		wantMsg   string
	}{
		{"defaults", func(*Config) {}, "", ""},
		{"no exclusions", func(c *Config) { c.Exclude = []string{} }, "", ""},
		{"zero timeout", func(c *Config) { c.Timeout = "0" }, "", ""},
		{"blank go", func(c *Config) { c.Go = "  " }, "go", "must not be empty"},
		{"empty exclusion", func(c *Config) { c.Exclude = []string{"cmd", ""} }, "exclude[1]", "must not be empty"},
		{"bad regexp", func(c *Config) { c.ProviderPattern = "([" }, "provider_pattern", "invalid provider pattern"},
		{"two groups", func(c *Config) { c.ProviderPattern = `(a)/(b)` }, "provider_pattern", "exactly one capture group"},
		{"tag prefix with comma", func(c *Config) { c.TagPrefix = "a,b_" }, "tag_prefix", "spaces or commas"},
		{"bad timeout", func(c *Config) { c.Timeout = "ten" }, "timeout", "invalid duration"},
		{"negative timeout", func(c *Config) { c.Timeout = "-1s" }, "timeout", "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %v (%T), want *ValidationError", err, err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			if !strings.Contains(ve.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want to contain %q", ve.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()
	err := &ValidationError{Field: "timeout", Message: "must not be negative"}
	if got := err.Error(); got != "timeout: must not be negative" {
		t.Errorf("Error() = %q", got)
	}
}
