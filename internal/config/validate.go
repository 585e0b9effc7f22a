package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/AndreyAkinshin/pkgtest/internal/provider"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration with defaults applied.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Go) == "" {
		return &ValidationError{Field: "go", Message: "must not be empty"}
	}

	for i, frag := range cfg.Exclude {
		if frag == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("exclude[%d]", i),
				Message: "must not be empty (an empty fragment would exclude every package)",
			}
		}
	}

	if _, err := provider.NewMatcher(cfg.ProviderPattern, cfg.TagPrefix); err != nil {
		return &ValidationError{Field: "provider_pattern", Message: err.Error()}
	}

	if strings.ContainsAny(cfg.TagPrefix, " ,\t") {
		return &ValidationError{Field: "tag_prefix", Message: "must not contain spaces or commas"}
	}

	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return &ValidationError{Field: "timeout", Message: fmt.Sprintf("invalid duration %q", cfg.Timeout)}
		}
		if d < 0 {
			return &ValidationError{Field: "timeout", Message: "must not be negative"}
		}
	}

	return nil
}
