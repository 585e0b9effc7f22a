package config

import (
	"github.com/AndreyAkinshin/pkgtest/internal/provider"
	"github.com/AndreyAkinshin/pkgtest/internal/toolchain"
)

// DefaultExclude lists the path fragments whose packages are not tested.
var DefaultExclude = []string{"cmd", "cli", "migration", "vendor"}

// applyDefaults fills in default values for unset configuration fields.
// Dir stays empty so the discovered workspace root is kept.
func applyDefaults(cfg *Config) {
	if cfg.Go == "" {
		cfg.Go = toolchain.DefaultBinary
	}
	if cfg.Pattern == "" {
		cfg.Pattern = toolchain.DefaultPattern
	}
	if cfg.Exclude == nil {
		cfg.Exclude = append([]string(nil), DefaultExclude...)
	}
	if cfg.ProviderPattern == "" {
		cfg.ProviderPattern = provider.DefaultPattern
	}
	if cfg.TagPrefix == "" {
		cfg.TagPrefix = provider.DefaultTagPrefix
	}
	if cfg.TestFlags == nil {
		cfg.TestFlags = append([]string(nil), toolchain.DefaultTestFlags...)
	}
}
