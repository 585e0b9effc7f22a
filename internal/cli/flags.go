package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AndreyAkinshin/pkgtest/internal/config"
	"github.com/AndreyAkinshin/pkgtest/internal/errors"
)

// globalFlags holds the persistent flags shared by all commands.
type globalFlags struct {
	configPath      string
	dir             string
	exclude         []string
	tagPrefix       string
	providerPattern string
	keepGoing       bool
	dryRun          bool
	timeout         time.Duration
	quiet           bool
	verbose         bool
	noColor         bool
}

func addGlobalFlags(fs *pflag.FlagSet, f *globalFlags) {
	fs.StringVar(&f.configPath, "config", "", "configuration file (default: .pkgtest.yaml in the workspace root, or $"+config.EnvConfig+")")
	fs.StringVarP(&f.dir, "dir", "C", "", "directory to start workspace discovery from (default: current directory)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "package path fragments to skip; replaces the configured set (repeatable)")
	fs.StringVar(&f.tagPrefix, "tag-prefix", "", "prefix of the build tag for provider packages (default \"testing_\")")
	fs.StringVar(&f.providerPattern, "provider-pattern", "", "regular expression with one capture group selecting provider packages")
	fs.BoolVar(&f.keepGoing, "keep-going", false, "test every package even after a failure")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print the go test commands without running them")
	fs.DurationVar(&f.timeout, "timeout", 0, "per-package time limit for go test (0 means none)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "print failures and errors only")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log diagnostic detail to stderr")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output (also honored: $NO_COLOR)")
}

// resolvedConfigPath returns the configuration file named by flag or environment.
func (f *globalFlags) resolvedConfigPath() string {
	if f.configPath != "" {
		return f.configPath
	}
	return os.Getenv(config.EnvConfig)
}

// applyTo overrides cfg with the flags the user set explicitly.
func (f *globalFlags) applyTo(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("exclude") {
		cfg.Exclude = append([]string{}, f.exclude...)
	}
	if fs.Changed("tag-prefix") {
		cfg.TagPrefix = f.tagPrefix
	}
	if fs.Changed("provider-pattern") {
		cfg.ProviderPattern = f.providerPattern
	}
	if fs.Changed("keep-going") {
		cfg.KeepGoing = f.keepGoing
	}
	if fs.Changed("timeout") {
		cfg.Timeout = f.timeout.String()
	}

	if err := config.Validate(cfg); err != nil {
		return errors.WrapConfig(err, "invalid flags")
	}
	return nil
}
