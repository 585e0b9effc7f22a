package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/pkgtest/internal/dispatcher"
	"github.com/AndreyAkinshin/pkgtest/internal/errors"
	"github.com/AndreyAkinshin/pkgtest/internal/logging"
	"github.com/AndreyAkinshin/pkgtest/internal/project"
	"github.com/AndreyAkinshin/pkgtest/internal/provider"
	"github.com/AndreyAkinshin/pkgtest/internal/resolver"
	"github.com/AndreyAkinshin/pkgtest/internal/toolchain"
)

// session is a loaded workspace ready to resolve and dispatch.
type session struct {
	project   *project.Project
	toolchain *toolchain.Go
	matcher   *provider.Matcher
	log       *zap.Logger
}

// load locates the workspace, merges configuration and flags, and builds the
// toolchain. All failures are configuration errors.
func (a *app) load(cmd *cobra.Command) (*session, error) {
	log := logging.New(logging.Options{
		Verbose: a.flags.verbose,
		Quiet:   a.flags.quiet,
		Output:  a.out.Stderr(),
		Color:   a.out.Color(),
	})

	proj, err := project.Load(project.Options{
		StartDir:   a.flags.dir,
		ConfigPath: a.flags.resolvedConfigPath(),
	})
	if err != nil {
		return nil, errors.WrapConfig(err, "cannot load workspace")
	}
	for _, w := range proj.Warnings {
		a.out.WarningSimple("%s: %s", proj.ConfigPath, w)
	}

	cfg := proj.Config
	if err := a.flags.applyTo(cmd, cfg); err != nil {
		return nil, err
	}

	matcher, err := cfg.Matcher()
	if err != nil {
		return nil, errors.WrapConfig(err, "invalid provider pattern")
	}

	tc := toolchain.New(proj.Root)
	tc.Binary = cfg.Go
	tc.Pattern = cfg.Pattern
	tc.TestFlags = cfg.TestFlags
	tc.Env = cfg.Env

	log.Debug("workspace loaded",
		zap.String("root", proj.Root),
		zap.String("config", proj.ConfigPath),
		zap.Strings("exclude", cfg.Exclude),
		zap.String("provider_pattern", matcher.Pattern()),
		zap.String("tag_prefix", matcher.Prefix()))

	return &session{
		project:   proj,
		toolchain: tc,
		matcher:   matcher,
		log:       log,
	}, nil
}

func (s *session) resolve(ctx context.Context, a *app) ([]string, error) {
	r := resolver.New(a.runner, s.toolchain, s.project.Config.Exclude, a.out, s.log)
	return r.Resolve(ctx)
}

// runTests resolves the workspace packages and tests each of them.
func (a *app) runTests(cmd *cobra.Command, args []string) error {
	s, err := a.load(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	ctx := cmd.Context()
	pkgs, err := s.resolve(ctx, a)
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		return errors.NoPackages()
	}

	cfg := s.project.Config
	d := dispatcher.New(a.runner, s.toolchain, s.matcher, a.out, s.log, dispatcher.Options{
		KeepGoing: cfg.KeepGoing,
		DryRun:    a.flags.dryRun,
		Timeout:   cfg.TimeoutDuration(),
	})
	summary := d.RunAll(ctx, pkgs)

	if !a.flags.quiet {
		dispatcher.PrintSummary(summary, a.out)
	}
	return summary.Err()
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the packages that would be tested and their build tags",
		Args:  noArgs,
		RunE:  a.runList,
	}
}

// runList prints the resolved packages without testing them.
func (a *app) runList(cmd *cobra.Command, args []string) error {
	s, err := a.load(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	pkgs, err := s.resolve(cmd.Context(), a)
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		a.out.Hint("No packages to test.")
		return nil
	}

	rows := make([][]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		tag, ok := s.matcher.Tag(pkg)
		if !ok {
			tag = "-"
		}
		rows = append(rows, []string{pkg, tag})
	}
	a.out.Println("")
	a.out.Table([]string{"PACKAGE", "TAGS"}, rows)
	return nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pkgtest version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.out.Println("pkgtest %s", Version)
			return nil
		},
	}
}
