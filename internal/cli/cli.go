// Package cli provides the pkgtest command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/pkgtest/internal/errors"
	"github.com/AndreyAkinshin/pkgtest/internal/output"
	"github.com/AndreyAkinshin/pkgtest/internal/process"
)

// Version is set at build time.
var Version = "dev"

// Options replaces the process-level dependencies of a CLI run.
// Zero values select the real ones.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Runner process.Runner
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunContext(ctx, args, Options{})
}

// RunContext executes the CLI under ctx and returns an exit code.
func RunContext(ctx context.Context, args []string, opts Options) int {
	a := newApp(opts)
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitSuccess
	}

	// Package failures were already reported line by line and in the summary.
	if !errors.IsKind(err, errors.KindTestFailure) {
		a.out.ErrorPrefix("%v", err)
	}
	return errors.GetExitCode(err)
}

// app carries the per-invocation state shared by all commands.
type app struct {
	flags  globalFlags
	out    *output.Writer
	runner process.Runner
}

func newApp(opts Options) *app {
	var out *output.Writer
	if opts.Stdout == nil && opts.Stderr == nil {
		out = output.New()
	} else {
		stdout, stderr := opts.Stdout, opts.Stderr
		if stdout == nil {
			stdout = os.Stdout
		}
		if stderr == nil {
			stderr = os.Stderr
		}
		out = output.NewWithWriters(stdout, stderr, false)
	}

	runner := opts.Runner
	if runner == nil {
		runner = process.NewExecRunnerWithWriters(out.Stdout(), out.Stderr())
	}

	return &app{out: out, runner: runner}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pkgtest",
		Short: "Run go test package by package",
		Long: `pkgtest lists the packages of a Go workspace, drops the ones whose import
path contains an excluded fragment, and runs go test for each remaining
package in order.

Packages under .../pkg/provider/<name> are tested with -tags testing_<name>
so that their mock clients are compiled in. The run stops at the first failing
package unless --keep-going is set.`,
		Example: `  pkgtest
  pkgtest --keep-going --exclude cmd,e2e
  pkgtest list
  pkgtest --dry-run -C ./services/api`,
		Version:       Version,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.applyOutputFlags()
		},
		RunE: a.runTests,
	}
	root.SetVersionTemplate("pkgtest {{.Version}}\n")
	root.SetOut(a.out.Stdout())
	root.SetErr(a.out.Stderr())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Configf("%v", err)
	})

	addGlobalFlags(root.PersistentFlags(), &a.flags)

	root.AddCommand(newListCmd(a), newVersionCmd(a))
	return root
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.Configf("unexpected argument %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

// applyOutputFlags configures the console writer from the verbosity flags.
func (a *app) applyOutputFlags() error {
	if a.flags.quiet && a.flags.verbose {
		return errors.Config("--quiet and --verbose are mutually exclusive")
	}
	a.out.SetQuiet(a.flags.quiet)
	if a.flags.noColor {
		a.out.SetColor(false)
	}
	return nil
}
