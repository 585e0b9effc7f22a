// Package dispatcher runs go test for each resolved package, one at a time.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	pkgerrors "github.com/AndreyAkinshin/pkgtest/internal/errors"
	"github.com/AndreyAkinshin/pkgtest/internal/logging"
	"github.com/AndreyAkinshin/pkgtest/internal/output"
	"github.com/AndreyAkinshin/pkgtest/internal/process"
	"github.com/AndreyAkinshin/pkgtest/internal/provider"
	"github.com/AndreyAkinshin/pkgtest/internal/toolchain"
)

// Options configures a dispatch run.
type Options struct {
	// KeepGoing runs every package even after a failure. By default the run
	// stops at the first failing package.
	KeepGoing bool

	// DryRun prints each go test command instead of running it.
	DryRun bool

	// Timeout bounds each package's go test invocation. Zero means none.
	Timeout time.Duration
}

// PackageResult is the outcome of testing one package.
type PackageResult struct {
	Package  string
	Tag      string // Build tag passed with -tags; empty for ordinary packages
	Success  bool
	ExitCode int
	Duration time.Duration
	Err      error // Non-nil when Success is false
}

// Dispatcher tests packages in order through a process.Runner.
type Dispatcher struct {
	runner    process.Runner
	toolchain *toolchain.Go
	matcher   *provider.Matcher
	out       *output.Writer
	log       *zap.Logger
	opts      Options
}

// New creates a Dispatcher. A nil matcher uses provider.DefaultMatcher and a
// nil logger discards diagnostics.
func New(runner process.Runner, tc *toolchain.Go, matcher *provider.Matcher, out *output.Writer, log *zap.Logger, opts Options) *Dispatcher {
	if matcher == nil {
		matcher = provider.DefaultMatcher()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Dispatcher{
		runner:    runner,
		toolchain: tc,
		matcher:   matcher,
		out:       out,
		log:       log.Named("dispatcher"),
		opts:      opts,
	}
}

// RunAll tests pkgs strictly in order and returns the aggregated outcome.
//
// An empty pkgs yields a failing Summary without invoking anything. Unless
// KeepGoing is set, the first failure stops the loop and the remaining
// packages are recorded as not run. Cancellation of ctx does the same before
// the next package starts.
func (d *Dispatcher) RunAll(ctx context.Context, pkgs []string) Summary {
	start := time.Now()
	var s Summary

	if len(pkgs) == 0 {
		d.log.Warn("no packages to dispatch")
		return s
	}

	if d.opts.DryRun {
		d.out.DryRunStart()
		defer d.out.DryRunEnd()
	}

	for i, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			s.Skipped = append(s.Skipped, pkgs[i:]...)
			d.log.Info("run interrupted", zap.Error(err), zap.Int("not_run", len(pkgs)-i))
			break
		}

		res := d.runPackage(ctx, pkg)
		s.Results = append(s.Results, res)

		if !res.Success && !d.opts.KeepGoing {
			s.Skipped = append(s.Skipped, pkgs[i+1:]...)
			if len(s.Skipped) > 0 {
				d.log.Debug("stopping after failure", zap.String("package", pkg), zap.Int("not_run", len(s.Skipped)))
			}
			break
		}
	}

	s.Duration = time.Since(start)
	return s
}

// runPackage tests a single package, tagging provider packages.
func (d *Dispatcher) runPackage(ctx context.Context, pkg string) PackageResult {
	tag, _ := d.matcher.Tag(pkg)
	cmd := d.toolchain.TestCommand(pkg, tag)
	result := PackageResult{Package: pkg, Tag: tag}

	d.out.PackageStart(pkg, tag)

	if d.opts.DryRun {
		d.out.DryRunCommand(cmd.String())
		result.Success = true
		return result
	}

	d.log.Debug("running tests", zap.Stringer("command", cmd), zap.String("package", pkg), zap.String("tag", tag))

	runCtx := ctx
	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}

	res, err := d.runner.Run(runCtx, cmd)
	result.ExitCode = res.ExitCode
	result.Duration = res.Duration

	var cause error
	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		cause = fmt.Errorf("timed out after %s", d.opts.Timeout)
	case err != nil:
		cause = err
	case !res.Success():
		cause = fmt.Errorf("exit status %d", res.ExitCode)
	}

	if cause == nil {
		result.Success = true
		d.out.PackagePassed(pkg)
		d.log.Info("package passed", zap.String("package", pkg), zap.Duration("duration", res.Duration))
		return result
	}

	result.Err = pkgerrors.TestFailure(pkg, cause)
	d.out.PackageFailed(pkg, cause)
	d.log.Info("package failed",
		zap.String("package", pkg),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("duration", res.Duration),
		zap.Error(cause))
	return result
}
