// Package resolver lists the workspace packages and drops the excluded ones.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	pkgerrors "github.com/AndreyAkinshin/pkgtest/internal/errors"
	"github.com/AndreyAkinshin/pkgtest/internal/logging"
	"github.com/AndreyAkinshin/pkgtest/internal/output"
	"github.com/AndreyAkinshin/pkgtest/internal/process"
	"github.com/AndreyAkinshin/pkgtest/internal/toolchain"
)

// Resolver turns the toolchain's package listing into the ordered list of
// packages to test.
type Resolver struct {
	runner     process.Runner
	toolchain  *toolchain.Go
	exclusions []string
	out        *output.Writer
	log        *zap.Logger
}

// New creates a Resolver. A nil logger discards diagnostics.
func New(runner process.Runner, tc *toolchain.Go, exclusions []string, out *output.Writer, log *zap.Logger) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{
		runner:     runner,
		toolchain:  tc,
		exclusions: exclusions,
		out:        out,
		log:        log.Named("resolver"),
	}
}

// Resolve lists every package in the workspace and removes the excluded ones.
//
// It fails with a discovery error when the listing cannot be started or exits
// non-zero. An empty result is not an error.
func (r *Resolver) Resolve(ctx context.Context) ([]string, error) {
	r.out.Header("Collecting packages...")

	cmd := r.toolchain.ListCommand()
	r.log.Debug("listing packages", zap.Stringer("command", cmd), zap.String("dir", cmd.Dir))

	res, err := r.runner.Run(ctx, cmd)
	if err != nil {
		return nil, pkgerrors.Discovery(err, strings.TrimSpace(res.Stderr))
	}
	if !res.Success() {
		cause := fmt.Errorf("%s exited with status %d", cmd, res.ExitCode)
		return nil, pkgerrors.Discovery(cause, strings.TrimSpace(res.Stderr))
	}

	all := ParseList(res.Stdout)
	pkgs := FilterFunc(all, r.exclusions, func(pkg, frag string) {
		r.log.Debug("excluding package", zap.String("package", pkg), zap.String("fragment", frag))
	})

	r.log.Debug("packages resolved",
		zap.Int("listed", len(all)),
		zap.Int("selected", len(pkgs)),
		zap.Duration("duration", res.Duration))
	r.out.Info("Found %d packages to test.", len(pkgs))
	return pkgs, nil
}

// ParseList splits go list output into package identifiers, one per
// non-empty line, with surrounding whitespace removed and order kept.
func ParseList(stdout string) []string {
	var pkgs []string
	for _, line := range strings.Split(stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			pkgs = append(pkgs, line)
		}
	}
	return pkgs
}

// Filter returns the packages that contain none of the exclusion fragments,
// in their original order. The result is never nil.
func Filter(pkgs, exclusions []string) []string {
	return FilterFunc(pkgs, exclusions, nil)
}

// FilterFunc is Filter with a hook called for each dropped package and the
// fragment that matched it. A nil hook is allowed.
func FilterFunc(pkgs, exclusions []string, onExcluded func(pkg, fragment string)) []string {
	kept := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		if frag, ok := Excluded(pkg, exclusions); ok {
			if onExcluded != nil {
				onExcluded(pkg, frag)
			}
			continue
		}
		kept = append(kept, pkg)
	}
	return kept
}

// Excluded returns the first exclusion fragment found in pkg.
func Excluded(pkg string, exclusions []string) (string, bool) {
	for _, frag := range exclusions {
		if strings.Contains(pkg, frag) {
			return frag, true
		}
	}
	return "", false
}
