// Package toolchain builds the go list and go test invocations.
package toolchain

import (
	"github.com/AndreyAkinshin/pkgtest/internal/process"
)

// Defaults for the Go toolchain.
const (
	DefaultBinary  = "go"
	DefaultPattern = "./..."
)

// DefaultTestFlags are passed to every go test invocation.
var DefaultTestFlags = []string{"-v"}

// Go describes how to invoke the Go toolchain for a workspace.
type Go struct {
	Binary    string            // Executable, "go" unless overridden
	Dir       string            // Workspace root the commands run in
	Pattern   string            // Package pattern passed to go list
	TestFlags []string          // Flags placed before the package on go test
	Env       map[string]string // Extra environment for every invocation
}

// New returns a Go toolchain rooted at dir with default settings.
func New(dir string) *Go {
	return &Go{
		Binary:    DefaultBinary,
		Dir:       dir,
		Pattern:   DefaultPattern,
		TestFlags: append([]string(nil), DefaultTestFlags...),
	}
}

func (g *Go) binary() string {
	if g.Binary == "" {
		return DefaultBinary
	}
	return g.Binary
}

// ListCommand returns the command that enumerates workspace packages.
// Its output is captured, not streamed.
func (g *Go) ListCommand() process.Command {
	pattern := g.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	return process.Command{
		Name: g.binary(),
		Args: []string{"list", pattern},
		Dir:  g.Dir,
		Env:  g.Env,
	}
}

// TestCommand returns the command that tests pkg, adding -tags when tag is non-empty.
// Its output is streamed to the console.
func (g *Go) TestCommand(pkg, tag string) process.Command {
	args := make([]string, 0, len(g.TestFlags)+4)
	args = append(args, "test")
	args = append(args, g.TestFlags...)
	if tag != "" {
		args = append(args, "-tags", tag)
	}
	args = append(args, pkg)
	return process.Command{
		Name:   g.binary(),
		Args:   args,
		Dir:    g.Dir,
		Env:    g.Env,
		Stream: true,
	}
}
