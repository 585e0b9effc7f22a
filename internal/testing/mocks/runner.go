// Package mocks provides shared test doubles for pkgtest packages.
package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/AndreyAkinshin/pkgtest/internal/process"
)

// response is a canned outcome for a command.
type response struct {
	result process.Result
	err    error
}

// Runner implements process.Runner for testing.
// Use NewRunner() to create instances with a fluent builder API.
//
// go list invocations are answered from WithList*; go test invocations are
// matched on their final argument (the package). Unknown commands succeed
// with empty output.
type Runner struct {
	list  *response
	tests map[string]response

	// RunFunc, when set, is called instead of the canned responses.
	RunFunc func(ctx context.Context, cmd process.Command) (process.Result, error)

	// Execution tracking (thread-safe)
	runCount int32
	mu       sync.Mutex
	calls    []process.Command
}

// NewRunner creates a runner whose commands all succeed.
func NewRunner() *Runner {
	return &Runner{
		tests: make(map[string]response),
	}
}

// WithList makes go list succeed with the given packages, one per line.
func (m *Runner) WithList(packages ...string) *Runner {
	stdout := ""
	for _, p := range packages {
		stdout += p + "\n"
	}
	return m.WithListOutput(stdout)
}

// WithListOutput makes go list succeed with raw stdout.
func (m *Runner) WithListOutput(stdout string) *Runner {
	m.list = &response{result: process.Result{Stdout: stdout}}
	return m
}

// WithListFailure makes go list exit with code and print stderr.
func (m *Runner) WithListFailure(code int, stderr string) *Runner {
	m.list = &response{result: process.Result{ExitCode: code, Stderr: stderr}}
	return m
}

// WithListError makes go list fail to start.
func (m *Runner) WithListError(err error) *Runner {
	m.list = &response{result: process.Result{ExitCode: -1}, err: err}
	return m
}

// WithTestExit makes go test of pkg exit with code.
func (m *Runner) WithTestExit(pkg string, code int) *Runner {
	m.tests[pkg] = response{result: process.Result{ExitCode: code}}
	return m
}

// WithTestError makes go test of pkg fail to start.
func (m *Runner) WithTestError(pkg string, err error) *Runner {
	m.tests[pkg] = response{result: process.Result{ExitCode: -1}, err: err}
	return m
}

// WithRunFunc sets the function called by Run.
func (m *Runner) WithRunFunc(fn func(ctx context.Context, cmd process.Command) (process.Result, error)) *Runner {
	m.RunFunc = fn
	return m
}

// Run implements process.Runner.
func (m *Runner) Run(ctx context.Context, cmd process.Command) (process.Result, error) {
	atomic.AddInt32(&m.runCount, 1)
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, cmd)
	}

	switch {
	case IsList(cmd):
		if m.list != nil {
			return m.list.result, m.list.err
		}
	case IsTest(cmd):
		if r, ok := m.tests[cmd.Args[len(cmd.Args)-1]]; ok {
			return r.result, r.err
		}
	}
	return process.Result{}, nil
}

// IsList reports whether cmd is a go list invocation.
func IsList(cmd process.Command) bool {
	return len(cmd.Args) > 0 && cmd.Args[0] == "list"
}

// IsTest reports whether cmd is a go test invocation.
func IsTest(cmd process.Command) bool {
	return len(cmd.Args) > 1 && cmd.Args[0] == "test"
}

// Test inspection methods

// RunCount returns the number of times Run was called.
func (m *Runner) RunCount() int32 {
	return atomic.LoadInt32(&m.runCount)
}

// Calls returns every command passed to Run, in order.
func (m *Runner) Calls() []process.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]process.Command, len(m.calls))
	copy(result, m.calls)
	return result
}

// TestedPackages returns the packages of the go test invocations, in order.
func (m *Runner) TestedPackages() []string {
	var pkgs []string
	for _, c := range m.Calls() {
		if IsTest(c) {
			pkgs = append(pkgs, c.Args[len(c.Args)-1])
		}
	}
	return pkgs
}

// TagFor returns the -tags value used when testing pkg, or "" if none.
func (m *Runner) TagFor(pkg string) string {
	for _, c := range m.Calls() {
		if !IsTest(c) || c.Args[len(c.Args)-1] != pkg {
			continue
		}
		for i := 0; i+1 < len(c.Args); i++ {
			if c.Args[i] == "-tags" {
				return c.Args[i+1]
			}
		}
	}
	return ""
}

// Reset clears execution tracking state.
func (m *Runner) Reset() {
	atomic.StoreInt32(&m.runCount, 0)
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}
