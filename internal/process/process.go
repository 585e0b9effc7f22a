// Package process runs external commands on behalf of the resolver and dispatcher.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes to close after the
// child is killed. go test leaves grandchildren (test binaries) that may hold them.
const waitDelay = 5 * time.Second

// Command describes a single external invocation.
type Command struct {
	Name string            // Executable (e.g. "go")
	Args []string          // Arguments
	Dir  string            // Working directory; empty means the current directory
	Env  map[string]string // Extra environment variables, added to os.Environ()

	// Stream sends stdout/stderr to the runner's console writers while still
	// capturing them in the Result. When false, output is only captured.
	Stream bool
}

// String renders the command line the way a user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\"'") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Result holds the outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes commands and waits for them to finish.
//
// Run returns a non-nil error only when the process could not be started or
// was interrupted (ExitCode is then -1). A non-zero exit status is reported
// through Result.ExitCode with a nil error.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner is the os/exec implementation of Runner.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunnerWithWriters creates a runner that streams to the given writers.
func NewExecRunnerWithWriters(stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{
		stdout: stdout,
		stderr: stderr,
	}
}

// Run executes cmd and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = buildEnv(cmd.Env)
	c.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	if cmd.Stream {
		c.Stdout = io.MultiWriter(r.stdout, &stdout)
		c.Stderr = io.MultiWriter(r.stderr, &stderr)
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	start := time.Now()
	err := c.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	// Cancellation kills the child; report it as an interruption rather than
	// as the signal exit status.
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("%s: %w", cmd.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	return result, fmt.Errorf("start %s: %w", cmd.Name, err)
}

// buildEnv returns os.Environ() with extra appended, or nil to inherit the
// parent environment unchanged.
func buildEnv(extra map[string]string) []string {
	if len(extra) == 0 {
		return nil
	}
	env := os.Environ()
	for key, value := range extra {
		env = append(env, key+"="+value)
	}
	return env
}
