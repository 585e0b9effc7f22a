// Package errors provides structured error types and exit codes for pkgtest.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess      = 0 // All packages passed
	ExitRuntimeError = 1 // Discovery failed, no packages, or a test failed
	ExitConfigError  = 2 // Invalid configuration file or flags
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindDiscovery
	KindNoPackages
	KindTestFailure
)

// String returns the kind name used in log fields.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindDiscovery:
		return "discovery"
	case KindNoPackages:
		return "no_packages"
	case KindTestFailure:
		return "test_failure"
	default:
		return "runtime"
	}
}

// Error is the base error type for pkgtest.
type Error struct {
	Kind    ErrorKind
	Message string
	Package string // Package identifier if applicable
	Output  string // Diagnostic output of the external tool, if any
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Package != "" {
		msg = fmt.Sprintf("[%s] %s", e.Package, msg)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s\n%s", msg, e.Output)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	if e.Kind == KindConfig {
		return ExitConfigError
	}
	return ExitRuntimeError
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: fmt.Sprintf("%s: %v", message, err),
		Cause:   err,
	}
}

// Discovery creates an error for a failed package listing.
// output is the diagnostic text the toolchain printed.
func Discovery(cause error, output string) *Error {
	msg := "error listing packages"
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{
		Kind:    KindDiscovery,
		Message: msg,
		Output:  output,
		Cause:   cause,
	}
}

// NoPackages creates the error reported when filtering leaves nothing to test.
func NoPackages() *Error {
	return &Error{
		Kind:    KindNoPackages,
		Message: "no packages to test",
	}
}

// TestFailure creates an error for a package whose tests failed.
func TestFailure(pkg string, cause error) *Error {
	return &Error{
		Kind:    KindTestFailure,
		Package: pkg,
		Message: "tests failed",
		Cause:   cause,
	}
}

// IsKind reports whether err is or wraps an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.ExitCode()
	}
	return ExitRuntimeError
}
