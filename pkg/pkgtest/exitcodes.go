// Package pkgtest provides public constants for scripts and CI jobs that
// invoke the pkgtest CLI.
package pkgtest

// Exit codes returned by the pkgtest CLI.
const (
	// ExitSuccess indicates every resolved package passed its tests.
	ExitSuccess = 0

	// ExitFailure indicates a run failure: package listing failed, no packages
	// were left after filtering, or a package's tests failed.
	ExitFailure = 1

	// ExitConfigError indicates an invalid configuration file or invalid flags.
	ExitConfigError = 2
)
