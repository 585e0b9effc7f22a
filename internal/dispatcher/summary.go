package dispatcher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/AndreyAkinshin/pkgtest/internal/errors"
	"github.com/AndreyAkinshin/pkgtest/internal/output"
)

// Final banners printed by PrintSummary.
const (
	PassedBanner = "All tests passed successfully!"
	FailedBanner = "Some tests failed. Check the output above for details."
)

// Summary aggregates the results of a dispatch run.
type Summary struct {
	Results  []PackageResult // Processed packages, in order
	Skipped  []string        // Packages that were not run
	Duration time.Duration
}

// Passed reports whether at least one package ran, every processed package
// succeeded and nothing was left unprocessed.
func (s Summary) Passed() bool {
	if len(s.Results) == 0 || len(s.Skipped) > 0 {
		return false
	}
	for _, r := range s.Results {
		if !r.Success {
			return false
		}
	}
	return true
}

// Failed returns the results of the packages whose tests failed.
func (s Summary) Failed() []PackageResult {
	var failed []PackageResult
	for _, r := range s.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err returns nil when the run passed, otherwise an error describing why.
// Package failures are joined so that each can be inspected with errors.As.
func (s Summary) Err() error {
	if s.Passed() {
		return nil
	}
	if len(s.Results) == 0 && len(s.Skipped) == 0 {
		return pkgerrors.NoPackages()
	}

	var errs []error
	for _, r := range s.Failed() {
		errs = append(errs, r.Err)
	}
	if len(errs) == 0 {
		return pkgerrors.Newf("%d packages not run", len(s.Skipped))
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// PrintSummary prints the per-package listing, the counts and the final banner.
func PrintSummary(s Summary, out *output.Writer) {
	out.SummaryHeader("Test Summary")

	if len(s.Results) > 0 {
		out.SummarySectionLabel("Packages:")
		for _, r := range s.Results {
			var errMsg string
			if r.Err != nil {
				errMsg = failureReason(r.Err)
			}
			out.SummaryAction(r.Package, r.Success, FormatDuration(r.Duration), errMsg)
		}
		out.Println("")
	}

	failed := s.Failed()
	out.SummaryPassed("Passed", fmt.Sprintf("%d", len(s.Results)-len(failed)))
	if len(failed) > 0 {
		names := make([]string, len(failed))
		for i, r := range failed {
			names[i] = r.Package
		}
		out.SummaryFailed("Failed", strings.Join(names, ", "))
	}
	if len(s.Skipped) > 0 {
		out.SummaryItem("Not run", fmt.Sprintf("%d", len(s.Skipped)))
	}
	out.SummaryItem("Total", fmt.Sprintf("%d", len(s.Results)+len(s.Skipped)))
	out.SummaryItem("Duration", FormatDuration(s.Duration))

	if s.Passed() {
		out.FinalSuccess(PassedBanner)
	} else {
		out.FinalFailure(FailedBanner)
	}
}

// failureReason returns the underlying cause of a package failure.
func failureReason(err error) string {
	var pe *pkgerrors.Error
	if errors.As(err, &pe) && pe.Cause != nil {
		return pe.Cause.Error()
	}
	return err.Error()
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
