// Package output provides formatted console output for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: colorEnabled(os.Stdout),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetColor forces color on or off.
func (w *Writer) SetColor(color bool) {
	w.color = color
}

// Color reports whether color output is enabled.
func (w *Writer) Color() bool {
	return w.color
}

// Stdout returns the underlying stdout writer, used to stream child process output.
func (w *Writer) Stdout() io.Writer {
	return w.out
}

// Stderr returns the underlying stderr writer.
func (w *Writer) Stderr() io.Writer {
	return w.err
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Header prints a bold phase header such as "Collecting packages...".
func (w *Writer) Header(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", bold+blue, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// PackageStart announces the test run of a single package.
// The tag is shown only when non-empty.
func (w *Writer) PackageStart(pkg, tag string) {
	if w.quiet {
		return
	}
	w.Println("")
	label := "Running tests for package: " + pkg
	if tag != "" {
		label += fmt.Sprintf(" (tags: %s)", tag)
	}
	if w.color {
		w.Println("%s%s%s", cyan, label, reset)
	} else {
		w.Println("%s", label)
	}
}

// PackagePassed prints the per-package success line.
func (w *Writer) PackagePassed(pkg string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("%s✔ Tests passed for package: %s%s", green, pkg, reset)
	} else {
		w.Println("✔ Tests passed for package: %s", pkg)
	}
}

// PackageFailed prints the per-package failure line to stderr.
// It is printed in quiet mode too.
func (w *Writer) PackageFailed(pkg string, err error) {
	msg := "✘ Tests failed for package: " + pkg
	if err != nil {
		msg += fmt.Sprintf(" (%v)", err)
	}
	if w.color {
		w.Errorln("%s%s%s", red, msg, reset)
	} else {
		w.Errorln("%s", msg)
	}
}

// Table prints a simple table.
func (w *Writer) Table(headers []string, rows [][]string) {
	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var headerParts []string
	for i, h := range headers {
		headerParts = append(headerParts, fmt.Sprintf("%-*s", widths[i], h))
	}
	w.Println("%s", strings.TrimRight(strings.Join(headerParts, "  "), " "))

	var sepParts []string
	for _, width := range widths {
		sepParts = append(sepParts, strings.Repeat("-", width))
	}
	w.Println("%s", strings.Join(sepParts, "  "))

	for _, row := range rows {
		var rowParts []string
		for i, cell := range row {
			if i < len(widths) {
				rowParts = append(rowParts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		w.Println("%s", strings.TrimRight(strings.Join(rowParts, "  "), " "))
	}
}

// ErrorPrefix prints an error message with the pkgtest prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%spkgtest:%s %s", red, reset, msg)
	} else {
		w.Errorln("pkgtest: %s", msg)
	}
}

// WarningSimple prints a warning message without coloring the message body.
func (w *Writer) WarningSimple(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%swarning:%s %s", yellow, reset, msg)
	} else {
		w.Errorln("warning: %s", msg)
	}
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold+cyan, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
	w.Println("")
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s", dim, label, reset, value)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryPassed prints a passed items summary.
func (w *Writer) SummaryPassed(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, green, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, red, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryAction prints one package line with status indicator, name, duration and optional error.
func (w *Writer) SummaryAction(name string, success bool, duration string, errMsg string) {
	if w.color {
		if success {
			w.Print("    %s✓%s %s %s%s%s", green, reset, name, dim, duration, reset)
		} else {
			w.Print("    %s✗%s %s %s%s%s", red, reset, name, dim, duration, reset)
			if errMsg != "" {
				w.Print("  %s(%s)%s", dim, errMsg, reset)
			}
		}
	} else {
		if success {
			w.Print("    + %s %s", name, duration)
		} else {
			w.Print("    x %s %s", name, duration)
			if errMsg != "" {
				w.Print("  (%s)", errMsg)
			}
		}
	}
	w.Print("\n")
}

// SummarySectionLabel prints a label for a summary section (e.g. "Packages:").
func (w *Writer) SummarySectionLabel(label string) {
	if w.color {
		w.Println("  %s%s%s", dim, label, reset)
	} else {
		w.Println("  %s", label)
	}
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", bold+green, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", bold+red, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// DryRunStart prints the dry run header (skipped in quiet mode).
func (w *Writer) DryRunStart() {
	if w.quiet {
		return
	}
	w.Println("")
	if w.color {
		w.Println("%s=== DRY RUN ===%s", bold+yellow, reset)
	} else {
		w.Println("=== DRY RUN ===")
	}
	w.Println("")
}

// DryRunEnd prints the dry run footer (skipped in quiet mode).
func (w *Writer) DryRunEnd() {
	if w.quiet {
		return
	}
	w.Println("")
	if w.color {
		w.Println("%s=== END DRY RUN ===%s", bold+yellow, reset)
	} else {
		w.Println("=== END DRY RUN ===")
	}
}

// DryRunCommand prints a command that would have run (skipped in quiet mode).
func (w *Writer) DryRunCommand(cmd string) {
	if w.quiet {
		return
	}
	w.Println("[dry-run] %s", cmd)
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", dim, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// colorEnabled returns true if f is a terminal and NO_COLOR is not set.
func colorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
)
