// Package logging builds the diagnostic logger used alongside console output.
//
// Console output (package output) is what users read; the logger records the
// commands that were run, their exit codes and timings. It writes to stderr at
// warn level by default and at debug level with --verbose.
package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Verbose bool      // Log at debug level
	Quiet   bool      // Log errors only
	Output  io.Writer // Destination; os.Stderr when nil
	RunID   string    // Attached to every entry as run_id; generated when empty
	Color   bool      // Colorize level names
}

// New builds a console-encoded zap logger.
func New(opts Options) *zap.Logger {
	level := zapcore.WarnLevel
	switch {
	case opts.Verbose:
		level = zapcore.DebugLevel
	case opts.Quiet:
		level = zapcore.ErrorLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if opts.Color {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(out)),
		zap.NewAtomicLevelAt(level),
	)

	runID := opts.RunID
	if runID == "" {
		runID = NewRunID()
	}
	return zap.New(core).Named("pkgtest").With(zap.String("run_id", runID))
}

// NewRunID returns a fresh identifier for one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
