// Package logging provides structured logging setup built on zerolog.
//
// All log output goes to stderr (or a configured file) so stdout stays
// clean for machine-readable command output.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output destinations accepted by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Formats accepted by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config describes how the application logger should be constructed.
type Config struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	// Unparseable values fall back to info.
	Level string

	// Format selects console (human-readable) or json output.
	Format string

	// Output selects the destination: stderr, stdout, or file.
	Output string

	// File is the log file path, used when Output is "file".
	File string
}

// Result is the outcome of constructing a logger. When file output was
// requested but could not be opened, the logger falls back to stderr and
// FallbackReason explains why.
type Result struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if one was opened.
func (r *Result) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New constructs a logger from cfg. It never fails: bad levels fall back
// to info and unopenable files fall back to stderr console output.
func New(cfg Config) Result {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	result := Result{}
	var out io.Writer

	switch cfg.Output {
	case OutputFile:
		file, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			result.FallbackUsed = true
			result.FallbackReason = openErr.Error()
			out = consoleWriter(os.Stderr)
		} else {
			result.UsingFile = true
			result.FilePath = cfg.File
			result.file = file
			out = file
		}
	case OutputStdout:
		out = writerFor(cfg.Format, os.Stdout)
	default:
		out = writerFor(cfg.Format, os.Stderr)
	}

	result.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return result
}

func writerFor(format string, f *os.File) io.Writer {
	if format == FormatJSON {
		return f
	}
	return consoleWriter(f)
}

func consoleWriter(f *os.File) io.Writer {
	return zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339}
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
