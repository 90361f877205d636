// Package logging builds the zerolog loggers used across countrydex and carries
// trace IDs through context.Context.
package logging

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

// Output and format names accepted in Config.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"

	FormatJSON    = "json"
	FormatConsole = "console"
	FormatText    = "text"
)

// FieldTraceID is the log field carrying the per-invocation trace ID.
const FieldTraceID = "trace_id"

// Config describes how a logger is built.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// LogPathResult is the outcome of NewLoggerWithPath.
type LogPathResult struct {
	Logger         zerolog.Logger
	FilePath       string
	UsingFile      bool
	FallbackUsed   bool
	FallbackReason string

	file io.WriteCloser
}

// Close releases the log file handle, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger from cfg, discarding file bookkeeping.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// NewLoggerWithPath builds a logger from cfg. When the configured log file
// cannot be opened it falls back to stderr and records why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var (
		result LogPathResult
		out    io.Writer = os.Stderr
	)

	switch cfg.Output {
	case OutputStdout:
		out = os.Stdout
	case OutputFile:
		f, openErr := openLogFile(cfg.File)
		if openErr != nil {
			result.FallbackUsed = true
			result.FallbackReason = openErr.Error()
			break
		}
		out = f
		result.file = f
		result.UsingFile = true
		result.FilePath = cfg.File
	}

	if cfg.Format == FormatConsole || cfg.Format == FormatText {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: result.UsingFile}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	result.Logger = ctx.Logger()
	return result
}

// openLogFile returns a size-rotated writer for path. The file is opened once
// up front so an unwritable path is reported before logging starts.
func openLogFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nil, fmt.Errorf("log output is %q but no file path is set", OutputFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	_ = f.Close()

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
	}, nil
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where log output is going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning reports that file logging was requested but unavailable.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging unavailable (%s), logging to stderr\n", reason)
}

type traceIDKey struct{}

// NewTraceID returns a fresh, time-sortable trace identifier.
func NewTraceID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// ContextWithTraceID stores traceID in ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(traceIDKey{}).(string); ok {
		return v
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID already in ctx or a new one.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return NewTraceID()
}
