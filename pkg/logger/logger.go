package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a printf-style facade over slog. Output goes to stdout and,
// when a file is configured, to a rotating log file.
type Logger struct {
	slog *slog.Logger
	file io.Closer
	exit func(int)
}

type options struct {
	json       bool
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	stdout     io.Writer
}

type Option func(*options)

// WithJSON switches the handler to JSON output
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithRotation configures lumberjack rotation for the log file
func WithRotation(maxSizeMB, maxBackups, maxAgeDays int, compress bool) Option {
	return func(o *options) {
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
		o.maxAgeDays = maxAgeDays
		o.compress = compress
	}
}

// WithOutput replaces stdout, mostly for tests
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.stdout = w }
}

// New creates a logger. An empty file logs to stdout only.
func New(file, level string, opts ...Option) (*Logger, error) {
	o := &options{
		maxSizeMB:  100,
		maxBackups: 5,
		maxAgeDays: 30,
		stdout:     os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	writers := []io.Writer{o.stdout}
	var closer io.Closer
	if file != "" {
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    o.maxSizeMB,
			MaxBackups: o.maxBackups,
			MaxAge:     o.maxAgeDays,
			Compress:   o.compress,
		}
		writers = append(writers, rotating)
		closer = rotating
	}

	w := io.MultiWriter(writers...)
	handlerOpts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}

	return &Logger{slog: slog.New(h), file: closer, exit: os.Exit}, nil
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(slog.LevelDebug, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log(slog.LevelInfo, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(slog.LevelWarn, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log(slog.LevelError, format, v...)
}

// Fatal logs at error level, flushes the file and exits with status 1
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(slog.LevelError, format, v...)
	_ = l.Close()
	l.exit(1)
}

// With returns a logger that adds the given key/value pairs to every record
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{slog: l.slog.With(args...), file: l.file, exit: l.exit}
}

// Slog exposes the underlying structured logger
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) log(level slog.Level, format string, v ...interface{}) {
	if !l.slog.Enabled(context.Background(), level) {
		return
	}
	msg := format
	if len(v) > 0 {
		msg = fmt.Sprintf(format, v...)
	}
	l.slog.Log(context.Background(), level, msg)
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logger: unknown level %q", level)
	}
}
