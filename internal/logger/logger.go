// Package logger is the process-wide slog facade. Extraction code logs
// through it so embedders can route or silence output without threading
// a logger through every call.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Options configures the package logger. Logger, when set, wins over
// everything else.
type Options struct {
	Debug  bool         // strategy traces and phase stats
	Quiet  bool         // errors only
	JSON   bool         // JSON handler instead of text
	Output io.Writer    // defaults to stderr
	Logger *slog.Logger // use as-is
}

var (
	mu     sync.RWMutex
	shared = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
)

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return shared
}

// Init replaces the package logger according to opts. Quiet takes
// precedence over Debug.
func Init(opts Options) {
	if opts.Logger != nil {
		SetLogger(opts.Logger)
		return
	}

	level := slog.LevelInfo
	switch {
	case opts.Quiet:
		level = slog.LevelError
	case opts.Debug:
		level = slog.LevelDebug
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(out, hopts)
	if opts.JSON {
		h = slog.NewJSONHandler(out, hopts)
	}
	SetLogger(slog.New(h))
}

// SetLogger installs a caller-owned slog.Logger for all subsequent
// package-level calls.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	shared = l
}

// With returns the current logger with args bound.
func With(args ...any) *slog.Logger { return get().With(args...) }

func Debug(msg string, args ...any) { get().Debug(msg, args...) }
func Info(msg string, args ...any)  { get().Info(msg, args...) }
func Warn(msg string, args ...any)  { get().Warn(msg, args...) }
func Error(msg string, args ...any) { get().Error(msg, args...) }
