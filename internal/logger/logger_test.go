package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		logged  []string
		dropped []string
	}{
		{
			name:    "default info level",
			opts:    Options{},
			logged:  []string{"info-msg", "warn-msg", "error-msg"},
			dropped: []string{"debug-msg"},
		},
		{
			name:    "debug level",
			opts:    Options{Debug: true},
			logged:  []string{"debug-msg", "info-msg", "warn-msg", "error-msg"},
			dropped: nil,
		},
		{
			name:    "quiet level",
			opts:    Options{Quiet: true},
			logged:  []string{"error-msg"},
			dropped: []string{"debug-msg", "info-msg", "warn-msg"},
		},
		{
			// Quiet wins when both are set.
			name:    "quiet overrides debug",
			opts:    Options{Debug: true, Quiet: true},
			logged:  []string{"error-msg"},
			dropped: []string{"debug-msg", "info-msg", "warn-msg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.opts.Output = buf
			Init(tt.opts)
			defer resetLogger()

			Debug("debug-msg")
			Info("info-msg")
			Warn("warn-msg")
			Error("error-msg")

			out := buf.String()
			for _, want := range tt.logged {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output", want)
				}
			}
			for _, unwant := range tt.dropped {
				if strings.Contains(out, unwant) {
					t.Errorf("did not expect %q in output", unwant)
				}
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("json test", "pages", 3)

	out := buf.String()
	if !strings.Contains(out, "{") || !strings.Contains(out, "\"level\"") {
		t.Errorf("expected JSON output, got %q", out)
	}
	if !strings.Contains(out, "json test") || !strings.Contains(out, "pages") {
		t.Errorf("expected message and attrs in output, got %q", out)
	}
}

func TestTextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("text test", "strategy", "semantic")

	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "text test") {
		t.Errorf("expected text output with level, got %q", out)
	}
	if !strings.Contains(out, "strategy") || !strings.Contains(out, "semantic") {
		t.Errorf("expected structured attrs in output, got %q", out)
	}
}

func TestCustomLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	custom := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// A custom logger overrides level and format options.
	Init(Options{Quiet: true, Logger: custom})
	defer resetLogger()

	Debug("custom logger debug")
	if !strings.Contains(buf.String(), "custom logger debug") {
		t.Error("custom logger should receive debug messages")
	}
}

func TestSetLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	defer resetLogger()

	Info("via SetLogger")
	if !strings.Contains(buf.String(), "via SetLogger") {
		t.Error("SetLogger should replace the package logger")
	}
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	l := With("source", "main-tag")
	l.Info("attached attrs")

	out := buf.String()
	if !strings.Contains(out, "source") || !strings.Contains(out, "main-tag") {
		t.Errorf("expected bound attrs in output, got %q", out)
	}
}
