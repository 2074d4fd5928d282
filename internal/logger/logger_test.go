package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.level)
			if l == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.Debug(ctx, "debug message")
	l.Info(ctx, "info message")
	l.Warn(ctx, "warn message")
	l.Error(ctx, "error message")
	l.Info(ctx, "formatted message: %s %d", "test", 123)

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug message should be filtered at info level")
	}
	for _, want := range []string{"info message", "warn message", "error message", "formatted message: test 123"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		log         func(l Logger)
		want        bool
	}{
		{"debug logs at debug level", "debug", func(l Logger) { l.Debug(context.Background(), "sample line") }, true},
		{"info logs at debug level", "debug", func(l Logger) { l.Info(context.Background(), "sample line") }, true},
		{"debug doesn't log at info level", "info", func(l Logger) { l.Debug(context.Background(), "sample line") }, false},
		{"info logs at info level", "info", func(l Logger) { l.Info(context.Background(), "sample line") }, true},
		{"warn doesn't log at error level", "error", func(l Logger) { l.Warn(context.Background(), "sample line") }, false},
		{"error always logs", "debug", func(l Logger) { l.Error(context.Background(), "sample line") }, true},
		{"invalid level defaults to info", "loud", func(l Logger) { l.Debug(context.Background(), "sample line") }, false},
		{"level is case insensitive", " WARN ", func(l Logger) { l.Warn(context.Background(), "sample line") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewWithWriter(&buf, tt.configLevel))
			if got := strings.Contains(buf.String(), "sample line"); got != tt.want {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestRunIDIsLogged(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	ctx := WithRunID(context.Background(), "abc123")
	if got := RunID(ctx); got != "abc123" {
		t.Fatalf("RunID() = %q, want abc123", got)
	}

	l.Info(ctx, "stage done")
	if !strings.Contains(buf.String(), "abc123") {
		t.Errorf("output missing run id:\n%s", buf.String())
	}
}
