package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	l := slog.New(h)
	return NewSlogLogger(l), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "refresh coalesced", "kind", "quote")
	log.Info(ctx, "record created", "record_id", "q1")
	log.Warn(ctx, "document deletion failed", "status", 500)
	log.Error(ctx, "auto-save failed", "attempt", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 lines, got %d:\n%s", len(lines), buf.String())
	}

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", `msg="refresh coalesced"`, "kind=quote"},
		{"INFO", `msg="record created"`, "record_id=q1"},
		{"WARN", `msg="document deletion failed"`, "status=500"},
		{"ERROR", `msg="auto-save failed"`, "attempt=2"},
	}
	for i, tc := range tests {
		for _, want := range []string{"level=" + tc.level, tc.msg, tc.attr} {
			if !strings.Contains(lines[i], want) {
				t.Fatalf("line %d: want %q in %q", i, want, lines[i])
			}
		}
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log2 := log.With("owner_id", "123", "kind", "quote")
	log2.Info(ctx, "hello", "k", "v")

	out := buf.String()
	wantSubs := []string{
		"level=INFO",
		"msg=hello",
		"owner_id=123",
		"kind=quote",
		"k=v",
	}
	for _, s := range wantSubs {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestNewJSONLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, slog.LevelInfo)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "cache refreshed", "kind", "quote")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line must be filtered at info level:\n%s", out)
	}
	if !strings.Contains(out, `"msg":"cache refreshed"`) || !strings.Contains(out, `"kind":"quote"`) {
		t.Fatalf("unexpected JSON output:\n%s", out)
	}
}

func TestNopLogger_DiscardsAndChains(t *testing.T) {
	var l Logger = NopLogger{}
	l = l.With("a", 1)
	l.Info(context.Background(), "nothing")
	if _, ok := l.(NopLogger); !ok {
		t.Fatalf("With must return a NopLogger, got %T", l)
	}
}
