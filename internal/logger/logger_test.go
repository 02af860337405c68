package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)

	ctx := WithDefaultArgs(context.Background(), "session", "abc")
	inner := WithDefaultArgs(ctx, "remote", "1.2.3.4")

	l.InfoCtx(inner, "hello", "n", 1)
	l.Debug("hidden")
	l.WarnCtx(ctx, "outer")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	for _, want := range []string{`msg="[treegrid] hello"`, "n=1", "session=abc", "remote=1.2.3.4"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q missing %q", lines[0], want)
		}
	}
	if strings.Contains(lines[1], "remote=") {
		t.Errorf("outer context should not carry inner args: %q", lines[1])
	}
}
