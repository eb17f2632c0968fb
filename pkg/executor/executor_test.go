package executor

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	exec := New()
	ctx := context.Background()

	out, err := exec.Execute(ctx, "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}

	_, err = exec.Execute(ctx, "sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail on non-zero exit")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q should carry stderr", err)
	}
}

func TestStderrTail(t *testing.T) {
	long := strings.Repeat("x", maxStderrBytes+10)
	got := stderrTail(long)
	if !strings.HasPrefix(got, "...") || len(got) != maxStderrBytes+3 {
		t.Errorf("stderrTail() length = %d, want %d", len(got), maxStderrBytes+3)
	}
	if got := stderrTail("  short \n"); got != "short" {
		t.Errorf("stderrTail() = %q, want %q", got, "short")
	}
}
