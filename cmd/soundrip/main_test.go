package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"soundrip/internal/services"
)

// runCLI executes the root command with the given args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, name := range []string{"download", "probe", "transcribe", "comments", "analyze", "history", "deps", "config"} {
		requireContains(t, out, name)
	}
}

func TestStampRequestID(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	id := stampRequestID(cmd)
	if id == "" {
		t.Fatal("expected a request id")
	}
	got, ok := services.RequestIDFromContext(cmd.Context())
	if !ok {
		t.Fatal("request id not present in the command context")
	}
	if got != id {
		t.Fatalf("context id %q, want %q", got, id)
	}

	// Each invocation gets its own identifier.
	if second := stampRequestID(cmd); second == id {
		t.Fatalf("expected a fresh id, got %q twice", second)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{90, "1:30"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTruncateCell(t *testing.T) {
	if got := truncateCell("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncateCell("multi   space\ttext", 50); got != "multi space text" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("a", 30)
	got := truncateCell(long, 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncated cell = %q", got)
	}
}

func TestMaskSecret(t *testing.T) {
	if got := maskSecret(""); got != "(not set)" {
		t.Errorf("got %q", got)
	}
	if got := maskSecret("shortkey"); got != "********" {
		t.Errorf("got %q", got)
	}
	got := maskSecret("sk-abcdef123456")
	if !strings.HasPrefix(got, "sk-a") || !strings.HasSuffix(got, "3456") || strings.Contains(got, "bcdef12") {
		t.Errorf("got %q", got)
	}
}
