package exec

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestRunSuccess(t *testing.T) {
	skipOnWindows(t)

	result, err := Run(context.Background(), Config{
		Command: "echo",
		Args:    []string{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}

	got := strings.TrimSpace(string(result.Stdout))
	if got != "hello world" {
		t.Errorf("Stdout = %q, want %q", got, "hello world")
	}

	if result.Duration <= 0 {
		t.Error("Duration should be positive")
	}
}

func TestRunMissingCommand(t *testing.T) {
	_, err := Run(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestRunNonZeroExit(t *testing.T) {
	skipOnWindows(t)

	result, err := Run(context.Background(), Config{
		Command: "sh",
		Args:    []string{"-c", "exit 3"},
	})
	if err != nil {
		t.Fatalf("non-zero exit should not be an error, got %v", err)
	}

	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
}

func TestRunBinaryNotFound(t *testing.T) {
	_, err := Run(context.Background(), Config{
		Command: "definitely-not-a-real-binary-xyz",
	})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestRunTimeout(t *testing.T) {
	skipOnWindows(t)

	start := time.Now()
	_, err := Run(context.Background(), Config{
		Command: "sleep",
		Args:    []string{"10"},
		Timeout: 100 * time.Millisecond,
	})
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error = %v, want timeout error", err)
	}
	if elapsed > 5*time.Second {
		t.Errorf("command took %v, should have been killed quickly", elapsed)
	}
}

func TestRunCancellation(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := Run(ctx, Config{
		Command: "sleep",
		Args:    []string{"10"},
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestRunStdin(t *testing.T) {
	skipOnWindows(t)

	result, err := Run(context.Background(), Config{
		Command:   "cat",
		StdinData: []byte("piped input"),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if string(result.Stdout) != "piped input" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "piped input")
	}
}

func TestRunStderr(t *testing.T) {
	skipOnWindows(t)

	result, err := Run(context.Background(), Config{
		Command: "sh",
		Args:    []string{"-c", "echo oops >&2"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if strings.TrimSpace(string(result.Stderr)) != "oops" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "oops")
	}
}

func TestWorkNilItem(t *testing.T) {
	skipOnWindows(t)

	work := Work(Config{Command: "echo", Args: []string{"fixed"}})

	out, err := work(context.Background(), nil)
	if err != nil {
		t.Fatalf("work error = %v", err)
	}

	result := out.(*Result)
	if got := strings.TrimSpace(string(result.Stdout)); got != "fixed" {
		t.Errorf("Stdout = %q, want %q", got, "fixed")
	}
}

func TestWorkStringItem(t *testing.T) {
	skipOnWindows(t)

	work := Work(Config{Command: "echo", Args: []string{"fixed"}})

	out, err := work(context.Background(), "item")
	if err != nil {
		t.Fatalf("work error = %v", err)
	}

	result := out.(*Result)
	if got := strings.TrimSpace(string(result.Stdout)); got != "item fixed" {
		t.Errorf("Stdout = %q, want %q", got, "item fixed")
	}
}

func TestWorkSliceItem(t *testing.T) {
	skipOnWindows(t)

	work := Work(Config{Command: "echo", Args: []string{"last"}})

	out, err := work(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("work error = %v", err)
	}

	result := out.(*Result)
	if got := strings.TrimSpace(string(result.Stdout)); got != "a b last" {
		t.Errorf("Stdout = %q, want %q", got, "a b last")
	}
}

func TestWorkDoesNotMutateConfig(t *testing.T) {
	skipOnWindows(t)

	cfg := Config{Command: "echo", Args: []string{"fixed"}}
	work := Work(cfg)

	if _, err := work(context.Background(), "one"); err != nil {
		t.Fatalf("work error = %v", err)
	}

	out, err := work(context.Background(), "two")
	if err != nil {
		t.Fatalf("work error = %v", err)
	}

	result := out.(*Result)
	if got := strings.TrimSpace(string(result.Stdout)); got != "two fixed" {
		t.Errorf("Stdout = %q, want %q", got, "two fixed")
	}
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires unix shell utilities")
	}
}
