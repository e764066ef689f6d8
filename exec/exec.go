// Package exec lets an external command serve as a worker's unit of
// work. It wraps os/exec with a context-aware, timeout-bounded runner and
// a Work adapter that turns a command configuration into a
// worker.WorkFunc.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/bhdz/workersz/worker"
)

// Config holds the configuration for command execution.
type Config struct {
	// Command is the name or path of the command to execute (required)
	Command string

	// Args are the fixed command-line arguments (optional)
	Args []string

	// WorkDir is the working directory for the command (optional)
	WorkDir string

	// Env specifies the environment variables in "KEY=value" format (optional)
	// If nil, the command inherits the parent process environment
	Env []string

	// Timeout specifies the maximum execution duration (optional)
	// If zero, no timeout is enforced (uses parent context)
	Timeout time.Duration

	// StdinData is the data to send to the command's stdin (optional)
	StdinData []byte
}

// Result holds the result of command execution.
type Result struct {
	// Stdout contains the captured stdout
	Stdout []byte

	// Stderr contains the captured stderr
	Stderr []byte

	// ExitCode is the process exit code
	// 0 indicates success, non-zero indicates an error
	ExitCode int

	// Duration is the actual execution time
	Duration time.Duration
}

// Run executes a command with the given configuration.
// It returns a Result containing stdout, stderr, exit code, and duration.
//
// The function respects context cancellation and the configured timeout.
// If the command times out or the context is cancelled, the process is
// killed.
//
// A non-zero exit code is not treated as an error - the Result is
// returned with the exit code populated. This allows the caller to decide
// how to handle non-zero exits. Only actual execution failures (binary
// not found, permission denied, etc.) return an error.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Command == "" {
		return nil, errors.New("command is required")
	}

	// Create context with timeout if specified
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...)

	if cfg.WorkDir != "" {
		cmd.Dir = cfg.WorkDir
	}

	if cfg.Env != nil {
		cmd.Env = cfg.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if len(cfg.StdinData) > 0 {
		cmd.Stdin = bytes.NewReader(cfg.StdinData)
	}

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: 0,
		Duration: duration,
	}

	if err != nil {
		// Check for context errors first (timeout/cancellation)
		if ctx.Err() == context.DeadlineExceeded {
			return result, fmt.Errorf("command timed out after %v", cfg.Timeout)
		}

		if ctx.Err() == context.Canceled {
			return result, fmt.Errorf("command cancelled")
		}

		// Check for normal exit with non-zero code
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Command ran but exited with non-zero code
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}

		// Other execution error (binary not found, permission denied, etc.)
		return result, fmt.Errorf("command execution failed: %w", err)
	}

	return result, nil
}

// Work adapts a command configuration into a worker.WorkFunc. Each
// iteration runs the command once; the iteration's result is the *Result.
//
// When the iteration carries an item, it is inserted ahead of the fixed
// arguments, matching the loop's item-prepended call convention: a string
// item is inserted as-is, a []string item contributes all its elements,
// and any other value is formatted with fmt.Sprint. A nil item runs the
// command with only the fixed arguments.
func Work(cfg Config) worker.WorkFunc {
	return func(ctx context.Context, item any) (any, error) {
		run := cfg

		switch v := item.(type) {
		case nil:
		case string:
			run.Args = append([]string{v}, cfg.Args...)
		case []string:
			run.Args = append(append([]string{}, v...), cfg.Args...)
		default:
			run.Args = append([]string{fmt.Sprint(v)}, cfg.Args...)
		}

		return Run(ctx, run)
	}
}
