package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// ErrNotInstalled is returned when the requested tool is not on PATH.
var ErrNotInstalled = errors.New("tool not found in PATH")

// Invocation describes one subprocess call.
type Invocation struct {
	Name    string
	Args    []string
	Dir     string
	Env     []string
	Timeout time.Duration

	// Stream, when set, receives combined stdout and stderr as it is
	// produced in addition to being captured.
	Stream io.Writer

	// Stdin is attached to the process for interactive sessions.
	Stdin io.Reader
}

// String renders the invocation as a shell-like command line.
func (i Invocation) String() string {
	return strings.TrimSpace(i.Name + " " + strings.Join(i.Args, " "))
}

// Output is the captured result of a finished subprocess.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes invocations.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Output, error)
	LookPath(name string) (string, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
	lookPath    func(file string) (string, error)
	logger      *slog.Logger
}

// NewExecRunner creates an ExecRunner using exec.CommandContext.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
		logger:      logger,
	}
}

// Verify ExecRunner implements Runner.
var _ Runner = (*ExecRunner)(nil)

// LookPath resolves name on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := r.lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}
	return path, nil
}

// Run executes inv and waits for it. A non-zero exit is reported as an
// error that carries the trimmed stderr; the Output is still populated.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Output, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := r.execCommand(ctx, inv.Name, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = inv.Stdin
	if len(inv.Env) > 0 {
		cmd.Env = append(cmd.Environ(), inv.Env...)
	}

	var stdout, stderr bytes.Buffer
	if inv.Stream != nil {
		cmd.Stdout = io.MultiWriter(&stdout, inv.Stream)
		cmd.Stderr = io.MultiWriter(&stderr, inv.Stream)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	r.logger.Debug("running command", "cmd", inv.Name, "args", inv.Args, "dir", inv.Dir)

	start := time.Now()
	err := cmd.Run()
	out := Output{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	r.logger.Debug("command finished", "cmd", inv.Name, "exit", out.ExitCode, "duration", out.Duration)

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return out, fmt.Errorf("%w: %s", ErrNotInstalled, inv.Name)
		}
		if ctx.Err() == context.DeadlineExceeded {
			return out, fmt.Errorf("%s timed out after %s", inv, inv.Timeout)
		}
		if msg := strings.TrimSpace(out.Stderr); msg != "" {
			return out, fmt.Errorf("%s: %w", lastLines(msg, 5), err)
		}
		return out, fmt.Errorf("%s failed: %w", inv, err)
	}
	return out, nil
}

// lastLines keeps the tail of multi-line tool output for error messages.
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
