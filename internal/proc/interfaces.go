package proc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks github.com/pranshuparmar/procmon/internal/proc Executor

// ErrCommandTimeout is returned when an external command outlives its deadline.
var ErrCommandTimeout = errors.New("command timed out")

// Result is the merged stdout/stderr and exit code of a finished command.
type Result struct {
	Output   []byte
	ExitCode int
}

// Lines splits the output into lines without trailing carriage returns.
func (r Result) Lines() []string {
	return Lines(r.Output)
}

// Executor runs external commands. A non-zero exit is reported through
// Result.ExitCode; the error is reserved for spawn failures and timeouts.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// DefaultTimeout bounds commands when RealExecutor.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// RealExecutor runs commands on the host with a bounded wait.
type RealExecutor struct {
	Timeout time.Duration
}

func (r *RealExecutor) Run(ctx context.Context, name string, args ...string) (Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	// Children that inherit the pipes must not keep Wait blocked after the kill.
	cmd.WaitDelay = time.Second
	out, err := cmd.CombinedOutput()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return Result{Output: out, ExitCode: -1}, fmt.Errorf("%s after %s: %w", name, timeout, ErrCommandTimeout)
		}
		return Result{Output: out, ExitCode: -1}, fmt.Errorf("%s: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Output: out, ExitCode: exitErr.ExitCode()}, nil
	}
	if err != nil {
		return Result{Output: out, ExitCode: -1}, fmt.Errorf("run %s: %w", name, err)
	}
	return Result{Output: out}, nil
}

// Lines splits raw command output into lines.
func Lines(out []byte) []string {
	text := strings.TrimRight(string(out), "\r\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
