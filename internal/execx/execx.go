// Package execx runs external commands on behalf of probes and strategies.
// Every invocation is bound to a context so a stalled installer or download
// can never hang the pipeline.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Result captures the output of a completed command run.
type Result struct {
	Stdout string
	Stderr string
}

// PrimaryOutput returns stderr if present, otherwise stdout.
func (r Result) PrimaryOutput() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Runner executes commands with a per-invocation timeout ceiling.
type Runner struct {
	Timeout time.Duration
	Env     []string
	Dir     string
}

// Run executes name with args and collects stdout/stderr. The command is
// killed when the runner timeout or the caller's context expires, whichever
// comes first.
func (r Runner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if len(r.Env) > 0 {
		cmd.Env = r.Env
	}
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	res := Result{
		Stdout: strings.TrimSpace(stdoutBuf.String()),
		Stderr: strings.TrimSpace(stderrBuf.String()),
	}

	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			return res, fmt.Errorf("command %s timed out: %w", name, ctxErr)
		}
		if out := res.PrimaryOutput(); out != "" {
			return res, fmt.Errorf("%w: %s", err, firstLines(out, 5))
		}
		return res, err
	}

	return res, nil
}

// ExitCode extracts the process exit code from a Run error, or -1 when the
// command never ran.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + " [...]"
}
