package execx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external tool invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env holds extra KEY=VALUE entries appended to the inherited
	// process environment.
	Env []string
}

// String renders the command the way an operator would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands synchronously. Implementations block
// until the child process terminates.
type Runner interface {
	// Run executes the command, streaming its output to the operator.
	Run(ctx context.Context, cmd Command) error
	// Capture executes the command and returns its standard output.
	Capture(ctx context.Context, cmd Command) (string, error)
}

// ExitCode extracts the child process exit code from an error returned by a
// Runner. A nil error maps to 0; an error that carries no exit status maps
// to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// OSRunner is the Runner backed by os/exec. Child stdout and stderr are
// streamed to Stdout/Stderr so the operator sees the external tool's own
// diagnostics as they happen.
type OSRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewOSRunner returns an OSRunner wired to the process's own streams.
func NewOSRunner() *OSRunner {
	return &OSRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run implements Runner.
func (r *OSRunner) Run(ctx context.Context, cmd Command) error {
	c := r.build(ctx, cmd)
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

// Capture implements Runner. Child stderr still streams to the operator so
// diagnostics are not swallowed.
func (r *OSRunner) Capture(ctx context.Context, cmd Command) (string, error) {
	c := r.build(ctx, cmd)
	c.Stderr = r.Stderr
	out, err := c.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return string(out), nil
}

func (r *OSRunner) build(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if os.Getenv("PUBPIPE_DEBUG") == "1" {
		fmt.Fprintf(os.Stderr, "+ %s\n", cmd)
	}
	return c
}

// EchoRunner prints each command instead of executing it. It backs the
// dry-run mode: Run echoes and reports success, Capture echoes and returns
// no output, so commands whose output feeds later stages behave as if the
// tool produced nothing.
type EchoRunner struct {
	Out io.Writer
}

// Run implements Runner.
func (r *EchoRunner) Run(_ context.Context, cmd Command) error {
	fmt.Fprintf(r.Out, "+ %s\n", cmd)
	return nil
}

// Capture implements Runner.
func (r *EchoRunner) Capture(_ context.Context, cmd Command) (string, error) {
	fmt.Fprintf(r.Out, "+ %s\n", cmd)
	return "", nil
}
