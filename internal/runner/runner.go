// Package runner invokes external programs (the project generator, package
// managers and their binaries) with inherited standard streams.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrBinaryNotFound is returned when the requested program is not on PATH.
var ErrBinaryNotFound = errors.New("binary not found")

// Runner runs a program to completion in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// CommandError reports a program that could not be started or exited non-zero.
type CommandError struct {
	// Command is the full command line.
	Command string

	// Dir is the working directory the command ran in.
	Dir string

	// ExitCode is the process exit code, or -1 when it never ran.
	ExitCode int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s failed with exit code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Exec runs programs with os/exec. Zero-value streams fall back to the
// process's own stdin, stdout and stderr.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec creates an Exec bound to the current process's standard streams.
func NewExec() *Exec {
	return &Exec{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes name with args in dir and blocks until it exits.
// Cancelling ctx kills the child process.
func (e *Exec) Run(ctx context.Context, dir, name string, args ...string) error {
	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))

	path, err := exec.LookPath(name)
	if err != nil {
		return &CommandError{
			Command:  cmdline,
			Dir:      dir,
			ExitCode: -1,
			Err:      fmt.Errorf("%w: %s", ErrBinaryNotFound, name),
		}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdin = e.stdin()
	cmd.Stdout = e.stdout()
	cmd.Stderr = e.stderr()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return &CommandError{Command: cmdline, Dir: dir, ExitCode: exitErr.ExitCode(), Err: err}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &CommandError{Command: cmdline, Dir: dir, ExitCode: -1, Err: err}
	}

	return nil
}

func (e *Exec) stdin() io.Reader {
	if e.Stdin != nil {
		return e.Stdin
	}
	return os.Stdin
}

func (e *Exec) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e *Exec) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}
