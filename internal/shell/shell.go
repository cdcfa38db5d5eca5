// Package shell runs external programs and captures their results.
package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
)

// Command describes one external program invocation.
type Command struct {
	// Path is the executable to run. It is not interpreted by a shell.
	Path string
	Args []string
	// Dir is the working directory; empty inherits the caller's.
	Dir string
	// Env holds overrides merged onto the inherited environment.
	Env map[string]string
	// Passthrough streams output to the executor's writers instead of capturing it.
	Passthrough bool
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Path)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// Result is the outcome of a command that was started.
// Stdout and Stderr are trimmed of surrounding whitespace.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Output returns stderr when non-empty, otherwise stdout.
func (r Result) Output() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Runner executes commands. A non-zero exit is not an error; only a failure to
// start the process is.
type Runner interface {
	Run(cmd Command) (Result, error)
}

// Executor runs commands as child processes.
type Executor struct {
	// Stdout and Stderr receive passthrough output. Nil means the process's own streams.
	Stdout io.Writer
	Stderr io.Writer
	// Environ returns the inherited environment. Nil means os.Environ.
	Environ func() []string
}

// NewExecutor returns an Executor wired to the process's own streams and environment.
func NewExecutor() *Executor {
	return &Executor{}
}

// Run starts cmd, waits for it to exit, and returns its result.
func (e *Executor) Run(c Command) (Result, error) {
	log := logger.WithComponent("shell")

	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = MergeEnv(e.environ(), c.Env)
	}

	var stdout, stderr bytes.Buffer
	if c.Passthrough {
		cmd.Stdout = e.stdout()
		cmd.Stderr = e.stderr()
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		log.Error().Err(err).Str("command", c.String()).Msg("Failed to launch command")
		return Result{}, faults.Wrap(faults.ErrLaunchFailure, fmt.Sprintf(messages.ShellLaunchFailedFmt, c.Path, err), err)
	}

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, faults.Wrap(faults.ErrLaunchFailure, fmt.Sprintf(messages.ShellWaitFailedFmt, c.Path, err), err)
		}
		exitCode = exitErr.ExitCode()
	}

	result := Result{
		ExitCode: exitCode,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
	}
	log.Debug().
		Str("command", c.String()).
		Str("dir", c.Dir).
		Int("exit_code", result.ExitCode).
		Dur("elapsed", time.Since(started)).
		Msg("Command finished")
	return result, nil
}

func (e *Executor) environ() []string {
	if e.Environ != nil {
		return e.Environ()
	}
	return os.Environ()
}

func (e *Executor) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e *Executor) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}
