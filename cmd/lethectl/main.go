package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/conn-castle/lethe-installer/internal/messages"
)

var executeFunc = execute

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError ends the process with Code and prints nothing. Commands
// that already reported their outcome return it.
type SilentExitError struct {
	Code int
}

func (e *SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	root := newRootCmd()
	root.Version = versionString()
	root.SetVersionTemplate(messages.VersionTemplate)
	root.SetArgs(commandArgs(args))
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

// commandArgs drops the program name.
func commandArgs(args []string) []string {
	if len(args) < 2 {
		return []string{}
	}
	return args[1:]
}

func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	err := executeFunc(args, stdout, stderr)
	if err == nil {
		return
	}
	code, silent := exitCode(err)
	if !silent {
		_, _ = fmt.Fprintln(stderr, err)
	}
	exit(code)
}

// exitCode maps err to a process exit status. A child's exit status is passed
// through so scripted callers see the same code launchctl or git returned.
func exitCode(err error) (code int, silent bool) {
	var silentErr *SilentExitError
	if errors.As(err, &silentErr) {
		return silentErr.Code, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode(), false
	}
	return 1, false
}

func versionString() string {
	var meta []string
	if known(Commit) {
		meta = append(meta, fmt.Sprintf(messages.VersionCommitFmt, Commit))
	}
	if known(BuildDate) {
		meta = append(meta, fmt.Sprintf(messages.VersionBuildFmt, BuildDate))
	}
	if len(meta) == 0 {
		return Version
	}
	return fmt.Sprintf(messages.VersionFullFmt, Version, strings.Join(meta, ", "))
}

func known(value string) bool {
	return value != "" && value != "unknown"
}
