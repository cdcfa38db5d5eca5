package terminal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell"
)

// OsascriptPath runs AppleScript from the command line.
const OsascriptPath = "/usr/bin/osascript"

// Action is a helper script in the developer checkout.
type Action string

// Script actions.
const (
	ActionInstall   Action = "install"
	ActionUpdate    Action = "update"
	ActionUninstall Action = "uninstall"
)

// Actions lists every script action.
func Actions() []Action {
	return []Action{ActionInstall, ActionUpdate, ActionUninstall}
}

// ParseAction maps a name to an Action.
func ParseAction(name string) (Action, error) {
	for _, action := range Actions() {
		if string(action) == name {
			return action, nil
		}
	}
	return "", fmt.Errorf(messages.ScriptUnknownActionFmt, name)
}

// Title is the human-readable name of the action.
func (a Action) Title() string {
	switch a {
	case ActionInstall:
		return "Install Lethe"
	case ActionUpdate:
		return "Update Lethe"
	case ActionUninstall:
		return "Uninstall Lethe"
	default:
		return string(a)
	}
}

// ErrScriptMissing indicates the action's script does not exist.
var ErrScriptMissing = errors.New("script missing")

// ScriptRunner opens repository scripts in a new Terminal window so their
// scrolling output stays visible to the user.
type ScriptRunner struct {
	runner shell.Runner
	paths  paths.Paths
}

// NewScriptRunner returns a ScriptRunner for p.
func NewScriptRunner(runner shell.Runner, p paths.Paths) *ScriptRunner {
	return &ScriptRunner{runner: runner, paths: p}
}

// ScriptPath returns the script for action.
func (s *ScriptRunner) ScriptPath(action Action) string {
	switch action {
	case ActionUpdate:
		return s.paths.UpdateScript()
	case ActionUninstall:
		return s.paths.UninstallScript()
	default:
		return s.paths.InstallScript()
	}
}

// Command is the shell line Terminal runs for action with args.
// Every interpolated value is single-quoted.
func (s *ScriptRunner) Command(action Action, args []string) string {
	parts := []string{"/bin/zsh", ShellQuote(s.ScriptPath(action))}
	for _, arg := range args {
		parts = append(parts, ShellQuote(arg))
	}
	return "cd " + ShellQuote(s.paths.RepositoryRoot()) + " && " + strings.Join(parts, " ")
}

// AppleScript is the program that opens Terminal and runs command.
func AppleScript(command string) string {
	return strings.Join([]string{
		`tell application "Terminal"`,
		`    activate`,
		`    do script "` + AppleScriptEscape(command) + `"`,
		`end tell`,
	}, "\n")
}

// Run opens Terminal running the script for action.
func (s *ScriptRunner) Run(action Action, args []string) error {
	script := s.ScriptPath(action)
	if _, err := os.Stat(script); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(messages.ScriptMissingFmt, ErrScriptMissing, script)
		}
		return fmt.Errorf(messages.ScriptStatFmt, script, err)
	}

	command := s.Command(action, args)
	logger.WithComponent("terminal").Info().Str("action", string(action)).Str("command", command).Msg("Opening script in Terminal")
	result, err := s.runner.Run(shell.Command{
		Path: OsascriptPath,
		Args: []string{"-e", AppleScript(command)},
	})
	if err != nil {
		return err
	}
	if !result.Success() {
		if details := result.Output(); details != "" {
			return fmt.Errorf(messages.ScriptOsascriptFailedDetailFmt, result.ExitCode, details)
		}
		return fmt.Errorf(messages.ScriptOsascriptFailedFmt, result.ExitCode)
	}
	return nil
}

// ShellQuote wraps value in single quotes, escaping embedded single quotes.
func ShellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

// AppleScriptEscape escapes value for a double-quoted AppleScript string literal.
func AppleScriptEscape(value string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(value)
}
