package shell

import (
	"fmt"
	"strings"

	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/messages"
)

// ToolSearchPath is the PATH every tool lookup and tool invocation runs with.
// GUI and launchd sessions do not inherit a login shell's PATH, so it is fixed.
const ToolSearchPath = "/opt/homebrew/bin:/opt/homebrew/sbin:/usr/local/bin:/usr/local/sbin:/usr/bin:/bin:/usr/sbin:/sbin"

// EnvPath is the launcher used to resolve tools against ToolSearchPath.
const EnvPath = "/usr/bin/env"

// SearchDirs returns the directories of ToolSearchPath in lookup order.
func SearchDirs() []string {
	return strings.Split(ToolSearchPath, ":")
}

// Tool returns a command that runs name through EnvPath with PATH forced to ToolSearchPath.
func Tool(name string, args ...string) Command {
	return Command{
		Path: EnvPath,
		Args: append([]string{name}, args...),
		Env:  map[string]string{"PATH": ToolSearchPath},
	}
}

// RunChecked runs c and converts a non-zero exit into an error of kind.
// The error message is the command's stderr, else stdout, else the command line.
func RunChecked(r Runner, c Command, kind error) (Result, error) {
	result, err := r.Run(c)
	if err != nil {
		return result, err
	}
	if !result.Success() {
		return result, faults.New(kind, FailureDetail(c, result))
	}
	return result, nil
}

// FailureDetail is the user-facing description of a failed command.
func FailureDetail(c Command, result Result) string {
	if out := result.Output(); out != "" {
		return out
	}
	return fmt.Sprintf(messages.ShellCommandFailedFmt, c.String())
}
