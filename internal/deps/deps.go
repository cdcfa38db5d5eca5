// Package deps ensures the external tools the agent needs are installed.
package deps

import (
	"fmt"
	"path/filepath"

	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/shell"
)

// Tool is a command that must resolve on the search path and the Homebrew
// package that provides it.
type Tool struct {
	Command string
	Package string
}

// RequiredTools are checked, in order, before anything else is installed.
var RequiredTools = []Tool{
	{Command: "git", Package: "git"},
	{Command: "uv", Package: "uv"},
	{Command: "npm", Package: "node"},
}

// BrowserCommand is the runtime dependency installed through npm.
const BrowserCommand = "agent-browser"

// HomebrewCandidates are checked before falling back to a which lookup.
var HomebrewCandidates = []string{
	"/opt/homebrew/bin/brew",
	"/usr/local/bin/brew",
}

// Installer resolves and installs tools.
type Installer struct {
	runner shell.Runner
	sys    System
}

// NewInstaller returns an Installer using runner for every command.
// sys may be nil to use the real filesystem.
func NewInstaller(runner shell.Runner, sys System) *Installer {
	if sys == nil {
		sys = RealSystem{}
	}
	return &Installer{runner: runner, sys: sys}
}

// CommandExists reports whether name resolves on the fixed search path.
func (i *Installer) CommandExists(name string) bool {
	_, ok := i.which(name)
	return ok
}

// which returns the resolved path of name. Launch failures count as absent.
func (i *Installer) which(name string) (string, bool) {
	result, err := i.runner.Run(shell.Tool("which", name))
	if err != nil || !result.Success() || result.Stdout == "" {
		return "", false
	}
	return result.Stdout, true
}

// ResolveBinary returns the absolute path of name, checking each search
// directory for an executable before running which.
func (i *Installer) ResolveBinary(name string) (string, error) {
	for _, dir := range shell.SearchDirs() {
		candidate := filepath.Join(dir, name)
		if i.sys.IsExecutable(candidate) {
			return candidate, nil
		}
	}
	if path, ok := i.which(name); ok {
		return path, nil
	}
	return "", faults.New(faults.ErrMissingDependency, fmt.Sprintf(messages.DepsMissingFmt, name))
}

// EnsureTools installs every missing tool, stopping at the first failure.
func (i *Installer) EnsureTools(tools []Tool) error {
	for _, tool := range tools {
		if err := i.EnsureTool(tool); err != nil {
			return err
		}
	}
	return nil
}

// EnsureTool installs tool through Homebrew when its command is absent and
// verifies the command resolves afterwards.
func (i *Installer) EnsureTool(tool Tool) error {
	log := logger.WithComponent("deps")
	if i.CommandExists(tool.Command) {
		log.Debug().Str("tool", tool.Command).Msg("Tool present")
		return nil
	}

	brew, err := i.ResolveHomebrew()
	if err != nil {
		return err
	}

	if i.packageInstalled(brew, tool.Package) {
		log.Info().Str("package", tool.Package).Msg("Package already installed; skipping brew install")
	} else {
		log.Info().Str("package", tool.Package).Str("brew", brew).Msg("Installing package")
		if _, err := shell.RunChecked(i.runner, brewCommand(brew, "install", tool.Package), faults.ErrInstallFailed); err != nil {
			return err
		}
	}

	if !i.CommandExists(tool.Command) {
		return faults.New(faults.ErrInstallFailed, fmt.Sprintf(messages.DepsStillUnavailableFmt, tool.Package, tool.Command))
	}
	return nil
}

// EnsureRuntimeDependencies installs the browser automation CLI through npm
// and lets it install its own browser dependencies.
func (i *Installer) EnsureRuntimeDependencies() error {
	if !i.CommandExists(BrowserCommand) {
		logger.WithComponent("deps").Info().Str("tool", BrowserCommand).Msg("Installing with npm")
		if _, err := shell.RunChecked(i.runner, shell.Tool("npm", "install", "-g", BrowserCommand), faults.ErrInstallFailed); err != nil {
			return err
		}
		if !i.CommandExists(BrowserCommand) {
			return faults.New(faults.ErrInstallFailed, fmt.Sprintf(messages.DepsRuntimeStillUnavailableFmt, BrowserCommand))
		}
	}
	_, err := shell.RunChecked(i.runner, shell.Tool(BrowserCommand, "install", "--with-deps"), faults.ErrInstallFailed)
	return err
}

// ResolveHomebrew locates the brew binary.
func (i *Installer) ResolveHomebrew() (string, error) {
	for _, candidate := range HomebrewCandidates {
		if i.sys.IsExecutable(candidate) {
			return candidate, nil
		}
	}
	if path, ok := i.which("brew"); ok {
		return path, nil
	}
	return "", faults.New(faults.ErrMissingDependency, fmt.Sprintf(messages.DepsMissingFmt, messages.DepsHomebrewGuidance))
}

// packageInstalled reports whether brew lists pkg with a version.
func (i *Installer) packageInstalled(brew string, pkg string) bool {
	result, err := i.runner.Run(brewCommand(brew, "list", "--versions", pkg))
	return err == nil && result.Success() && result.Stdout != ""
}

func brewCommand(brew string, args ...string) shell.Command {
	return shell.Command{
		Path: brew,
		Args: args,
		Env:  map[string]string{"PATH": shell.ToolSearchPath},
	}
}
