// Package paths derives every filesystem location the installer touches from a
// home directory. All methods are pure and recompute on each call.
package paths

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/lethe-installer/internal/messages"
)

// ServiceLabel identifies the agent in every launchd lookup.
const ServiceLabel = "com.lethe.agent"

// RepoMarker is the entry that distinguishes a checkout from a plain directory.
const RepoMarker = ".git"

// EnvFileName is the agent's environment file name in both config and install dirs.
const EnvFileName = ".env"

// Paths resolves locations relative to Home.
type Paths struct {
	Home string
}

// ForHome returns Paths rooted at home.
func ForHome(home string) Paths {
	return Paths{Home: home}
}

// Default returns Paths for the current user's home directory.
func Default() (Paths, error) {
	home, err := homedir.Dir()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.PathsResolveHomeFmt, err)
	}
	return ForHome(home), nil
}

// RepositoryRoot is the developer checkout holding the helper scripts.
func (p Paths) RepositoryRoot() string {
	return filepath.Join(p.Home, "devel", "lethe")
}

// InstallScript is the repository's install helper.
func (p Paths) InstallScript() string {
	return filepath.Join(p.RepositoryRoot(), "install.sh")
}

// UpdateScript is the repository's update helper.
func (p Paths) UpdateScript() string {
	return filepath.Join(p.RepositoryRoot(), "update.sh")
}

// UninstallScript is the repository's uninstall helper.
func (p Paths) UninstallScript() string {
	return filepath.Join(p.RepositoryRoot(), "uninstall.sh")
}

// InstallDir is where the agent checkout lives and runs from.
func (p Paths) InstallDir() string {
	return filepath.Join(p.Home, ".lethe")
}

// InstallRepoMarker is the repository marker inside InstallDir.
func (p Paths) InstallRepoMarker() string {
	return filepath.Join(p.InstallDir(), RepoMarker)
}

// InstallEnvFile is the symlink the agent reads its environment through.
func (p Paths) InstallEnvFile() string {
	return filepath.Join(p.InstallDir(), EnvFileName)
}

// ConfigDir holds the authoritative environment file.
func (p Paths) ConfigDir() string {
	return filepath.Join(p.Home, ".config", "lethe")
}

// ConfigFile is the authoritative environment file.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir(), EnvFileName)
}

// LockFile serializes mutating CLI actions. It sits in the config directory,
// which outlives uninstall.
func (p Paths) LockFile() string {
	return filepath.Join(p.ConfigDir(), "lethectl.lock")
}

// WorkspaceDir is the agent's working data directory.
func (p Paths) WorkspaceDir() string {
	return filepath.Join(p.Home, "lethe")
}

// MemoryDir is the agent's memory store inside the workspace.
func (p Paths) MemoryDir() string {
	return filepath.Join(p.WorkspaceDir(), "data", "memory")
}

// LaunchAgentsDir holds per-user launchd descriptors.
func (p Paths) LaunchAgentsDir() string {
	return filepath.Join(p.Home, "Library", "LaunchAgents")
}

// ServiceDescriptor is the launchd plist for ServiceLabel.
func (p Paths) ServiceDescriptor() string {
	return filepath.Join(p.LaunchAgentsDir(), ServiceLabel+".plist")
}

// LogsDir holds agent and installer logs.
func (p Paths) LogsDir() string {
	return filepath.Join(p.Home, "Library", "Logs")
}

// StdoutLog receives the agent's standard output.
func (p Paths) StdoutLog() string {
	return filepath.Join(p.LogsDir(), "lethe.log")
}

// StderrLog receives the agent's standard error.
func (p Paths) StderrLog() string {
	return filepath.Join(p.LogsDir(), "lethe.error.log")
}

// InstallerLog is the lethectl diagnostic log.
func (p Paths) InstallerLog() string {
	return filepath.Join(p.LogsDir(), "lethectl.log")
}
