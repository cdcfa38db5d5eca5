// Package repo clones or updates the agent's source checkout.
package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell"
)

// Fixed source identity.
const (
	RemoteURL = "https://github.com/atemerev/lethe.git"
	Branch    = "main"
)

// Provisioner keeps the install directory checkout on Branch.
type Provisioner struct {
	runner shell.Runner
	paths  paths.Paths
}

// NewProvisioner returns a Provisioner for p.
func NewProvisioner(runner shell.Runner, p paths.Paths) *Provisioner {
	return &Provisioner{runner: runner, paths: p}
}

// Sync updates an existing checkout or clones a fresh one.
// A dirty or diverged tree fails with the git output; nothing is reset.
func (p *Provisioner) Sync() error {
	if p.HasCheckout() {
		return p.update()
	}
	return p.clone()
}

// HasCheckout reports whether the install directory holds a repository marker.
func (p *Provisioner) HasCheckout() bool {
	_, err := os.Stat(p.paths.InstallRepoMarker())
	return err == nil
}

// UpdateCommands are run in order against an existing checkout.
func UpdateCommands(dir string) []shell.Command {
	return []shell.Command{
		shell.Tool("git", "-C", dir, "fetch", "origin", "--tags"),
		shell.Tool("git", "-C", dir, "checkout", Branch),
		shell.Tool("git", "-C", dir, "pull", "origin", Branch),
	}
}

func (p *Provisioner) update() error {
	dir := p.paths.InstallDir()
	logger.WithComponent("repo").Info().Str("dir", dir).Str("branch", Branch).Msg("Updating checkout")
	for _, cmd := range UpdateCommands(dir) {
		if _, err := shell.RunChecked(p.runner, cmd, faults.ErrInstallFailed); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) clone() error {
	dir := p.paths.InstallDir()
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return faults.Wrap(faults.ErrInstallFailed, fmt.Sprintf(messages.RepoCreateParentFmt, parent, err), err)
	}
	logger.WithComponent("repo").Info().Str("dir", dir).Str("remote", RemoteURL).Msg("Cloning checkout")
	_, err := shell.RunChecked(p.runner, shell.Tool("git", "clone", RemoteURL, dir), faults.ErrInstallFailed)
	return err
}
