package launchd

import (
	"fmt"

	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell"
)

// BinaryResolver resolves a command name to an absolute path.
type BinaryResolver interface {
	ResolveBinary(name string) (string, error)
}

// Installer writes the descriptor and loads it.
type Installer struct {
	runner   shell.Runner
	paths    paths.Paths
	resolver BinaryResolver
	sys      System
}

// NewInstaller returns an Installer for p.
func NewInstaller(runner shell.Runner, p paths.Paths, resolver BinaryResolver) *Installer {
	return &Installer{runner: runner, paths: p, resolver: resolver, sys: RealSystem{}}
}

// Install resolves the runtime, writes the descriptor, replaces any prior
// registration, and loads it. Only the final load must succeed.
func (i *Installer) Install() error {
	runtimePath, err := i.resolver.ResolveBinary(RuntimeCommand)
	if err != nil {
		return err
	}

	data, err := NewDescriptor(i.paths, runtimePath).Encode()
	if err != nil {
		return faults.Wrap(faults.ErrInstallFailed, err.Error(), err)
	}
	for _, dir := range []string{i.paths.LaunchAgentsDir(), i.paths.LogsDir()} {
		if err := i.sys.MkdirAll(dir, 0o755); err != nil {
			return faults.Wrap(faults.ErrInstallFailed, fmt.Sprintf(messages.LaunchdCreateDirFmt, dir, err), err)
		}
	}
	path := i.paths.ServiceDescriptor()
	if err := i.sys.WriteFileAtomic(path, data, 0o644); err != nil {
		return faults.Wrap(faults.ErrInstallFailed, fmt.Sprintf(messages.LaunchdWriteFmt, path, err), err)
	}

	log := logger.WithComponent("launchd")
	if result, err := i.runner.Run(Launchctl("unload", path)); err != nil || !result.Success() {
		log.Debug().Str("output", result.Output()).Msg("Prior registration not unloaded; continuing")
	}
	if _, err := shell.RunChecked(i.runner, Launchctl("load", path), faults.ErrInstallFailed); err != nil {
		return err
	}
	log.Info().Str("descriptor", path).Str("runtime", runtimePath).Msg("Service registered")
	return nil
}

// Remove best-effort unloads the descriptor and deletes it.
func (i *Installer) Remove() error {
	path := i.paths.ServiceDescriptor()
	_, _ = i.runner.Run(Launchctl("unload", path))
	if err := i.sys.RemoveAll(path); err != nil {
		return faults.Wrap(faults.ErrInstallFailed, fmt.Sprintf(messages.LaunchdRemoveFmt, path, err), err)
	}
	return nil
}
