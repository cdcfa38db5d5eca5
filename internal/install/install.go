// Package install orchestrates provisioning of the agent as an ordered list of
// named, independently runnable steps.
package install

import (
	"fmt"
	"os"
	"time"

	"github.com/conn-castle/lethe-installer/internal/agentenv"
	"github.com/conn-castle/lethe-installer/internal/config"
	"github.com/conn-castle/lethe-installer/internal/deps"
	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/launchd"
	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/repo"
	"github.com/conn-castle/lethe-installer/internal/shell"
)

// Step names, in pipeline order.
const (
	StepTools       = "tools"
	StepRepository  = "repository"
	StepRuntime     = "runtime"
	StepEnvironment = "environment"
	StepPackages    = "packages"
	StepService     = "service"
)

// ProgressFunc receives a human-readable message after each completed step.
type ProgressFunc func(message string)

// Options controls installer behavior.
type Options struct {
	Runner   shell.Runner
	Paths    paths.Paths
	Progress ProgressFunc
	// System probes executables during dependency resolution. Nil uses the real filesystem.
	System deps.System
	// Now stamps the env file header. Nil uses time.Now.
	Now func() time.Time
}

// Result names the locations an install produced.
type Result struct {
	InstallDir        string
	ConfigFile        string
	ServiceDescriptor string
}

// Step is one pipeline stage. Done is reported through ProgressFunc after Run succeeds.
type Step struct {
	Name string
	Done string
	Run  func() error
}

// Installer runs the provisioning pipeline.
type Installer struct {
	paths    paths.Paths
	runner   shell.Runner
	progress ProgressFunc
	deps     *deps.Installer
	repo     *repo.Provisioner
	env      *agentenv.Writer
	service  *launchd.Installer
}

// New returns an Installer wired from opts.
func New(opts Options) (*Installer, error) {
	if opts.Runner == nil {
		return nil, fmt.Errorf(messages.InstallRunnerRequired)
	}
	if opts.Paths.Home == "" {
		return nil, fmt.Errorf(messages.InstallHomeRequired)
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(string) {}
	}
	depInstaller := deps.NewInstaller(opts.Runner, opts.System)
	writer := agentenv.NewWriter(opts.Paths)
	if opts.Now != nil {
		writer.WithClock(opts.Now)
	}
	return &Installer{
		paths:    opts.Paths,
		runner:   opts.Runner,
		progress: progress,
		deps:     depInstaller,
		repo:     repo.NewProvisioner(opts.Runner, opts.Paths),
		env:      writer,
		service:  launchd.NewInstaller(opts.Runner, opts.Paths, depInstaller),
	}, nil
}

// Steps returns the pipeline for cfg in execution order.
func (i *Installer) Steps(cfg config.InstallConfiguration) []Step {
	return []Step{
		{Name: StepTools, Done: messages.InstallStepToolsDone, Run: func() error {
			return i.deps.EnsureTools(deps.RequiredTools)
		}},
		{Name: StepRepository, Done: messages.InstallStepRepositoryDone, Run: i.repo.Sync},
		{Name: StepRuntime, Done: messages.InstallStepRuntimeDone, Run: i.deps.EnsureRuntimeDependencies},
		{Name: StepEnvironment, Done: messages.InstallStepEnvironmentDone, Run: func() error {
			_, err := i.env.Write(cfg)
			return err
		}},
		{Name: StepPackages, Done: messages.InstallStepPackagesDone, Run: i.syncPackages},
		{Name: StepService, Done: messages.InstallStepServiceDone, Run: i.service.Install},
	}
}

// StepNames lists every step name in pipeline order.
func StepNames() []string {
	return []string{StepTools, StepRepository, StepRuntime, StepEnvironment, StepPackages, StepService}
}

// Run executes every step in order and stops at the first failure.
// Re-running after a failure or a success is safe.
func (i *Installer) Run(cfg config.InstallConfiguration) (Result, error) {
	if err := i.runSteps(i.Steps(cfg)); err != nil {
		return Result{}, err
	}
	return i.result(), nil
}

// RunStep executes the single step called name.
func (i *Installer) RunStep(name string, cfg config.InstallConfiguration) (Result, error) {
	for _, step := range i.Steps(cfg) {
		if step.Name == name {
			if err := i.runSteps([]Step{step}); err != nil {
				return Result{}, err
			}
			return i.result(), nil
		}
	}
	return Result{}, fmt.Errorf(messages.InstallUnknownStepFmt, name, StepNames())
}

func (i *Installer) runSteps(steps []Step) error {
	log := logger.WithComponent("install")
	for _, step := range steps {
		started := time.Now()
		log.Info().Str("step", step.Name).Msg("Step started")
		if err := step.Run(); err != nil {
			log.Error().Err(err).Str("step", step.Name).Msg("Step failed")
			return err
		}
		log.Info().Str("step", step.Name).Dur("elapsed", time.Since(started)).Msg("Step finished")
		i.progress(step.Done)
	}
	return nil
}

// syncPackages installs the agent's Python dependencies inside the checkout.
func (i *Installer) syncPackages() error {
	cmd := shell.Tool("uv", "sync")
	cmd.Dir = i.paths.InstallDir()
	_, err := shell.RunChecked(i.runner, cmd, faults.ErrInstallFailed)
	return err
}

func (i *Installer) result() Result {
	return Result{
		InstallDir:        i.paths.InstallDir(),
		ConfigFile:        i.paths.ConfigFile(),
		ServiceDescriptor: i.paths.ServiceDescriptor(),
	}
}

// Uninstall unloads and removes the descriptor and deletes the install
// directory. The config directory is kept so a reinstall can reuse it.
func (i *Installer) Uninstall() error {
	if err := i.service.Remove(); err != nil {
		return err
	}
	dir := i.paths.InstallDir()
	if err := os.RemoveAll(dir); err != nil {
		return faults.Wrap(faults.ErrInstallFailed, fmt.Sprintf(messages.InstallRemoveDirFmt, dir, err), err)
	}
	logger.WithComponent("install").Info().Str("dir", dir).Msg("Uninstalled")
	i.progress(messages.InstallUninstallDone)
	return nil
}
