// Package service starts and stops the registered agent through launchctl.
package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/launchd"
	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell"
)

// Output fragments that launchctl prints for a request that is already
// satisfied. Matched case-insensitively against stderr, else stdout.
var (
	StartTolerated     = []string{"already loaded"}
	KickstartTolerated = []string{"Could not find service", "No such process"}
	StopTolerated      = []string{"Could not find service", "Could not find specified service", "No such process", "not loaded"}
)

// Controller drives the agent's launchd job.
type Controller struct {
	runner shell.Runner
	paths  paths.Paths
}

// NewController returns a Controller for p.
func NewController(runner shell.Runner, p paths.Paths) *Controller {
	return &Controller{runner: runner, paths: p}
}

// Start loads the descriptor and then kickstarts the job so it runs now.
// The kickstart is best effort.
func (c *Controller) Start() error {
	if err := c.launchctl(StartTolerated, "load", c.paths.ServiceDescriptor()); err != nil {
		return err
	}
	if err := c.launchctl(KickstartTolerated, "kickstart", "-k", launchd.ServiceTarget()); err != nil {
		logger.WithComponent("service").Warn().Err(err).Msg("Kickstart failed; relying on RunAtLoad")
	}
	return nil
}

// Stop unloads the descriptor.
func (c *Controller) Stop() error {
	return c.launchctl(StopTolerated, "unload", c.paths.ServiceDescriptor())
}

// Restart stops and then starts the job. A tolerated stop outcome is success,
// so a job that was not running is simply started.
func (c *Controller) Restart() error {
	if err := c.Stop(); err != nil {
		return err
	}
	return c.Start()
}

// launchctl runs one launchctl command after confirming the descriptor exists.
func (c *Controller) launchctl(tolerated []string, args ...string) error {
	descriptor := c.paths.ServiceDescriptor()
	if _, err := os.Stat(descriptor); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return faults.New(faults.ErrServiceUnavailable, fmt.Sprintf(messages.ServiceDescriptorMissingFmt, descriptor))
		}
		return faults.Wrap(faults.ErrServiceUnavailable, fmt.Sprintf(messages.ServiceDescriptorStatFmt, descriptor, err), err)
	}

	cmd := launchd.Launchctl(args...)
	result, err := c.runner.Run(cmd)
	if err != nil {
		return err
	}
	if result.Success() {
		return nil
	}

	output := result.Output()
	if launchd.MatchesAny(output, tolerated) {
		logger.WithComponent("service").Debug().Str("command", cmd.String()).Str("output", output).Msg("Tolerated launchctl outcome")
		return nil
	}
	if output == "" {
		output = fmt.Sprintf(messages.ServiceExitCodeFmt, result.ExitCode)
	}
	return faults.New(faults.ErrCommandFailed, fmt.Sprintf(messages.ServiceCommandFailedFmt, output))
}
