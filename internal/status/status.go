// Package status reconciles the agent's installed and runtime state by probing
// the filesystem and launchd. Nothing is cached between probes.
package status

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/conn-castle/lethe-installer/internal/launchd"
	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell"
)

// Source records which launchd query produced the service fields.
type Source string

// Query sources.
const (
	SourceNone  Source = "none"
	SourcePrint Source = "print"
	SourceList  Source = "list"
)

// RuntimeStatus is one snapshot of ground truth.
type RuntimeStatus struct {
	RepoAvailable     bool
	Installed         bool
	ServiceRegistered bool
	ServiceLoaded     bool
	ServiceRunning    bool
	// PID is zero when unknown.
	PID    int
	Source Source
}

// HasPID reports whether a process id was extracted.
func (s RuntimeStatus) HasPID() bool {
	return s.PID > 0
}

// State is the display state derived from a snapshot.
type State string

// Display states.
const (
	StateNotInstalled State = "not installed"
	StateStopped      State = "stopped"
	StateRunning      State = "running"
)

// State derives the display state from s.
func (s RuntimeStatus) State() State {
	switch {
	case !s.Installed:
		return StateNotInstalled
	case s.ServiceRunning:
		return StateRunning
	default:
		return StateStopped
	}
}

// Probe reads installation and service state.
type Probe struct {
	runner shell.Runner
	paths  paths.Paths
}

// NewProbe returns a Probe for p.
func NewProbe(runner shell.Runner, p paths.Paths) *Probe {
	return &Probe{runner: runner, paths: p}
}

// Current returns a fresh snapshot.
func (p *Probe) Current() RuntimeStatus {
	status := RuntimeStatus{
		RepoAvailable:     exists(p.paths.RepositoryRoot()),
		Installed:         p.Installed(),
		ServiceRegistered: exists(p.paths.ServiceDescriptor()),
		Source:            SourceNone,
	}

	if info, ok := p.queryPrint(); ok {
		status.Source = SourcePrint
		status.ServiceLoaded = true
		status.ServiceRunning = info.Running
		status.PID = info.PID
		return status
	}
	if loaded, ok := p.queryList(); ok {
		status.Source = SourceList
		status.ServiceLoaded = loaded
	}
	return status
}

// Installed requires the install directory, its repository marker, and the
// config file. Any one missing means a partial or failed install.
func (p *Probe) Installed() bool {
	return isDir(p.paths.InstallDir()) &&
		exists(p.paths.InstallRepoMarker()) &&
		exists(p.paths.ConfigFile())
}

func (p *Probe) queryPrint() (PrintInfo, bool) {
	result, err := p.runner.Run(launchd.Launchctl("print", launchd.ServiceTarget()))
	if err != nil || !result.Success() {
		logger.WithComponent("status").Debug().Err(err).Int("exit_code", result.ExitCode).Msg("launchctl print unavailable; falling back to list")
		return PrintInfo{}, false
	}
	return ParsePrint(result.Stdout), true
}

func (p *Probe) queryList() (bool, bool) {
	result, err := p.runner.Run(launchd.Launchctl("list"))
	if err != nil || !result.Success() {
		return false, false
	}
	return strings.Contains(result.Stdout, paths.ServiceLabel), true
}

// PrintInfo is what ParsePrint extracts from launchctl print output.
type PrintInfo struct {
	PID     int
	Running bool
}

// ParsePrint extracts the pid and running state from launchctl print output.
// A positive pid implies running; otherwise an explicit "state = running" line decides.
func ParsePrint(output string) PrintInfo {
	var info PrintInfo
	stateRunning := false
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "pid":
			if info.PID != 0 {
				continue
			}
			if pid, err := strconv.Atoi(value); err == nil && pid > 0 {
				info.PID = pid
			}
		case "state":
			if value == "running" {
				stateRunning = true
			}
		}
	}
	info.Running = info.PID > 0 || stateRunning
	return info
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
