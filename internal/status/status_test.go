package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell/shelltest"
	"github.com/conn-castle/lethe-installer/internal/testutil"
)

const samplePrint = `gui/501/com.lethe.agent = {
	active count = 1
	path = /Users/ada/Library/LaunchAgents/com.lethe.agent.plist
	type = LaunchAgent
	state = running

	program = /opt/homebrew/bin/uv
	arguments = {
		/opt/homebrew/bin/uv
		run
		lethe
	}

	working directory = /Users/ada/.lethe
	runs = 3
	pid = 4821
	immediate reason = speculative
	last exit code = 0
}`

const sampleWaiting = `gui/501/com.lethe.agent = {
	active count = 0
	state = not running
	runs = 4
	last exit code = 1
}`

func fullyInstalled(t *testing.T) paths.Paths {
	t.Helper()
	p := paths.ForHome(t.TempDir())
	testutil.MkdirAll(t, p.InstallRepoMarker())
	testutil.WriteFile(t, p.ConfigFile(), "LLM_PROVIDER=openrouter\n", 0o600)
	return p
}

func TestParsePrint_PID(t *testing.T) {
	info := ParsePrint(samplePrint)
	assert.Equal(t, 4821, info.PID)
	assert.True(t, info.Running)
}

func TestParsePrint_NoPIDUsesStateMarker(t *testing.T) {
	info := ParsePrint(sampleWaiting)
	assert.Zero(t, info.PID)
	assert.False(t, info.Running)

	info = ParsePrint("state = running\n")
	assert.Zero(t, info.PID)
	assert.True(t, info.Running)
}

func TestParsePrint_IgnoresMalformedPID(t *testing.T) {
	info := ParsePrint("pid = abc\nstate = waiting\n")
	assert.Zero(t, info.PID)
	assert.False(t, info.Running)
}

func TestInstalled_RequiresAllThree(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, p paths.Paths)
	}{
		{"missing install dir", func(t *testing.T, p paths.Paths) {
			testutil.WriteFile(t, p.ConfigFile(), "A=1\n", 0o600)
		}},
		{"missing repository marker", func(t *testing.T, p paths.Paths) {
			testutil.MkdirAll(t, p.InstallDir())
			testutil.WriteFile(t, p.ConfigFile(), "A=1\n", 0o600)
		}},
		{"missing config file", func(t *testing.T, p paths.Paths) {
			testutil.MkdirAll(t, p.InstallRepoMarker())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paths.ForHome(t.TempDir())
			tt.setup(t, p)

			probe := NewProbe(shelltest.New(), p)
			assert.False(t, probe.Installed())
			snapshot := probe.Current()
			assert.False(t, snapshot.Installed)
			assert.Equal(t, StateNotInstalled, snapshot.State())
		})
	}
}

func TestInstalled_InstallPathIsFile(t *testing.T) {
	p := paths.ForHome(t.TempDir())
	testutil.WriteFile(t, p.InstallDir(), "not a dir", 0o644)
	testutil.WriteFile(t, p.ConfigFile(), "A=1\n", 0o600)

	assert.False(t, NewProbe(shelltest.New(), p).Installed())
}

func TestCurrent_RunningViaPrint(t *testing.T) {
	p := fullyInstalled(t)
	testutil.WriteFile(t, p.ServiceDescriptor(), "<plist/>", 0o644)
	testutil.MkdirAll(t, p.RepositoryRoot())
	runner := shelltest.New().On("launchctl print", shelltest.Stdout(samplePrint))

	s := NewProbe(runner, p).Current()

	assert.Equal(t, RuntimeStatus{
		RepoAvailable:     true,
		Installed:         true,
		ServiceRegistered: true,
		ServiceLoaded:     true,
		ServiceRunning:    true,
		PID:               4821,
		Source:            SourcePrint,
	}, s)
	assert.True(t, s.HasPID())
	assert.Equal(t, StateRunning, s.State())
	assert.Zero(t, runner.Count("launchctl list"))
}

func TestCurrent_LoadedButStopped(t *testing.T) {
	p := fullyInstalled(t)
	runner := shelltest.New().On("launchctl print", shelltest.Stdout(sampleWaiting))

	s := NewProbe(runner, p).Current()

	assert.True(t, s.ServiceLoaded)
	assert.False(t, s.ServiceRunning)
	assert.False(t, s.HasPID())
	assert.Equal(t, StateStopped, s.State())
}

func TestCurrent_FallsBackToList(t *testing.T) {
	p := fullyInstalled(t)
	runner := shelltest.New().
		On("launchctl print", shelltest.Exit(113, "Bad request.")).
		On("launchctl list", shelltest.Stdout("PID\tStatus\tLabel\n4821\t0\tcom.lethe.agent\n-\t0\tcom.apple.x"))

	s := NewProbe(runner, p).Current()

	assert.Equal(t, SourceList, s.Source)
	assert.True(t, s.ServiceLoaded)
	assert.False(t, s.ServiceRunning)
	assert.Zero(t, s.PID)
}

func TestCurrent_ListWithoutLabel(t *testing.T) {
	p := fullyInstalled(t)
	runner := shelltest.New().
		On("launchctl print", shelltest.Exit(113, "Could not find service")).
		On("launchctl list", shelltest.Stdout("-\t0\tcom.apple.x"))

	s := NewProbe(runner, p).Current()

	assert.False(t, s.ServiceLoaded)
	assert.Equal(t, StateStopped, s.State())
}

func TestCurrent_NoServiceManager(t *testing.T) {
	p := fullyInstalled(t)
	runner := shelltest.New().OnError("launchctl", faults.New(faults.ErrLaunchFailure, "missing"))

	s := NewProbe(runner, p).Current()

	assert.Equal(t, SourceNone, s.Source)
	assert.False(t, s.ServiceLoaded)
	assert.True(t, s.Installed)
}

func TestCurrent_FreshEveryCall(t *testing.T) {
	p := fullyInstalled(t)
	runner := shelltest.New().On("launchctl print", shelltest.Stdout(samplePrint), shelltest.Stdout(sampleWaiting))
	probe := NewProbe(runner, p)

	first := probe.Current()
	second := probe.Current()

	require.True(t, first.ServiceRunning)
	assert.False(t, second.ServiceRunning)
	assert.Equal(t, 2, runner.Count("launchctl print"))
}
