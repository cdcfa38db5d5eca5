package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/lethe-installer/internal/config"
	"github.com/conn-castle/lethe-installer/internal/launchd"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell"
	"github.com/conn-castle/lethe-installer/internal/shell/shelltest"
	"github.com/conn-castle/lethe-installer/internal/status"
	"github.com/conn-castle/lethe-installer/internal/testutil"
)

const installTOML = `provider = "openrouter"
api_key = "sk-or-test"
telegram_bot_token = "123:bot"
telegram_user_id = "42"
`

// cli runs lethectl against a scratch home with runner standing in for the host.
type cli struct {
	t      *testing.T
	home   string
	paths  paths.Paths
	runner *shelltest.Runner
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	home := t.TempDir()
	c := &cli{t: t, home: home, paths: paths.ForHome(home), runner: shelltest.New()}
	origRunner := newRunner
	t.Cleanup(func() { newRunner = origRunner })
	newRunner = func() shell.Runner { return c.runner }
	return c
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	full := append([]string{"lethectl", "--home", c.home}, args...)
	err := execute(full, &out, &out)
	return out.String(), err
}

// host makes every tool resolvable and git clone produce a checkout.
func (c *cli) host() *cli {
	c.runner.
		On("which", shelltest.Stdout("/opt/homebrew/bin/tool")).
		Do("git clone", func(shell.Command) (shell.Result, error) {
			return shell.Result{}, os.MkdirAll(c.paths.InstallRepoMarker(), 0o755)
		})
	return c
}

func (c *cli) configFile() string {
	path := filepath.Join(c.t.TempDir(), "install.toml")
	testutil.WriteFile(c.t, path, installTOML, 0o600)
	return path
}

func setInteractive(t *testing.T, v bool) {
	t.Helper()
	orig := isInteractive
	t.Cleanup(func() { isInteractive = orig })
	isInteractive = func() bool { return v }
}

func TestInstall_FromConfigFile(t *testing.T) {
	c := newCLI(t).host()

	out, err := c.run("install", "--config", c.configFile())

	require.NoError(t, err)
	assert.Contains(t, out, "Lethe installed in "+c.paths.InstallDir())
	assert.FileExists(t, c.paths.ConfigFile())
	assert.FileExists(t, c.paths.ServiceDescriptor())
	assert.FileExists(t, c.paths.LockFile())
	data, err := os.ReadFile(c.paths.ConfigFile())
	require.NoError(t, err)
	assert.Contains(t, string(data), "OPENROUTER_API_KEY=sk-or-test")
}

func TestInstall_NonInteractiveWithoutConfig(t *testing.T) {
	c := newCLI(t)
	setInteractive(t, false)

	_, err := c.run("install")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config")
	assert.Empty(t, c.runner.Calls())
}

func TestInstall_RunsWizardWhenInteractive(t *testing.T) {
	c := newCLI(t).host()
	setInteractive(t, true)
	orig := runWizard
	t.Cleanup(func() { runWizard = orig })
	var got config.InstallConfiguration
	runWizard = func(defaults config.InstallConfiguration, _ io.Writer) (config.InstallConfiguration, bool, error) {
		got = defaults
		cfg := defaults
		cfg.APIKey = "from-wizard"
		cfg.TelegramBotToken = "bot"
		cfg.TelegramUserID = "1"
		return cfg.WithDefaults(), true, nil
	}

	_, err := c.run("install")

	require.NoError(t, err)
	assert.Equal(t, config.ProviderOpenRouter, got.Provider)
	data, err := os.ReadFile(c.paths.ConfigFile())
	require.NoError(t, err)
	assert.Contains(t, string(data), "OPENROUTER_API_KEY=from-wizard")
}

func TestInstall_WizardExitLeavesHostUntouched(t *testing.T) {
	c := newCLI(t)
	setInteractive(t, true)
	orig := runWizard
	t.Cleanup(func() { runWizard = orig })
	runWizard = func(d config.InstallConfiguration, _ io.Writer) (config.InstallConfiguration, bool, error) {
		return d, false, nil
	}

	_, err := c.run("install")

	require.NoError(t, err)
	assert.Empty(t, c.runner.Calls())
	assert.NoFileExists(t, c.paths.ConfigFile())
}

func TestInstall_SingleStepSkipsConfig(t *testing.T) {
	c := newCLI(t).host()
	setInteractive(t, false)

	out, err := c.run("install", "--step", "packages")

	require.NoError(t, err)
	assert.Contains(t, out, "Step packages complete.")
	assert.Equal(t, 1, c.runner.Count("uv sync"))
}

func TestInstall_UnknownStep(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("install", "--step", "bogus")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestInstall_FailureIsReported(t *testing.T) {
	c := newCLI(t).host()
	c.runner.OnError("git clone", errors.New("network down"))

	_, err := c.run("install", "--config", c.configFile())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "install failed")
	assert.NoFileExists(t, c.paths.ServiceDescriptor())
}

func TestUninstall(t *testing.T) {
	c := newCLI(t)
	testutil.MkdirAll(t, c.paths.InstallRepoMarker())
	testutil.WriteFile(t, c.paths.ConfigFile(), "LLM_PROVIDER=openai\n", 0o600)

	out, err := c.run("uninstall", "--yes")

	require.NoError(t, err)
	assert.NoDirExists(t, c.paths.InstallDir())
	assert.FileExists(t, c.paths.ConfigFile())
	assert.Contains(t, out, "Config kept in "+c.paths.ConfigDir())
}

func TestUninstall_RequiresConfirmation(t *testing.T) {
	c := newCLI(t)
	testutil.MkdirAll(t, c.paths.InstallRepoMarker())

	setInteractive(t, false)
	_, err := c.run("uninstall")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	setInteractive(t, true)
	orig := confirmPrompt
	t.Cleanup(func() { confirmPrompt = orig })
	var prompt string
	confirmPrompt = func(title string) (bool, error) {
		prompt = title
		return false, nil
	}
	out, err := c.run("uninstall")
	require.NoError(t, err)
	assert.Contains(t, out, "Uninstall cancelled.")
	assert.Contains(t, prompt, c.paths.InstallDir())
	assert.DirExists(t, c.paths.InstallDir())
}

func TestStart_MissingDescriptor(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("start")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "LaunchAgent plist not found")
}

func TestServiceCommands(t *testing.T) {
	c := newCLI(t)
	testutil.WriteFile(t, c.paths.ServiceDescriptor(), "<plist/>", 0o644)

	for _, tc := range []struct{ cmd, want string }{
		{"start", "Lethe started."},
		{"stop", "Lethe stopped."},
		{"restart", "Lethe restarted."},
	} {
		out, err := c.run(tc.cmd)
		require.NoError(t, err, tc.cmd)
		assert.Contains(t, out, tc.want)
	}
	assert.Positive(t, c.runner.Count("kickstart"))
}

func TestStatus_JSON(t *testing.T) {
	c := newCLI(t)
	testutil.MkdirAll(t, c.paths.InstallRepoMarker())
	testutil.WriteFile(t, c.paths.ConfigFile(), "LLM_PROVIDER=openai\n", 0o600)
	testutil.WriteFile(t, c.paths.ServiceDescriptor(), "<plist/>", 0o644)
	c.runner.On("launchctl print", shelltest.Stdout("\tstate = running\n\tpid = 4821\n"))

	out, err := c.run("status", "--json")

	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "running", report["state"])
	assert.Equal(t, float64(4821), report["pid"])
	assert.Equal(t, true, report["installed"])
	assert.Equal(t, "print", report["source"])
	assert.NotContains(t, report, "process")
}

func TestStatus_VerboseIncludesProcess(t *testing.T) {
	c := newCLI(t)
	c.runner.On("launchctl print", shelltest.Stdout("pid = 77\n"))
	orig := lookupProcess
	t.Cleanup(func() { lookupProcess = orig })
	lookupProcess = func(pid int) (status.ProcessDetails, error) {
		return status.ProcessDetails{PID: pid, Name: "python3", RSSBytes: 3 * 1024 * 1024, CPUPercent: 1.5}, nil
	}

	out, err := c.run("status", "--verbose")

	require.NoError(t, err)
	assert.Contains(t, out, "PID:                77")
	assert.Contains(t, out, "python3")
	assert.Contains(t, out, "3.0 MiB")
}

func TestStatus_NotInstalled(t *testing.T) {
	c := newCLI(t)
	c.runner.On("launchctl", shelltest.Exit(113, "Could not find service"))

	out, err := c.run("status")

	require.NoError(t, err)
	assert.Contains(t, out, "not installed")
	assert.Contains(t, out, "Installed:          no")
}

func TestDoctor_FailsOnEmptyHome(t *testing.T) {
	c := newCLI(t)
	c.runner.On("which", shelltest.Exit(1, ""))

	out, err := c.run("doctor")

	require.Error(t, err)
	assert.Contains(t, out, "[FAIL]")
	assert.Contains(t, out, "lethectl install")
}

func TestConfigure_DiffDoesNotWrite(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("configure", "--config", c.configFile(), "--diff")

	require.NoError(t, err)
	assert.Contains(t, out, "+LLM_PROVIDER=openrouter")
	assert.NotContains(t, out, "sk-or-test")
	assert.NoFileExists(t, c.paths.ConfigFile())
}

func TestConfigure_WritesEnvFile(t *testing.T) {
	c := newCLI(t)
	testutil.MkdirAll(t, c.paths.InstallDir())
	cfgFile := c.configFile()

	out, err := c.run("configure", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+c.paths.ConfigFile())
	target, err := os.Readlink(c.paths.InstallEnvFile())
	require.NoError(t, err)
	assert.Equal(t, c.paths.ConfigFile(), target)

	out, err = c.run("configure", "--config", cfgFile, "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, "Env file is up to date.")
}

func TestLogs(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("logs")
	require.NoError(t, err)
	assert.Contains(t, out, "No log output yet")

	testutil.WriteFile(t, c.paths.StdoutLog(), "a\nb\nc\n", 0o644)
	testutil.WriteFile(t, c.paths.StderrLog(), "boom\n", 0o644)

	out, err = c.run("logs", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "b\nc\n", out)

	out, err = c.run("logs", "--stderr")
	require.NoError(t, err)
	assert.Equal(t, "boom\n", out)
}

func TestLogs_Follow(t *testing.T) {
	c := newCLI(t)
	testutil.WriteFile(t, c.paths.StdoutLog(), "a\n", 0o644)
	orig := followLog
	t.Cleanup(func() { followLog = orig })
	var gotPath string
	var gotOffset int64
	followLog = func(_ context.Context, path string, offset int64, w io.Writer) error {
		gotPath, gotOffset = path, offset
		_, err := io.WriteString(w, "live\n")
		return err
	}

	out, err := c.run("logs", "--follow")

	require.NoError(t, err)
	assert.Equal(t, "a\nlive\n", out)
	assert.Equal(t, c.paths.StdoutLog(), gotPath)
	assert.Equal(t, int64(2), gotOffset)
}

func TestScript(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("script", "install")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Script not found")

	testutil.WriteFile(t, c.paths.InstallScript(), "#!/bin/zsh\n", 0o755)
	out, err := c.run("script", "install", "extra")
	require.NoError(t, err)
	assert.Contains(t, out, "Opened "+c.paths.InstallScript())
	assert.Equal(t, 1, c.runner.Count("osascript"))

	c.runner.On("osascript", shelltest.Exit(1, "not allowed"))
	_, err = c.run("script", "install")
	require.Error(t, err)

	_, err = c.run("script", "reinstall")
	require.Error(t, err)
}

func TestInstallDescriptorUsesResolvedRuntime(t *testing.T) {
	c := newCLI(t).host()

	_, err := c.run("install", "--config", c.configFile())
	require.NoError(t, err)

	d, err := launchd.ReadDescriptor(c.paths.ServiceDescriptor())
	require.NoError(t, err)
	require.NotEmpty(t, d.ProgramArguments)
	assert.Equal(t, paths.ServiceLabel, d.Label)
	assert.Equal(t, c.paths.InstallDir(), d.WorkingDirectory)
}
