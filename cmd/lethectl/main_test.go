package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/lethe-installer/internal/paths"
)

// TestMain keeps the installer log and every default path inside a scratch home.
func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "lethectl-home-")
	if err != nil {
		panic(err)
	}
	defaultPaths = func() (paths.Paths, error) { return paths.ForHome(home), nil }
	isInteractive = func() bool { return false }
	code := m.Run()
	_ = os.RemoveAll(home)
	os.Exit(code)
}

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute([]string{"lethectl", "--version"}, &out, &out))
	assert.Contains(t, out.String(), Version)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute([]string{"lethectl", "version"}, &out, &out))
	assert.Equal(t, Version+"\n", out.String())
}

func TestRootHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute([]string{"lethectl"}, &out, &out))
	assert.Contains(t, out.String(), "Lethe")
	assert.Contains(t, out.String(), "install")
}

func TestRunMainSuccess(t *testing.T) {
	var out bytes.Buffer
	called := false
	runMain([]string{"lethectl", "--version"}, &out, &out, func(int) { called = true })
	assert.False(t, called, "unexpected exit")
}

func TestRunMainError(t *testing.T) {
	var out bytes.Buffer
	code := 0
	runMain([]string{"lethectl", "unknown"}, &out, &out, func(c int) { code = c })
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "unknown command")
}

func TestRunMainSilentExit(t *testing.T) {
	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })
	executeFunc = func([]string, io.Writer, io.Writer) error {
		return &SilentExitError{Code: 3}
	}

	var out bytes.Buffer
	code := 0
	runMain([]string{"lethectl"}, &out, &out, func(c int) { code = c })

	assert.Equal(t, 3, code)
	assert.Empty(t, out.String())
}

func TestRunMainWrappedError(t *testing.T) {
	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })
	executeFunc = func([]string, io.Writer, io.Writer) error {
		return errors.New("launchctl command failed: boom")
	}

	var out bytes.Buffer
	code := 0
	runMain([]string{"lethectl"}, &out, &out, func(c int) { code = c })

	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(out.String(), "launchctl command failed"))
}

func TestSilentExitErrorMessage(t *testing.T) {
	assert.Equal(t, "exit 7", (&SilentExitError{Code: 7}).Error())
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origDate })

	Version, Commit, BuildDate = "v1.2.3", "unknown", "unknown"
	assert.Equal(t, "v1.2.3", versionString())

	Commit = "abc123"
	assert.Equal(t, "v1.2.3 (commit abc123)", versionString())

	BuildDate = "2026-01-02"
	assert.Equal(t, "v1.2.3 (commit abc123, built 2026-01-02)", versionString())
}
