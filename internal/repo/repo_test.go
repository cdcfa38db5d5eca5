package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell/shelltest"
	"github.com/conn-castle/lethe-installer/internal/testutil"
)

func TestSync_ClonesWhenMissing(t *testing.T) {
	home := t.TempDir()
	p := paths.ForHome(home)
	runner := shelltest.New()

	require.NoError(t, NewProvisioner(runner, p).Sync())

	assert.Equal(t, []string{
		"/usr/bin/env git clone https://github.com/atemerev/lethe.git " + p.InstallDir(),
	}, runner.Lines())
	info, err := os.Stat(filepath.Dir(p.InstallDir()))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSync_UpdatesExistingCheckout(t *testing.T) {
	p := paths.ForHome(t.TempDir())
	testutil.MkdirAll(t, p.InstallRepoMarker())
	runner := shelltest.New()

	require.NoError(t, NewProvisioner(runner, p).Sync())

	dir := p.InstallDir()
	assert.Equal(t, []string{
		"/usr/bin/env git -C " + dir + " fetch origin --tags",
		"/usr/bin/env git -C " + dir + " checkout main",
		"/usr/bin/env git -C " + dir + " pull origin main",
	}, runner.Lines())
}

func TestSync_PlainDirectoryIsCloned(t *testing.T) {
	p := paths.ForHome(t.TempDir())
	testutil.MkdirAll(t, p.InstallDir())
	runner := shelltest.New()

	require.NoError(t, NewProvisioner(runner, p).Sync())

	assert.Equal(t, 1, runner.Count("git clone"))
}

func TestSync_UpdateFailureAborts(t *testing.T) {
	p := paths.ForHome(t.TempDir())
	testutil.MkdirAll(t, p.InstallRepoMarker())
	runner := shelltest.New().
		On("checkout main", shelltest.Exit(1, "error: Your local changes would be overwritten by checkout"))

	err := NewProvisioner(runner, p).Sync()

	require.Error(t, err)
	assert.True(t, errors.Is(err, faults.ErrInstallFailed))
	assert.Contains(t, err.Error(), "local changes")
	assert.Zero(t, runner.Count("pull"))
}

func TestSync_CloneFailure(t *testing.T) {
	p := paths.ForHome(t.TempDir())
	runner := shelltest.New().
		On("git clone", shelltest.Exit(128, "fatal: unable to access"))

	err := NewProvisioner(runner, p).Sync()

	assert.True(t, errors.Is(err, faults.ErrInstallFailed))
	assert.Equal(t, "fatal: unable to access", err.Error())
}

func TestHasCheckout(t *testing.T) {
	p := paths.ForHome(t.TempDir())
	prov := NewProvisioner(shelltest.New(), p)
	assert.False(t, prov.HasCheckout())

	testutil.MkdirAll(t, p.InstallRepoMarker())
	assert.True(t, prov.HasCheckout())
}
