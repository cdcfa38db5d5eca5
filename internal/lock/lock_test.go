package lock

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestWith_RunsAndReleases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lethectl.lock")
	ran := false

	require.NoError(t, With(path, func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)

	l, err := Acquire(path)
	require.NoError(t, err, "lock must be free after With returns")
	require.NoError(t, l.Release())
}

func TestWith_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := With(filepath.Join(t.TempDir(), "l.lock"), func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestAcquire_TimesOutWhenHeld(t *testing.T) {
	origTimeout, origSleep := lockWaitTimeout, lockSleep
	t.Cleanup(func() {
		lockWaitTimeout = origTimeout
		lockSleep = origSleep
	})
	lockWaitTimeout = 10 * time.Millisecond
	lockSleep = func(time.Duration) { time.Sleep(5 * time.Millisecond) }

	path := filepath.Join(t.TempDir(), "l.lock")
	held, err := Acquire(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = held.Release() })

	_, err = Acquire(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another lethectl command is running")
}

func TestAcquire_UnexpectedFlockError(t *testing.T) {
	orig := flockFn
	t.Cleanup(func() { flockFn = orig })
	flockFn = func(int, int) error { return unix.EBADF }

	_, err := Acquire(filepath.Join(t.TempDir(), "l.lock"))

	require.Error(t, err)
	assert.ErrorIs(t, err, unix.EBADF)
}

func TestRelease_Nil(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}
