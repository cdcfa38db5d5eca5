package status

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupProcess_Self(t *testing.T) {
	details, err := LookupProcess(os.Getpid())

	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), details.PID)
	assert.NotEmpty(t, details.Name)
	assert.NotZero(t, details.RSSBytes)
	assert.False(t, details.StartedAt.IsZero())
}

func TestLookupProcess_Error(t *testing.T) {
	orig := newProcess
	t.Cleanup(func() { newProcess = orig })
	newProcess = func(int32) (*process.Process, error) {
		return nil, errors.New("process does not exist")
	}

	_, err := LookupProcess(99999)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "99999")
}

func TestUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := ProcessDetails{StartedAt: start}
	assert.Equal(t, 90*time.Second, d.Uptime(start.Add(90*time.Second+300*time.Millisecond)))
	assert.Zero(t, ProcessDetails{}.Uptime(start))
}
