package launchd

import (
	"os"

	"github.com/conn-castle/lethe-installer/internal/fsutil"
)

// System is the filesystem surface the descriptor installer writes through.
type System interface {
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// RealSystem writes to the local disk.
type RealSystem struct{}

func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (RealSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// WriteFileAtomic replaces filename via fsutil.WriteFileAtomic.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}
