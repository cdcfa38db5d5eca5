package agentenv

import (
	"os"

	"github.com/conn-castle/lethe-installer/internal/fsutil"
)

// System is the filesystem surface the env writer uses. Tests swap it to
// inject link and write failures.
type System interface {
	Lstat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	Symlink(oldname string, newname string) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// RealSystem uses the os package.
type RealSystem struct{}

func (RealSystem) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (RealSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (RealSystem) Symlink(oldname string, newname string) error {
	return os.Symlink(oldname, newname)
}

// WriteFileAtomic replaces filename without exposing a partial file.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}
