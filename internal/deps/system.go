package deps

import "os"

// System abstracts the filesystem probes the installer needs.
type System interface {
	IsExecutable(path string) bool
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// IsExecutable reports whether path is a regular file with any execute bit set.
func (RealSystem) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
