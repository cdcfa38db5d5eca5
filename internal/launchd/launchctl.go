package launchd

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell"
)

// LaunchctlPath is the service manager CLI.
const LaunchctlPath = "/bin/launchctl"

var getuid = unix.Getuid

// Launchctl returns a launchctl invocation.
func Launchctl(args ...string) shell.Command {
	return shell.Command{Path: LaunchctlPath, Args: args}
}

// DomainTarget is the per-user GUI domain for uid.
func DomainTarget(uid int) string {
	return fmt.Sprintf("gui/%d", uid)
}

// ServiceTarget addresses the agent inside the current user's GUI domain.
func ServiceTarget() string {
	return DomainTarget(getuid()) + "/" + paths.ServiceLabel
}

// MatchesAny reports whether output contains any of fragments, ignoring case.
func MatchesAny(output string, fragments []string) bool {
	lower := strings.ToLower(output)
	for _, fragment := range fragments {
		if strings.Contains(lower, strings.ToLower(fragment)) {
			return true
		}
	}
	return false
}
