// Package launchd writes and registers the agent's per-user launchd descriptor.
package launchd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"

	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
)

// RuntimeCommand launches the agent; it is resolved to an absolute path at install time.
const RuntimeCommand = "uv"

// servicePathSuffix follows the resolved runtime directory in the service PATH.
const servicePathSuffix = "/opt/homebrew/bin:/usr/local/bin:/usr/bin:/bin"

// Descriptor is the launchd job definition for the agent.
type Descriptor struct {
	Label                string            `plist:"Label"`
	ProgramArguments     []string          `plist:"ProgramArguments"`
	WorkingDirectory     string            `plist:"WorkingDirectory"`
	RunAtLoad            bool              `plist:"RunAtLoad"`
	KeepAlive            bool              `plist:"KeepAlive"`
	StandardOutPath      string            `plist:"StandardOutPath"`
	StandardErrorPath    string            `plist:"StandardErrorPath"`
	EnvironmentVariables map[string]string `plist:"EnvironmentVariables,omitempty"`
}

// NewDescriptor returns the descriptor that runs the agent with runtimePath.
func NewDescriptor(p paths.Paths, runtimePath string) Descriptor {
	return Descriptor{
		Label:             paths.ServiceLabel,
		ProgramArguments:  []string{runtimePath, "run", "lethe"},
		WorkingDirectory:  p.InstallDir(),
		RunAtLoad:         true,
		KeepAlive:         true,
		StandardOutPath:   p.StdoutLog(),
		StandardErrorPath: p.StderrLog(),
		EnvironmentVariables: map[string]string{
			"PATH": ServicePath(runtimePath),
		},
	}
}

// ServicePath prepends the runtime's directory to the standard system paths.
func ServicePath(runtimePath string) string {
	return filepath.Dir(runtimePath) + ":" + servicePathSuffix
}

// Encode renders d as an XML property list.
func (d Descriptor) Encode() ([]byte, error) {
	data, err := plist.MarshalIndent(d, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf(messages.LaunchdEncodeFmt, err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	return data, nil
}

// Decode parses a property list in any format plist supports.
func Decode(data []byte) (Descriptor, error) {
	var d Descriptor
	if _, err := plist.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf(messages.LaunchdDecodeFmt, err)
	}
	return d, nil
}

// ReadDescriptor loads and decodes the descriptor at path.
func ReadDescriptor(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf(messages.LaunchdReadFmt, path, err)
	}
	d, err := Decode(data)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Problems lists the ways d deviates from the descriptor NewDescriptor would produce.
// An empty result means d is usable.
func (d Descriptor) Problems(p paths.Paths) []string {
	var problems []string
	if d.Label != paths.ServiceLabel {
		problems = append(problems, fmt.Sprintf(messages.LaunchdLabelMismatchFmt, d.Label, paths.ServiceLabel))
	}
	if len(d.ProgramArguments) == 0 {
		problems = append(problems, messages.LaunchdProgramMissing)
	} else if !filepath.IsAbs(d.ProgramArguments[0]) {
		problems = append(problems, fmt.Sprintf(messages.LaunchdProgramNotAbsoluteFmt, d.ProgramArguments[0]))
	} else if _, err := os.Stat(d.ProgramArguments[0]); err != nil {
		problems = append(problems, fmt.Sprintf(messages.LaunchdProgramMissingFmt, d.ProgramArguments[0]))
	}
	if filepath.Clean(d.WorkingDirectory) != p.InstallDir() {
		problems = append(problems, fmt.Sprintf(messages.LaunchdWorkingDirMismatchFmt, d.WorkingDirectory, p.InstallDir()))
	}
	if !d.RunAtLoad || !d.KeepAlive {
		problems = append(problems, messages.LaunchdRestartPolicyOff)
	}
	if !strings.Contains(d.EnvironmentVariables["PATH"], "/usr/bin") {
		problems = append(problems, messages.LaunchdPathMissing)
	}
	return problems
}
