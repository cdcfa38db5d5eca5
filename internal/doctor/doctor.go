// Package doctor inspects an installation and reports problems with fixes.
package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/conn-castle/lethe-installer/internal/agentenv"
	"github.com/conn-castle/lethe-installer/internal/config"
	"github.com/conn-castle/lethe-installer/internal/deps"
	"github.com/conn-castle/lethe-installer/internal/launchd"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/status"
)

// Status is the outcome of a single check.
type Status string

// Check outcomes.
const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is one reported finding.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// BinaryResolver locates executables the way the installer does.
type BinaryResolver interface {
	ResolveBinary(name string) (string, error)
}

// StatusProbe reports the service runtime state.
type StatusProbe interface {
	Current() status.RuntimeStatus
}

var readEnvFunc = agentenv.ReadExisting

// Run executes every check in display order.
func Run(p paths.Paths, resolver BinaryResolver, probe StatusProbe) []Result {
	var results []Result
	results = append(results, CheckTools(resolver)...)
	results = append(results, CheckCheckout(p))
	results = append(results, CheckEnvironment(p)...)
	results = append(results, CheckDescriptor(p))
	results = append(results, CheckService(probe))
	return results
}

// HasFailure reports whether any result failed.
func HasFailure(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// CheckTools verifies each required command and the browser runtime resolve.
func CheckTools(resolver BinaryResolver) []Result {
	names := make([]string, 0, len(deps.RequiredTools)+1)
	for _, tool := range deps.RequiredTools {
		names = append(names, tool.Command)
	}
	names = append(names, deps.BrowserCommand)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		path, err := resolver.ResolveBinary(name)
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameTools,
				Message:        fmt.Sprintf(messages.DoctorToolMissingFmt, name),
				Recommendation: messages.DoctorRunInstallRecommend,
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameTools,
			Message:   fmt.Sprintf(messages.DoctorToolFoundFmt, name, path),
		})
	}
	return results
}

// CheckCheckout verifies the agent repository is cloned.
func CheckCheckout(p paths.Paths) Result {
	if _, err := os.Stat(p.InstallRepoMarker()); err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameCheckout,
			Message:        fmt.Sprintf(messages.DoctorCheckoutMissingFmt, p.InstallDir()),
			Recommendation: messages.DoctorRunInstallRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameCheckout,
		Message:   fmt.Sprintf(messages.DoctorCheckoutFoundFmt, p.InstallDir()),
	}
}

// CheckEnvironment verifies the env file parses, carries a usable
// configuration, and is linked into the checkout.
func CheckEnvironment(p paths.Paths) []Result {
	if _, err := os.Stat(p.ConfigFile()); errors.Is(err, fs.ErrNotExist) {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameEnvironment,
			Message:        fmt.Sprintf(messages.DoctorEnvMissingFmt, p.ConfigFile()),
			Recommendation: messages.DoctorRunConfigureRecommend,
		}}
	}
	env, err := readEnvFunc(p)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameEnvironment,
			Message:        fmt.Sprintf(messages.DoctorEnvUnreadableFmt, err),
			Recommendation: messages.DoctorRunConfigureRecommend,
		}}
	}

	var results []Result
	cfg := config.DefaultsFromEnv(env)
	cfg.APIKey = env[cfg.AuthEnvName()]
	if err := cfg.Validate(p.ConfigFile()); err != nil {
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameEnvironment,
			Message:        err.Error(),
			Recommendation: messages.DoctorRunConfigureRecommend,
		})
	} else {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameEnvironment,
			Message:   fmt.Sprintf(messages.DoctorEnvValidFmt, cfg.Provider.DisplayName(), cfg.AuthEnvName()),
		})
	}

	target, err := os.Readlink(p.InstallEnvFile())
	switch {
	case err != nil:
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameEnvironment,
			Message:        fmt.Sprintf(messages.DoctorEnvNotLinkedFmt, p.InstallEnvFile()),
			Recommendation: messages.DoctorRunConfigureRecommend,
		})
	case target != p.ConfigFile():
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameEnvironment,
			Message:        fmt.Sprintf(messages.DoctorEnvLinkMismatchFmt, p.InstallEnvFile(), target),
			Recommendation: messages.DoctorRunConfigureRecommend,
		})
	}
	return results
}

// CheckDescriptor verifies the LaunchAgent plist exists and matches the layout.
func CheckDescriptor(p paths.Paths) Result {
	descriptor, err := launchd.ReadDescriptor(p.ServiceDescriptor())
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLaunchAgent,
			Message:        err.Error(),
			Recommendation: messages.DoctorRunServiceStepRecommend,
		}
	}
	if problems := descriptor.Problems(p); len(problems) > 0 {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLaunchAgent,
			Message:        fmt.Sprintf(messages.DoctorDescriptorProblemsFmt, problems[0], len(problems)),
			Recommendation: messages.DoctorRunServiceStepRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameLaunchAgent,
		Message:   fmt.Sprintf(messages.DoctorDescriptorValidFmt, p.ServiceDescriptor()),
	}
}

// CheckService reports whether launchd has the agent loaded and running.
func CheckService(probe StatusProbe) Result {
	current := probe.Current()
	switch {
	case !current.ServiceLoaded:
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameService,
			Message:        messages.DoctorServiceNotLoaded,
			Recommendation: messages.DoctorStartRecommend,
		}
	case !current.ServiceRunning:
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameService,
			Message:        messages.DoctorServiceNotRunning,
			Recommendation: messages.DoctorLogsRecommend,
		}
	case current.HasPID():
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameService,
			Message:   fmt.Sprintf(messages.DoctorServiceRunningPIDFmt, current.PID),
		}
	default:
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameService,
			Message:   messages.DoctorServiceRunning,
		}
	}
}
