package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/status"
)

var (
	lookupProcess = status.LookupProcess
	now           = time.Now
)

// statusReport is the --json shape of the status command.
type statusReport struct {
	State             status.State           `json:"state"`
	RepoAvailable     bool                   `json:"repo_available"`
	Installed         bool                   `json:"installed"`
	ServiceRegistered bool                   `json:"service_registered"`
	ServiceLoaded     bool                   `json:"service_loaded"`
	ServiceRunning    bool                   `json:"service_running"`
	PID               int                    `json:"pid,omitempty"`
	Source            status.Source          `json:"source"`
	Process           *status.ProcessDetails `json:"process,omitempty"`
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			current := status.NewProbe(newRunner(), p).Current()
			report := statusReport{
				State:             current.State(),
				RepoAvailable:     current.RepoAvailable,
				Installed:         current.Installed,
				ServiceRegistered: current.ServiceRegistered,
				ServiceLoaded:     current.ServiceLoaded,
				ServiceRunning:    current.ServiceRunning,
				PID:               current.PID,
				Source:            current.Source,
			}

			var processErr error
			if opts.verbose && current.HasPID() {
				details, err := lookupProcess(current.PID)
				if err != nil {
					processErr = err
				} else {
					report.Process = &details
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printStatus(out, report, processErr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.StatusJSONFlag)
	return cmd
}

func printStatus(out io.Writer, r statusReport, processErr error) {
	var state string
	switch r.State {
	case status.StateRunning:
		state = color.GreenString(string(r.State))
	case status.StateStopped:
		state = color.YellowString(string(r.State))
	default:
		state = color.RedString(string(r.State))
	}
	_, _ = fmt.Fprintf(out, messages.StatusStateFmt, state)
	_, _ = fmt.Fprintf(out, messages.StatusRepoFmt, yesNo(r.RepoAvailable))
	_, _ = fmt.Fprintf(out, messages.StatusInstalledFmt, yesNo(r.Installed))
	_, _ = fmt.Fprintf(out, messages.StatusRegisteredFmt, yesNo(r.ServiceRegistered))
	_, _ = fmt.Fprintf(out, messages.StatusLoadedFmt, yesNo(r.ServiceLoaded))
	_, _ = fmt.Fprintf(out, messages.StatusRunningFmt, yesNo(r.ServiceRunning))
	if r.PID > 0 {
		_, _ = fmt.Fprintf(out, messages.StatusPIDFmt, r.PID)
	}
	if r.Source != status.SourceNone {
		_, _ = fmt.Fprintf(out, messages.StatusSourceFmt, r.Source)
	}
	if processErr != nil {
		_, _ = fmt.Fprintf(out, messages.StatusProcessErrorFmt, processErr)
	}
	if d := r.Process; d != nil {
		name := d.Name
		if name == "" {
			name = messages.StatusUnknown
		}
		_, _ = fmt.Fprintf(out, messages.StatusProcessNameFmt, name)
		_, _ = fmt.Fprintf(out, messages.StatusProcessRSSFmt, float64(d.RSSBytes)/(1024*1024))
		_, _ = fmt.Fprintf(out, messages.StatusProcessCPUFmt, d.CPUPercent)
		_, _ = fmt.Fprintf(out, messages.StatusProcessUptimeFmt, d.Uptime(now()))
	}
}

func yesNo(v bool) string {
	if v {
		return messages.BoolYes
	}
	return messages.BoolNo
}
