package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/lethe-installer/internal/lock"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/service"
)

func newStartCmd(opts *globalOptions) *cobra.Command {
	return newServiceCmd(opts, messages.StartUse, messages.StartShort, messages.StartDone, (*service.Controller).Start)
}

func newStopCmd(opts *globalOptions) *cobra.Command {
	return newServiceCmd(opts, messages.StopUse, messages.StopShort, messages.StopDone, (*service.Controller).Stop)
}

func newRestartCmd(opts *globalOptions) *cobra.Command {
	return newServiceCmd(opts, messages.RestartUse, messages.RestartShort, messages.RestartDone, (*service.Controller).Restart)
}

// newServiceCmd builds a launchctl wrapper command that runs action under the caller lock.
func newServiceCmd(opts *globalOptions, use, short, done string, action func(*service.Controller) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			controller := service.NewController(newRunner(), p)
			return lock.With(p.LockFile(), func() error {
				if err := action(controller); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), done)
				return err
			})
		},
	}
}
