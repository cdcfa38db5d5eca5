package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/terminal"
)

func newScriptCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ScriptUse,
		Short: messages.ScriptShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := terminal.ParseAction(args[0])
			if err != nil {
				return err
			}
			p, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			runner := terminal.NewScriptRunner(newRunner(), p)
			if err := runner.Run(action, args[1:]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), messages.ScriptOpenedFmt, runner.ScriptPath(action))
			return err
		},
	}
}
