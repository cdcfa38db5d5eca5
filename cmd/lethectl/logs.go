package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conn-castle/lethe-installer/internal/logtail"
	"github.com/conn-castle/lethe-installer/internal/messages"
)

var followLog = logtail.Follow

func newLogsCmd(opts *globalOptions) *cobra.Command {
	var useStderr bool
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   messages.LogsUse,
		Short: messages.LogsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			path := p.StdoutLog()
			if useStderr {
				path = p.StderrLog()
			}
			out := cmd.OutOrStdout()

			tail, offset, err := logtail.Tail(path, lines)
			if err != nil {
				return err
			}
			if len(tail) == 0 && !follow {
				_, _ = fmt.Fprintf(out, messages.LogsEmptyFmt, path)
				return nil
			}
			for _, line := range tail {
				_, _ = fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return followLog(ctx, path, offset, out)
		},
	}
	cmd.Flags().BoolVar(&useStderr, "stderr", false, messages.LogsFlagStderr)
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, messages.LogsFlagLines)
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, messages.LogsFlagFollow)
	return cmd
}
