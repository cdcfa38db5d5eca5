package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/lethe-installer/internal/agentenv"
	"github.com/conn-castle/lethe-installer/internal/lock"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/status"
)

func newConfigureCmd(opts *globalOptions) *cobra.Command {
	var configPath string
	var diff bool

	cmd := &cobra.Command{
		Use:   messages.ConfigureUse,
		Short: messages.ConfigureShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			cfg, ok, err := resolveInstallConfig(p, configPath, out)
			if err != nil || !ok {
				return err
			}
			writer := agentenv.NewWriter(p)

			if diff {
				preview, err := writer.Preview(cfg)
				if err != nil {
					return err
				}
				if !preview.Changed {
					_, _ = fmt.Fprintln(out, messages.ConfigureNoChanges)
					return nil
				}
				_, err = fmt.Fprint(out, preview.UnifiedDiff)
				return err
			}

			return lock.With(p.LockFile(), func() error {
				path, err := writer.Write(cfg)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, messages.ConfigureWrittenFmt, path)
				if status.NewProbe(newRunner(), p).Current().ServiceLoaded {
					_, _ = fmt.Fprintln(out, messages.ConfigureRestartHint)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", messages.InstallFlagConfig)
	cmd.Flags().BoolVar(&diff, "diff", false, messages.ConfigureFlagDiff)
	return cmd
}
