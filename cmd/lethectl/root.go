package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/shell"
	"github.com/conn-castle/lethe-installer/internal/terminal"
)

// Test seams.
var (
	defaultPaths  = paths.Default
	newRunner     = func() shell.Runner { return shell.NewExecutor() }
	isInteractive = terminal.IsInteractive
)

// globalOptions holds persistent root flags.
type globalOptions struct {
	verbose bool
	home    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.Flags().BoolP("version", "V", false, messages.RootVersionFlag)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, messages.RootVerboseFlag)
	cmd.PersistentFlags().StringVar(&opts.home, "home", "", messages.RootHomeFlag)
	_ = cmd.PersistentFlags().MarkHidden("home")

	cmd.AddCommand(
		newInstallCmd(opts),
		newUninstallCmd(opts),
		newStartCmd(opts),
		newStopCmd(opts),
		newRestartCmd(opts),
		newStatusCmd(opts),
		newDoctorCmd(opts),
		newConfigureCmd(opts),
		newLogsCmd(opts),
		newScriptCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// resolvePaths returns the layout rooted at --home, or the current user's home.
func (o *globalOptions) resolvePaths() (paths.Paths, error) {
	if o.home != "" {
		return paths.ForHome(o.home), nil
	}
	return defaultPaths()
}

// initLogger points the installer log at ~/Library/Logs. A log that cannot be
// opened only disables file logging.
func initLogger(cmd *cobra.Command, opts *globalOptions) {
	p, err := opts.resolvePaths()
	if err != nil {
		return
	}
	cfg := logger.DefaultConfig(p.InstallerLog())
	cfg.Console = opts.verbose
	cfg.Stderr = cmd.ErrOrStderr()
	if opts.verbose {
		cfg.Level = "debug"
	}
	if err := logger.Init(cfg); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.LoggerInitFailedFmt, err)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
