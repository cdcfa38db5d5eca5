package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/lethe-installer/internal/agentenv"
	"github.com/conn-castle/lethe-installer/internal/config"
	"github.com/conn-castle/lethe-installer/internal/install"
	"github.com/conn-castle/lethe-installer/internal/lock"
	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
	"github.com/conn-castle/lethe-installer/internal/wizard"
)

var runWizard = func(defaults config.InstallConfiguration, out io.Writer) (config.InstallConfiguration, bool, error) {
	return wizard.Run(wizard.NewHuhUI(), defaults, out)
}

var confirmPrompt = func(title string) (bool, error) {
	confirmed := false
	err := wizard.NewHuhUI().Confirm(title, &confirmed)
	if errors.Is(err, wizard.ErrBack) || errors.Is(err, wizard.ErrCancelled) {
		return false, nil
	}
	return confirmed, err
}

func newInstallCmd(opts *globalOptions) *cobra.Command {
	var configPath string
	var step string

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var cfg config.InstallConfiguration
			if step == "" || step == install.StepEnvironment {
				var ok bool
				cfg, ok, err = resolveInstallConfig(p, configPath, out)
				if err != nil || !ok {
					return err
				}
			}

			installer, err := install.New(install.Options{
				Runner:   newRunner(),
				Paths:    p,
				Progress: progressPrinter(out),
			})
			if err != nil {
				return err
			}

			return lock.With(p.LockFile(), func() error {
				if step != "" {
					if _, err := installer.RunStep(step, cfg); err != nil {
						return fmt.Errorf(messages.InstallFailedFmt, err)
					}
					_, _ = fmt.Fprintf(out, messages.InstallStepCompleteFmt, step)
					return nil
				}
				result, err := installer.Run(cfg)
				if err != nil {
					return fmt.Errorf(messages.InstallFailedFmt, err)
				}
				_, _ = fmt.Fprintf(out, messages.InstallCompleteFmt, result.InstallDir, result.ConfigFile, result.ServiceDescriptor)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", messages.InstallFlagConfig)
	cmd.Flags().StringVar(&step, "step", "", fmt.Sprintf(messages.InstallFlagStepFmt, strings.Join(install.StepNames(), ", ")))
	return cmd
}

// resolveInstallConfig loads configPath when set, otherwise runs the wizard
// prefilled from the current env file. ok is false when the user backed out.
func resolveInstallConfig(p paths.Paths, configPath string, out io.Writer) (config.InstallConfiguration, bool, error) {
	if configPath != "" {
		cfg, err := config.LoadInstallConfig(configPath, os.LookupEnv)
		return cfg, err == nil, err
	}
	if !isInteractive() {
		return config.InstallConfiguration{}, false, errors.New(messages.InstallNeedsConfig)
	}
	existing, err := agentenv.ReadExisting(p)
	if err != nil {
		logger.WithComponent("cli").Warn().Err(err).Msg("Ignoring unreadable env file for wizard defaults")
		existing = map[string]string{}
	}
	return runWizard(config.DefaultsFromEnv(existing), out)
}

func progressPrinter(out io.Writer) install.ProgressFunc {
	return func(message string) {
		_, _ = fmt.Fprintf(out, messages.InstallProgressFmt, color.GreenString(messages.InstallProgressMark), message)
	}
}

func newUninstallCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes {
				if !isInteractive() {
					return errors.New(messages.UninstallNeedsYes)
				}
				confirmed, err := confirmPrompt(fmt.Sprintf(messages.UninstallPromptFmt, p.InstallDir(), p.ConfigDir()))
				if err != nil {
					return err
				}
				if !confirmed {
					_, _ = fmt.Fprintln(out, messages.UninstallAborted)
					return nil
				}
			}

			installer, err := install.New(install.Options{
				Runner:   newRunner(),
				Paths:    p,
				Progress: progressPrinter(out),
			})
			if err != nil {
				return err
			}
			return lock.With(p.LockFile(), func() error {
				if err := installer.Uninstall(); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, messages.UninstallCompleteFmt, p.InstallDir(), p.ConfigDir())
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.UninstallFlagYes)
	return cmd
}
