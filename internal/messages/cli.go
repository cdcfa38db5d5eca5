package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse         = "lethectl"
	RootShort       = "Install and supervise the Lethe agent on this Mac"
	RootVersionFlag = "Print version and exit"
	RootVerboseFlag = "Mirror log output to stderr and show process details in status"
	RootHomeFlag    = "Home directory to install under (defaults to the current user's)"

	VersionUse       = "version"
	VersionShort     = "Print the lethectl version"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	LoggerInitFailedFmt = "Warning: installer log unavailable: %v\n"

	InstallUse             = "install"
	InstallShort           = "Install dependencies, the agent checkout, its config, and the launch agent"
	InstallFlagConfig      = "Read the install configuration from this TOML file instead of running the wizard"
	InstallFlagStepFmt     = "Run only this step (one of: %s)"
	InstallNeedsConfig     = "no interactive terminal; pass --config with an install configuration file"
	InstallProgressMark    = "✔"
	InstallProgressFmt     = "  %s %s\n"
	InstallCompleteFmt     = "Lethe installed in %s\nConfig: %s\nLaunch agent: %s\n"
	InstallStepCompleteFmt = "Step %s complete.\n"
	InstallFailedFmt       = "install failed: %w"

	UninstallUse         = "uninstall"
	UninstallShort       = "Remove the agent checkout and launch agent, keeping configuration"
	UninstallFlagYes     = "Skip the confirmation prompt"
	UninstallPromptFmt   = "This removes %s and the launch agent. Config in %s is kept. Continue?"
	UninstallNeedsYes    = "no interactive terminal; pass --yes to confirm uninstall"
	UninstallAborted     = "Uninstall cancelled."
	UninstallCompleteFmt = "Removed %s. Config kept in %s.\n"

	StartUse     = "start"
	StartShort   = "Load and start the launch agent"
	StartDone    = "Lethe started."
	StopUse      = "stop"
	StopShort    = "Stop and unload the launch agent"
	StopDone     = "Lethe stopped."
	RestartUse   = "restart"
	RestartShort = "Stop, then start the launch agent"
	RestartDone  = "Lethe restarted."

	ConfigureUse         = "configure"
	ConfigureShort       = "Rewrite the agent env file without reinstalling"
	ConfigureFlagDiff    = "Print a diff against the current env file without writing"
	ConfigureNoChanges   = "Env file is up to date."
	ConfigureWrittenFmt  = "Wrote %s.\n"
	ConfigureRestartHint = "Run `lethectl restart` for the agent to pick up the change."

	LogsUse        = "logs"
	LogsShort      = "Print the agent log"
	LogsFlagStderr = "Read the stderr log instead of stdout"
	LogsFlagLines  = "Number of trailing lines to print"
	LogsFlagFollow = "Keep printing lines as they are written"
	LogsEmptyFmt   = "No log output yet at %s\n"

	ScriptUse       = "script <install|update|uninstall> [args...]"
	ScriptShort     = "Open a repository maintenance script in Terminal"
	ScriptOpenedFmt = "Opened %s in Terminal.\n"

	BoolYes = "yes"
	BoolNo  = "no"
)
