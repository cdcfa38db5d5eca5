package messages

// Install orchestrator messages.
const (
	InstallRunnerRequired = "install runner is required"
	InstallHomeRequired   = "install home directory is required"
	InstallUnknownStepFmt = "unknown install step %q (expected one of %v)"
	InstallRemoveDirFmt   = "remove %s: %v"

	InstallStepToolsDone       = "Required tools are available (git, uv, npm)."
	InstallStepRepositoryDone  = "Source checkout is up to date."
	InstallStepRuntimeDone     = "Runtime dependencies installed (agent-browser)."
	InstallStepEnvironmentDone = "Configuration written."
	InstallStepPackagesDone    = "Python packages synced."
	InstallStepServiceDone     = "Launch agent registered and loaded."
	InstallUninstallDone       = "Removed the launch agent and install directory; configuration was kept."
)
