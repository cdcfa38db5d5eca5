package messages

// Doctor messages for the doctor command.
const (
	DoctorUse   = "doctor"
	DoctorShort = "Check tools, checkout, configuration, and the launch agent"

	DoctorHealthCheckFmt = "Checking Lethe installation in %s...\n"

	DoctorCheckNameTools       = "Tools"
	DoctorCheckNameCheckout    = "Checkout"
	DoctorCheckNameEnvironment = "Env"
	DoctorCheckNameLaunchAgent = "Agent"
	DoctorCheckNameService     = "Service"

	DoctorToolFoundFmt   = "%s found at %s"
	DoctorToolMissingFmt = "%s is not installed"

	DoctorCheckoutFoundFmt   = "Agent checkout present at %s"
	DoctorCheckoutMissingFmt = "Agent checkout missing at %s"

	DoctorEnvMissingFmt      = "Env file missing: %s"
	DoctorEnvUnreadableFmt   = "Env file unreadable: %v"
	DoctorEnvValidFmt        = "Env file configured for %s (%s)"
	DoctorEnvNotLinkedFmt    = "%s is not a symlink to the config env file"
	DoctorEnvLinkMismatchFmt = "%s points at %s"

	DoctorDescriptorValidFmt    = "LaunchAgent plist valid: %s"
	DoctorDescriptorProblemsFmt = "%s (%d problem(s))"

	DoctorServiceNotLoaded     = "Launch agent is not loaded"
	DoctorServiceNotRunning    = "Launch agent is loaded but not running"
	DoctorServiceRunning       = "Launch agent is running"
	DoctorServiceRunningPIDFmt = "Launch agent is running (pid %d)"

	DoctorRunInstallRecommend     = "Run `lethectl install` to provision missing pieces."
	DoctorRunConfigureRecommend   = "Run `lethectl configure` to rewrite the env file."
	DoctorRunServiceStepRecommend = "Run `lethectl install --step service` to reinstall the launch agent."
	DoctorStartRecommend          = "Run `lethectl start`."
	DoctorLogsRecommend           = "Inspect `lethectl logs --stderr` for crash output."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorRecommendationIndent = "          "
	DoctorSuccessSummary       = "All checks passed."
	DoctorFailureSummary       = "Some checks failed. Fix the issues above and rerun `lethectl doctor`."
	DoctorFailureError         = "doctor found problems"
)
