package messages

// Status probe and status command messages.
const (
	StatusProcessLookupFmt = "look up process %d: %w"

	StatusUse   = "status"
	StatusShort = "Show whether the agent is installed, registered, loaded, and running"

	StatusJSONFlag = "Print the status as JSON"

	StatusStateFmt      = "State:              %s\n"
	StatusRepoFmt       = "Developer checkout: %s\n"
	StatusInstalledFmt  = "Installed:          %s\n"
	StatusRegisteredFmt = "Service registered: %s\n"
	StatusLoadedFmt     = "Service loaded:     %s\n"
	StatusRunningFmt    = "Service running:    %s\n"
	StatusPIDFmt        = "PID:                %d\n"
	StatusSourceFmt     = "Queried via:        launchctl %s\n"
	StatusUnknown       = "unknown"

	StatusProcessNameFmt   = "Process:            %s\n"
	StatusProcessRSSFmt    = "Memory (RSS):       %.1f MiB\n"
	StatusProcessCPUFmt    = "CPU:                %.1f%%\n"
	StatusProcessUptimeFmt = "Uptime:             %s\n"
	StatusProcessErrorFmt  = "Process details unavailable: %v\n"
)
